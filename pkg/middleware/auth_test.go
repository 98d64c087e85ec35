package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthUserPassesClaimsToContext(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)
	raw, err := issuer.GenerateUserToken(42, "user@example.com")
	require.NoError(t, err)

	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	AuthUser(issuer, zap.NewNop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotID)
}

func TestAuthUserMissingHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	AuthUser(issuer, zap.NewNop())(rejectNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUserMalformedHeader(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	AuthUser(issuer, zap.NewNop())(rejectNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUserRejectsAdminToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)
	raw, err := issuer.GenerateAdminToken(7, "admin@example.com", "super_admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	AuthUser(issuer, zap.NewNop())(rejectNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAdminPassesTypeToContext(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)
	raw, err := issuer.GenerateAdminToken(7, "admin@example.com", "super_admin")
	require.NoError(t, err)

	var gotID int64
	var gotType string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetAdminIDFromContext(r.Context())
		gotType, _ = utils.GetAdminTypeFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	AuthAdmin(issuer, zap.NewNop())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, "super_admin", gotType)
}

func TestAuthAdminRejectsUserToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 1)
	raw, err := issuer.GenerateUserToken(42, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	AuthAdmin(issuer, zap.NewNop())(rejectNext(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func rejectNext(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})
}
