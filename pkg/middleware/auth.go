package middleware

import (
	"net/http"
	"strings"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthUser validates a user bearer token and puts the user ID on the
// request context.
func AuthUser(issuer *token.Issuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil || claims.UserID == 0 {
				logger.Warn("Invalid user token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthAdmin validates an admin bearer token and puts the admin ID and
// type on the request context. The super_admin gate itself lives in the
// admin service so it also covers non-HTTP callers.
func AuthAdmin(issuer *token.Issuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			claims, err := issuer.Parse(raw)
			if err != nil || claims.AdminID == 0 {
				logger.Warn("Invalid admin token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetAdminContext(r.Context(), claims.AdminID, claims.Type)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
