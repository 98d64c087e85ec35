package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/request"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/response"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAdminService struct {
	loginFn  func(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error)
	deleteFn func(ctx context.Context, callerType string, callerID, id int64) error
	updateFn func(ctx context.Context, callerType string, id int64, req *request.UpdateAdminRequest) (*response.AdminResponse, error)
	listErr  error
}

func (s *stubAdminService) Login(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error) {
	return s.loginFn(ctx, req)
}

func (s *stubAdminService) GetMe(ctx context.Context, adminID int64) (*response.AdminResponse, error) {
	return &response.AdminResponse{ID: adminID}, nil
}

func (s *stubAdminService) List(ctx context.Context, callerType string) ([]response.AdminResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []response.AdminResponse{}, nil
}

func (s *stubAdminService) Create(ctx context.Context, callerType string, req *request.CreateAdminRequest) (*response.AdminResponse, error) {
	return &response.AdminResponse{ID: 2, Email: req.Email, Type: "user"}, nil
}

func (s *stubAdminService) Update(ctx context.Context, callerType string, id int64, req *request.UpdateAdminRequest) (*response.AdminResponse, error) {
	return s.updateFn(ctx, callerType, id, req)
}

func (s *stubAdminService) Delete(ctx context.Context, callerType string, callerID, id int64) error {
	return s.deleteFn(ctx, callerType, callerID, id)
}

func (s *stubAdminService) ListUsers(ctx context.Context, callerType string) ([]response.UserResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []response.UserResponse{}, nil
}

func (s *stubAdminService) EnsureBootstrap(ctx context.Context, email, password string) error {
	return nil
}

func newAdminHandler(svc *stubAdminService) *AdminHandler {
	return NewAdminHandler(svc, &utils.Config{}, zap.NewNop())
}

func adminContext(req *http.Request, adminID int64, adminType string) *http.Request {
	return req.WithContext(utils.SetAdminContext(req.Context(), adminID, adminType))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminLoginHandlerInvalidCredentials(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		loginFn: func(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error) {
			return nil, fmt.Errorf("invalid credentials")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginHandlerInactive(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		loginFn: func(ctx context.Context, req *request.AdminLoginRequest) (*response.AdminLoginResponse, error) {
			return nil, fmt.Errorf("Admin account is inactive")
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminListHandlerPrivilegeBoundary(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		listErr: fmt.Errorf("super admin access required"),
	})

	req := adminContext(httptest.NewRequest(http.MethodGet, "/api/admin/admins", nil), 2, "user")
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateHandlerValidation(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{})

	req := adminContext(httptest.NewRequest(http.MethodPost, "/api/admin/admins", strings.NewReader(`{"email":"a@example.com","password":"short"}`)), 1, "super_admin")
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCreateHandlerSuccess(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{})

	req := adminContext(httptest.NewRequest(http.MethodPost, "/api/admin/admins", strings.NewReader(`{"email":"a@example.com","password":"secret1"}`)), 1, "super_admin")
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminUpdateHandlerBadID(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{})

	req := adminContext(httptest.NewRequest(http.MethodPut, "/api/admin/admins/abc", strings.NewReader(`{}`)), 1, "super_admin")
	req = withURLParam(req, "id", "abc")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateHandlerSuperAdminImmutable(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		updateFn: func(ctx context.Context, callerType string, id int64, req *request.UpdateAdminRequest) (*response.AdminResponse, error) {
			return nil, fmt.Errorf("super admin account cannot be modified")
		},
	})

	req := adminContext(httptest.NewRequest(http.MethodPut, "/api/admin/admins/1", strings.NewReader(`{"email":"x@example.com"}`)), 1, "super_admin")
	req = withURLParam(req, "id", "1")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminDeleteHandlerSelfDelete(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		deleteFn: func(ctx context.Context, callerType string, callerID, id int64) error {
			assert.Equal(t, callerID, id)
			return fmt.Errorf("cannot delete your own account")
		},
	})

	req := adminContext(httptest.NewRequest(http.MethodDelete, "/api/admin/admins/1", nil), 1, "super_admin")
	req = withURLParam(req, "id", "1")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDeleteHandlerSuccess(t *testing.T) {
	handler := newAdminHandler(&stubAdminService{
		deleteFn: func(ctx context.Context, callerType string, callerID, id int64) error {
			assert.Equal(t, int64(1), callerID)
			assert.Equal(t, int64(2), id)
			return nil
		},
	})

	req := adminContext(httptest.NewRequest(http.MethodDelete, "/api/admin/admins/2", nil), 1, "super_admin")
	req = withURLParam(req, "id", "2")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
