package wire

import (
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/adaptor"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/middleware"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/admin/login", adminHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// The super_admin gate for mutations is enforced in the service.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthAdmin(issuer, log))
		r.Get("/api/admin/me", adminHandler.GetMe)
		r.Get("/api/admin/admins", adminHandler.List)
		r.Post("/api/admin/admins", adminHandler.Create)
		r.Put("/api/admin/admins/{id}", adminHandler.Update)
		r.Delete("/api/admin/admins/{id}", adminHandler.Delete)
		r.Get("/api/admin/users", adminHandler.ListUsers)
	})
}
