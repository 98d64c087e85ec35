package wire

import (
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/adaptor"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/middleware"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/send-otp", authHandler.SendOTP)
	r.Post("/api/auth/verify-otp", authHandler.VerifyOTP)
	r.Post("/api/auth/resend-otp", authHandler.ResendOTP)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthUser(issuer, log))
		r.Get("/api/auth/me", authHandler.GetMe)
		r.Put("/api/auth/profile", authHandler.UpdateProfile)
	})
}
