package wire

import (
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOAuth(r chi.Router, oauthHandler *adaptor.OAuthHandler) {
	// Browser-redirect flows, all public
	r.Get("/api/auth/google", oauthHandler.GoogleLogin)
	r.Get("/api/auth/google/callback", oauthHandler.GoogleCallback)
	r.Get("/api/auth/facebook", oauthHandler.FacebookLogin)
	r.Get("/api/auth/facebook/callback", oauthHandler.FacebookCallback)
}
