package adaptor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/usecase"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookieName = "oauth_state"

// OAuthHandler drives the browser-redirect OAuth dance. This leg of the
// flow is a top-level navigation with no client listening for JSON, so
// every failure becomes a redirect to the login page with an error code.
type OAuthHandler struct {
	service     usecase.OAuthService
	frontendURL string
	log         *zap.Logger
}

func NewOAuthHandler(service usecase.OAuthService, config *utils.Config, log *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		service:     service,
		frontendURL: config.App.FrontendURL,
		log:         log,
	}
}

// GoogleLogin handles GET /api/auth/google
func (h *OAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	h.redirectToConsent(w, r, h.service.GoogleAuthURL)
}

// FacebookLogin handles GET /api/auth/facebook
func (h *OAuthHandler) FacebookLogin(w http.ResponseWriter, r *http.Request) {
	h.redirectToConsent(w, r, h.service.FacebookAuthURL)
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, "google", h.service.HandleGoogleCallback)
}

// FacebookCallback handles GET /api/auth/facebook/callback
func (h *OAuthHandler) FacebookCallback(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, "facebook", h.service.HandleFacebookCallback)
}

func (h *OAuthHandler) redirectToConsent(w http.ResponseWriter, r *http.Request, authURL func(string) (string, error)) {
	state := uuid.New().String()

	consent, err := authURL(state)
	if err != nil {
		h.redirectError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, consent, http.StatusFound)
}

func (h *OAuthHandler) handleCallback(w http.ResponseWriter, r *http.Request, providerName string,
	handle func(ctx context.Context, code string) (string, error)) {

	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		h.log.Warn("Provider returned error on callback",
			zap.String("provider", providerName),
			zap.String("error", providerErr))
		h.redirectLogin(w, r, "oauth_failed")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		h.log.Warn("OAuth state mismatch", zap.String("provider", providerName))
		h.redirectLogin(w, r, "invalid_state")
		return
	}

	code := query.Get("code")
	if code == "" {
		h.redirectLogin(w, r, "oauth_failed")
		return
	}

	tok, err := handle(r.Context(), code)
	if err != nil {
		h.log.Error("OAuth callback failed",
			zap.Error(err),
			zap.String("provider", providerName))
		h.redirectError(w, r, err)
		return
	}

	callback := fmt.Sprintf("%s/auth/callback?token=%s&success=true",
		h.frontendURL, url.QueryEscape(tok))
	http.Redirect(w, r, callback, http.StatusFound)
}

func (h *OAuthHandler) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotConfigured):
		h.redirectLogin(w, r, "oauth_not_configured")
	case errors.Is(err, usecase.ErrNoEmail):
		h.redirectLogin(w, r, "no_email")
	default:
		h.redirectLogin(w, r, "oauth_failed")
	}
}

func (h *OAuthHandler) redirectLogin(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, fmt.Sprintf("%s/login?error=%s", h.frontendURL, code), http.StatusFound)
}
