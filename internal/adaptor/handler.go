package adaptor

import (
	"net/http"
	"strings"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/usecase"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	OAuth *OAuthHandler
	Admin *AdminHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, config, log),
		OAuth: NewOAuthHandler(service.OAuth, config, log),
		Admin: NewAdminHandler(service.Admin, config, log),
	}
}

// handleServiceError maps service error text onto the response envelope.
// Internal detail leaks only in debug mode.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, debug bool, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "too many"):
		log.Warn(operation+" rate limited", zap.Error(err))
		utils.ResponseTooManyRequests(w, errMsg)

	case strings.Contains(errMsg, "invalid or expired"):
		log.Warn(operation+" failed - invalid code", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "cannot delete your own"):
		log.Warn(operation+" failed - self delete", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "super admin"):
		log.Warn(operation+" failed - privilege boundary", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "inactive"):
		log.Warn(operation+" failed - account inactive", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		if debug {
			utils.ResponseInternalError(w, errMsg)
			return
		}
		utils.ResponseInternalError(w, "Internal server error")
	}
}
