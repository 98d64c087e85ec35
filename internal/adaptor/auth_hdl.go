package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/request"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/usecase"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	debug   bool
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		debug:   config.App.Debug,
		log:     log,
	}
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.SendOTP(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "send OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", resp)
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP verified successfully", resp)
}

// ResendOTP handles POST /api/auth/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.ResendOTP(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "resend OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", resp)
}

// GetMe handles GET /api/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", resp)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", resp)
}
