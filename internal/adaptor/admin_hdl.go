package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/request"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/usecase"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	debug   bool
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, config *utils.Config, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		debug:   config.App.Debug,
		log:     log,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "admin login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// GetMe handles GET /api/admin/me
func (h *AdminHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utils.GetAdminIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.GetMe(r.Context(), adminID)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "get admin")
		return
	}

	utils.ResponseSuccess(w, "Admin retrieved", resp)
}

// List handles GET /api/admin/admins
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	callerType, _ := utils.GetAdminTypeFromContext(r.Context())

	resp, err := h.service.List(r.Context(), callerType)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "list admins")
		return
	}

	utils.ResponseSuccess(w, "Admins retrieved", resp)
}

// Create handles POST /api/admin/admins
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerType, _ := utils.GetAdminTypeFromContext(r.Context())

	var req request.CreateAdminRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Create(r.Context(), callerType, &req)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "create admin")
		return
	}

	utils.ResponseCreated(w, "Admin created", resp)
}

// Update handles PUT /api/admin/admins/{id}
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerType, _ := utils.GetAdminTypeFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid admin ID", nil)
		return
	}

	var req request.UpdateAdminRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Update(r.Context(), callerType, id, &req)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "update admin")
		return
	}

	utils.ResponseSuccess(w, "Admin updated", resp)
}

// Delete handles DELETE /api/admin/admins/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerType, _ := utils.GetAdminTypeFromContext(r.Context())
	callerID, ok := utils.GetAdminIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid admin ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), callerType, callerID, id); err != nil {
		handleServiceError(w, h.log, h.debug, err, "delete admin")
		return
	}

	utils.ResponseSuccess(w, "Admin deleted", nil)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	callerType, _ := utils.GetAdminTypeFromContext(r.Context())

	resp, err := h.service.ListUsers(r.Context(), callerType)
	if err != nil {
		handleServiceError(w, h.log, h.debug, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", resp)
}
