package response

import (
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
)

type AdminResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Type      string     `json:"type"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type AdminLoginResponse struct {
	Admin AdminResponse `json:"admin"`
	Token string        `json:"token"`
}

func AdminToResponse(admin *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Email:     admin.Email,
		Type:      string(admin.Type),
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt,
		LastLogin: admin.LastLogin,
	}
}
