package response

import (
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
)

type OTPSentResponse struct {
	Email     string `json:"email"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

type UserResponse struct {
	ID                  int64     `json:"id"`
	Email               *string   `json:"email"`
	Name                *string   `json:"name"`
	FirstName           *string   `json:"first_name,omitempty"`
	LastName            *string   `json:"last_name,omitempty"`
	ProfilePhoto        *string   `json:"profile_photo,omitempty"`
	PhoneNumber         *string   `json:"phone_number,omitempty"`
	State               *string   `json:"state,omitempty"`
	District            *string   `json:"district,omitempty"`
	EmailVerified       bool      `json:"email_verified"`
	AuthProvider        string    `json:"auth_provider"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		ProfilePhoto:        user.ProfilePhoto,
		PhoneNumber:         user.PhoneNumber,
		State:               user.State,
		District:            user.District,
		EmailVerified:       user.EmailVerified,
		AuthProvider:        string(user.AuthProvider),
		OnboardingCompleted: user.OnboardingCompleted,
		CreatedAt:           user.CreatedAt,
	}
}
