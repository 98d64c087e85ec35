package entity

import "time"

type AuthProvider string

const (
	ProviderEmail    AuthProvider = "email"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

type User struct {
	ID                  int64        `db:"id"`
	Email               *string      `db:"email"`
	GoogleID            *string      `db:"google_id"`
	FacebookID          *string      `db:"facebook_id"`
	Name                *string      `db:"name"`
	FirstName           *string      `db:"first_name"`
	LastName            *string      `db:"last_name"`
	ProfilePhoto        *string      `db:"profile_photo"`
	DateOfBirth         *string      `db:"date_of_birth"`
	Gender              *string      `db:"gender"`
	PhoneNumber         *string      `db:"phone_number"`
	State               *string      `db:"state"`
	District            *string      `db:"district"`
	EmailVerified       bool         `db:"email_verified"`
	AuthProvider        AuthProvider `db:"auth_provider"`
	OnboardingCompleted bool         `db:"onboarding_completed"`
	IsActive            bool         `db:"is_active"`
	CreatedAt           time.Time    `db:"created_at"`
	LastLogin           *time.Time   `db:"last_login"`
}

// HasCompletedOnboarding derives completion from actual profile state.
// Onboarding is finished once a display name has been set.
func (u *User) HasCompletedOnboarding() bool {
	return u.Name != nil && *u.Name != ""
}

// SocialSignup carries the provider profile for a first-time social account.
// Email is nil when the provider withheld it (Facebook permission).
type SocialSignup struct {
	ProviderID   string
	Email        *string
	Name         *string
	FirstName    *string
	LastName     *string
	ProfilePhoto *string
}

// ProfilePatch is a partial update from an OAuth provider. Only non-nil
// fields are written, so fields the provider did not return survive login.
type ProfilePatch struct {
	Name         *string
	FirstName    *string
	LastName     *string
	ProfilePhoto *string
	Email        *string
}
