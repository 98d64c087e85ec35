// Package provider wraps the OAuth2 authorization-code dance for the
// social login providers. Each provider exchanges a callback code and
// normalizes the fetched profile into a Profile.
package provider

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a provider's credentials are absent
// from the environment.
var ErrNotConfigured = errors.New("oauth provider not configured")

// Profile is the normalized identity a provider returns. Email is a
// pointer because Facebook may withhold it when the permission was not
// granted.
type Profile struct {
	ProviderID string
	Email      *string
	Name       *string
	FirstName  *string
	LastName   *string
	Photo      *string
}

type Provider interface {
	// Configured reports whether credentials are present.
	Configured() bool
	// AuthCodeURL builds the consent-screen redirect for the given state.
	AuthCodeURL(state string) string
	// FetchProfile exchanges the callback code and fetches the profile.
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
