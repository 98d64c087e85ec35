package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleProvider struct {
	config *oauth2.Config
}

func NewGoogle(config utils.OAuthConfig) Provider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     config.GoogleClientID,
			ClientSecret: config.GoogleClientSecret,
			RedirectURL:  config.GoogleRedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *googleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange: %w", err)
	}

	resp, err := p.config.Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo fetch: status %d", resp.StatusCode)
	}

	var info struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		Name       string `json:"name"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google userinfo: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("google userinfo missing subject id")
	}

	return &Profile{
		ProviderID: info.ID,
		Email:      strPtr(info.Email),
		Name:       strPtr(info.Name),
		FirstName:  strPtr(info.GivenName),
		LastName:   strPtr(info.FamilyName),
		Photo:      strPtr(info.Picture),
	}, nil
}
