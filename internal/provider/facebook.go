package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookGraphURL = "https://graph.facebook.com/me"

type facebookProvider struct {
	config *oauth2.Config
}

func NewFacebook(config utils.OAuthConfig) Provider {
	return &facebookProvider{
		config: &oauth2.Config{
			ClientID:     config.MetaAppID,
			ClientSecret: config.MetaAppSecret,
			RedirectURL:  config.MetaRedirectURI,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
	}
}

func (p *facebookProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

func (p *facebookProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *facebookProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("facebook code exchange: %w", err)
	}

	query := url.Values{}
	query.Set("fields", "id,name,email,first_name,last_name,picture.type(large)")

	resp, err := p.config.Client(ctx, tok).Get(facebookGraphURL + "?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("facebook profile fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook profile fetch: status %d", resp.StatusCode)
	}

	var info struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Picture   struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode facebook profile: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("facebook profile missing id")
	}

	// Email stays nil when the permission was declined; the caller
	// decides whether a no-email signup is acceptable.
	return &Profile{
		ProviderID: info.ID,
		Email:      strPtr(info.Email),
		Name:       strPtr(info.Name),
		FirstName:  strPtr(info.FirstName),
		LastName:   strPtr(info.LastName),
		Photo:      strPtr(info.Picture.Data.URL),
	}, nil
}
