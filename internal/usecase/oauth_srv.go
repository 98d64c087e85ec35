package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/provider"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/storage"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"

	"go.uber.org/zap"
)

// ErrNoEmail is returned when Google comes back without an email; a
// Google account always has one, so its absence means a broken grant.
var ErrNoEmail = errors.New("provider returned no email")

// ErrNotConfigured mirrors the provider sentinel for callers that only
// import the usecase package.
var ErrNotConfigured = provider.ErrNotConfigured

type OAuthService interface {
	GoogleAuthURL(state string) (string, error)
	FacebookAuthURL(state string) (string, error)
	// HandleGoogleCallback resolves the 3-way branch (by provider id /
	// by email link / create) and returns a session token.
	HandleGoogleCallback(ctx context.Context, code string) (string, error)
	HandleFacebookCallback(ctx context.Context, code string) (string, error)
}

type oauthService struct {
	repo     *repository.Repository
	issuer   *token.Issuer
	photos   storage.PhotoStore
	google   provider.Provider
	facebook provider.Provider
	log      *zap.Logger
}

func NewOAuthService(
	repo *repository.Repository,
	issuer *token.Issuer,
	photos storage.PhotoStore,
	google provider.Provider,
	facebook provider.Provider,
	log *zap.Logger,
) OAuthService {
	return &oauthService{
		repo:     repo,
		issuer:   issuer,
		photos:   photos,
		google:   google,
		facebook: facebook,
		log:      log,
	}
}

func (s *oauthService) GoogleAuthURL(state string) (string, error) {
	if !s.google.Configured() {
		return "", ErrNotConfigured
	}
	return s.google.AuthCodeURL(state), nil
}

func (s *oauthService) FacebookAuthURL(state string) (string, error) {
	if !s.facebook.Configured() {
		return "", ErrNotConfigured
	}
	return s.facebook.AuthCodeURL(state), nil
}

func (s *oauthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	profile, err := s.google.FetchProfile(ctx, code)
	if err != nil {
		return "", err
	}
	if profile.Email == nil {
		return "", ErrNoEmail
	}

	user, err := s.resolveIdentity(ctx, entity.ProviderGoogle, profile)
	if err != nil {
		return "", err
	}

	return s.finishLogin(ctx, user)
}

func (s *oauthService) HandleFacebookCallback(ctx context.Context, code string) (string, error) {
	profile, err := s.facebook.FetchProfile(ctx, code)
	if err != nil {
		return "", err
	}

	user, err := s.resolveIdentity(ctx, entity.ProviderFacebook, profile)
	if err != nil {
		return "", err
	}

	return s.finishLogin(ctx, user)
}

// resolveIdentity lands every provider login on exactly one user row:
// by provider id, by email link onto an existing account, or a fresh
// signup — in that order.
func (s *oauthService) resolveIdentity(ctx context.Context, prov entity.AuthProvider, profile *provider.Profile) (*entity.User, error) {
	user, err := s.findByProviderID(ctx, prov, profile.ProviderID)
	if err != nil {
		return nil, err
	}

	if user == nil && profile.Email != nil {
		// Email match links the provider onto the existing account so a
		// user who signed up by OTP does not end up with a duplicate.
		user, err = s.repo.User.FindByEmail(ctx, *profile.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if err := s.linkProvider(ctx, prov, user.ID, profile.ProviderID); err != nil {
				return nil, err
			}
			s.log.Info("Linked provider to existing account",
				zap.Int64("user_id", user.ID),
				zap.String("provider", string(prov)))
		}
	}

	if user == nil {
		return s.createFromProfile(ctx, prov, profile)
	}

	// Refresh profile fields the provider returned; everything it
	// omitted survives untouched.
	patch := &entity.ProfilePatch{
		Name:      profile.Name,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
	}
	patch.ProfilePhoto = s.swapPhoto(ctx, user, profile.Photo)

	if err := s.updateFromProvider(ctx, prov, user.ID, patch); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *oauthService) createFromProfile(ctx context.Context, prov entity.AuthProvider, profile *provider.Profile) (*entity.User, error) {
	signup := &entity.SocialSignup{
		ProviderID: profile.ProviderID,
		Email:      profile.Email,
		Name:       profile.Name,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
	}

	var user *entity.User
	var err error
	if prov == entity.ProviderGoogle {
		user, err = s.repo.User.CreateWithGoogle(ctx, signup)
	} else {
		user, err = s.repo.User.CreateWithFacebook(ctx, signup)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("User created via provider",
		zap.Int64("user_id", user.ID),
		zap.String("provider", string(prov)))

	// Mirroring needs the row id for the object key, so a new signup's
	// photo is attached right after the insert.
	if stored := s.swapPhoto(ctx, user, profile.Photo); stored != nil {
		if err := s.updateFromProvider(ctx, prov, user.ID, &entity.ProfilePatch{ProfilePhoto: stored}); err != nil {
			s.log.Warn("Failed to attach mirrored photo", zap.Error(err), zap.Int64("user_id", user.ID))
		} else {
			user.ProfilePhoto = stored
		}
	}

	return user, nil
}

// swapPhoto mirrors the provider photo into object storage and removes
// the previously stored one. Photos are a convenience: any failure here
// is logged and the login continues without one.
func (s *oauthService) swapPhoto(ctx context.Context, user *entity.User, photoURL *string) *string {
	if photoURL == nil || s.photos == nil {
		return nil
	}

	stored, err := s.photos.Mirror(ctx, *photoURL, user.ID)
	if err != nil {
		s.log.Warn("Failed to mirror provider photo",
			zap.Error(err),
			zap.Int64("user_id", user.ID))
		return nil
	}

	if user.ProfilePhoto != nil && *user.ProfilePhoto != stored {
		if err := s.photos.Delete(ctx, *user.ProfilePhoto); err != nil {
			s.log.Warn("Failed to delete replaced photo",
				zap.Error(err),
				zap.Int64("user_id", user.ID))
		}
	}

	return &stored
}

func (s *oauthService) finishLogin(ctx context.Context, user *entity.User) (string, error) {
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	var email string
	if user.Email != nil {
		email = *user.Email
	}

	tok, err := s.issuer.GenerateUserToken(user.ID, email)
	if err != nil {
		return "", fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}

	s.log.Info("Provider login complete",
		zap.Int64("user_id", user.ID),
		zap.String("provider", string(user.AuthProvider)))

	return tok, nil
}

func (s *oauthService) findByProviderID(ctx context.Context, prov entity.AuthProvider, providerID string) (*entity.User, error) {
	if prov == entity.ProviderGoogle {
		return s.repo.User.FindByGoogleID(ctx, providerID)
	}
	return s.repo.User.FindByFacebookID(ctx, providerID)
}

func (s *oauthService) linkProvider(ctx context.Context, prov entity.AuthProvider, userID int64, providerID string) error {
	if prov == entity.ProviderGoogle {
		return s.repo.User.LinkGoogleAccount(ctx, userID, providerID)
	}
	return s.repo.User.LinkFacebookAccount(ctx, userID, providerID)
}

func (s *oauthService) updateFromProvider(ctx context.Context, prov entity.AuthProvider, userID int64, patch *entity.ProfilePatch) error {
	if prov == entity.ProviderGoogle {
		return s.repo.User.UpdateFromGoogle(ctx, userID, patch)
	}
	return s.repo.User.UpdateFromFacebook(ctx, userID, patch)
}
