package usecase

import (
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/provider"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/email"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/storage"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

// Service groups all usecases for wiring.
type Service struct {
	Auth  AuthService
	OAuth OAuthService
	Admin AdminService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	issuer *token.Issuer,
	mailer email.Mailer,
	photos storage.PhotoStore,
	google provider.Provider,
	facebook provider.Provider,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:  NewAuthService(repo, config, issuer, mailer, log),
		OAuth: NewOAuthService(repo, issuer, photos, google, facebook, log),
		Admin: NewAdminService(repo, issuer, log),
	}
}
