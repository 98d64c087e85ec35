package wire

import (
	"net/http"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/adaptor"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/provider"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/usecase"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/email"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/middleware"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/storage"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router plus the service layer for startup tasks.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds every dependency and registers the routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	issuer := token.NewIssuer(config.JWT.Secret, config.JWT.ExpiryHours)
	mailer := email.NewMailer(config.Email)

	// Photo storage is optional; without it provider photos are skipped.
	var photos storage.PhotoStore
	if config.Storage.Endpoint != "" {
		store, err := storage.NewPhotoStore(config.Storage, logger)
		if err != nil {
			logger.Warn("Photo storage unavailable, continuing without it", zap.Error(err))
		} else {
			photos = store
		}
	}

	google := provider.NewGoogle(config.OAuth)
	facebook := provider.NewFacebook(config.OAuth)

	service := usecase.NewService(repo, config, issuer, mailer, photos, google, facebook, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, issuer, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	issuer *token.Issuer,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendURL))

	// Apply routes
	wireAuth(r, handler.Auth, issuer, logger)
	wireOAuth(r, handler.OAuth)
	wireAdmin(r, handler.Admin, issuer, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
