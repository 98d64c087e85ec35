// main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/cmd"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/wire"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/database"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Seed the bootstrap super admin if missing
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Service.Admin.EnsureBootstrap(bootCtx,
		config.Admin.SuperAdminEmail, config.Admin.SuperAdminPassword); err != nil {
		cancel()
		logger.Fatal("Failed to bootstrap super admin", zap.Error(err))
	}
	cancel()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
