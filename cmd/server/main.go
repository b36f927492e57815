package main

import (
	"context"
	"os"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tavolo-app/backend/internal/router"
	"github.com/tavolo-app/backend/pkg/config"
	"github.com/tavolo-app/backend/pkg/firebase"
	"github.com/tavolo-app/backend/pkg/places"
	"github.com/tavolo-app/backend/validators"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "tavolo-api").Logger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Initialize Firebase (optional; nil client disables Firebase login)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Firebase")
	}
	var firebaseAuth *auth.Client
	if firebaseApp != nil {
		firebaseAuth = firebaseApp.AuthClient
	}
	if firebaseAuth == nil {
		logger.Warn().Msg("Firebase credentials not found, Firebase login disabled")
	}

	// Google Places client
	placesClient := places.NewClient(places.ClientConfig{
		APIKey: cfg.GooglePlacesAPIKey,
		Logger: logger,
	})

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuth, placesClient, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
