package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/tavolo-app/backend/internal/handlers"
	"github.com/tavolo-app/backend/internal/middleware"
	"github.com/tavolo-app/backend/internal/models"
	"github.com/tavolo-app/backend/internal/repositories"
	"github.com/tavolo-app/backend/pkg/config"
	"github.com/tavolo-app/backend/pkg/places"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil when Firebase credentials are absent.
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	firebaseAuthClient *auth.Client,
	placesClient *places.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) error {
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Restaurant{},
		&models.Review{},
		&models.Follow{},
		&models.FavoriteReview{},
	)
	if err != nil {
		return err
	}
	logger.Info().Msg("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	restaurantRepo := repositories.NewPostgresRestaurantRepository(pgdb)
	reviewRepo := repositories.NewPostgresReviewRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(pgdb)
	placeSearchRepo := repositories.NewMongoPlaceSearchRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(profileRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	profileHandler := handlers.NewProfileHandler(profileRepo, followRepo, favoriteRepo, reviewRepo)
	profileHandler.RegisterProfileRoutes(api)

	placeHandler := handlers.NewPlaceHandler(placesClient, restaurantRepo, placeSearchRepo, logger)
	placeHandler.RegisterPlaceRoutes(api)

	reviewHandler := handlers.NewReviewHandler(reviewRepo, restaurantRepo)
	reviewHandler.RegisterReviewRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, profileRepo)
	followHandler.RegisterFollowRoutes(api)

	feedHandler := handlers.NewFeedHandler(reviewRepo, profileRepo, restaurantRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)

	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, reviewRepo, profileRepo)
	favoriteHandler.RegisterFavoriteRoutes(api)

	logger.Info().Msg("all routes configured")
	return nil
}
