package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openforum/backend/internal/handlers"
	"github.com/openforum/backend/internal/middleware"
	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/repositories"
	"github.com/openforum/backend/internal/services"
	"github.com/openforum/backend/pkg/config"
	"github.com/openforum/backend/pkg/security"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, logger *zap.Logger) error {
	// AutoMigrate the forum entities
	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.PostTag{},
	); err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	tagRepo := repositories.NewPostgresPostTagRepository(db.Postgres)
	tokenRepo := repositories.NewRedisRefreshTokenRepository(db.Redis)

	// --- Services ---
	tokenManager := security.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL)
	authService := services.NewAuthService(logger, userRepo, tokenRepo, tokenManager, cfg.RefreshTokenTTL)
	userService := services.NewUserService(logger, userRepo, postRepo, commentRepo, likeRepo, cfg.MaxPageSize)
	postService := services.NewPostService(logger, postRepo, commentRepo, likeRepo, tagRepo, cfg.MaxPageSize)
	commentService := services.NewCommentService(logger, commentRepo, postRepo, cfg.MaxPageSize)
	likeService := services.NewLikeService(logger, likeRepo, postRepo)
	moderationService := services.NewModerationService(logger, tagRepo, postRepo, userRepo, cfg.MaxPageSize)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	likeHandler := handlers.NewLikeHandler(likeService)
	moderationHandler := handlers.NewModerationHandler(moderationService)

	// --- Unprotected routes ---
	api := e.Group("/api")
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	postHandler.RegisterPublicPostRoutes(api)
	commentHandler.RegisterPublicCommentRoutes(api)
	userHandler.RegisterUserRoutes(api)

	// --- Protected routes (require JWT authentication) ---
	protected := e.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(authService))
	postHandler.RegisterPostRoutes(protected)
	commentHandler.RegisterCommentRoutes(protected)
	likeHandler.RegisterLikeRoutes(protected)

	// --- Moderator-only routes ---
	moderation := e.Group("/api/moderation")
	moderation.Use(middleware.JWTAuthMiddleware(authService), middleware.ModeratorMiddleware())
	moderationHandler.RegisterModerationRoutes(moderation)

	logger.Info("all routes configured")
	return nil
}
