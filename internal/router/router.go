package router

import (
	"log"

	"github.com/avudaiappan/blog-api/internal/handlers"
	"github.com/avudaiappan/blog-api/internal/middleware"
	"github.com/avudaiappan/blog-api/internal/repositories"
	"github.com/avudaiappan/blog-api/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config) {
	db := mgClient.Database("blog-api")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	postRepo := repositories.NewMongoPostRepository(db)
	userRepo := repositories.NewMongoUserRepository(db)
	linkRepo := repositories.NewMongoLinkRepository(db)

	authMiddleware := middleware.JWTAuthMiddleware(cfg.JWTSecret)

	// Blog post routes; mutations require a bearer token
	blog := e.Group("/api/v1/myblog")
	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(blog, authMiddleware)
	log.Println("Post routes configured.")

	// User signup/login/logout routes
	user := e.Group("/user")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(user, authMiddleware)
	log.Println("Auth routes configured.")

	// Link routes - fully public
	links := e.Group("/links")
	linkHandler := handlers.NewLinkHandler(linkRepo)
	linkHandler.RegisterLinkRoutes(links)
	log.Println("Link routes configured.")

	log.Println("All routes configured.")
}
