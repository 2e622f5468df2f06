package main

import (
	"log"

	"github.com/avudaiappan/blog-api/internal/router"
	"github.com/avudaiappan/blog-api/pkg/config"
	"github.com/avudaiappan/blog-api/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	config.LoadDotEnv()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database connection
	db, err := config.InitDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
