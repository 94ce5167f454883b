// File: /main.go
package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"yatube-api/config"
	"yatube-api/database"
	"yatube-api/logs"
	"yatube-api/middleware"
	"yatube-api/routes"
	"yatube-api/services"
	"yatube-api/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logs.LogJSON("FATAL", "Invalid configuration", map[string]interface{}{"error": err.Error()})
	}
	logs.SetLevel(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DBDriver, cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		logs.LogJSON("FATAL", "Failed to connect to database", map[string]interface{}{"error": err.Error()})
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logs.LogJSON("FATAL", "Failed to migrate database", map[string]interface{}{"error": err.Error()})
	}

	// Seed database with test data (optional - for development)
	if cfg.SeedData {
		if err := database.SeedData(db); err != nil {
			logs.LogJSON("WARN", "Failed to seed database", map[string]interface{}{"error": err.Error()})
		}
	}

	fileStorage, err := newFileStorage(context.Background(), cfg)
	if err != nil {
		logs.LogJSON("FATAL", "Failed to initialize media storage", map[string]interface{}{"error": err.Error()})
	}

	var notifier services.FollowNotifier
	if cfg.MailEnabled() {
		notifier = services.NewEmailService(cfg)
	} else {
		logs.LogJSON("INFO", "SMTP_HOST not set, follower emails are disabled", nil)
	}

	gin.SetMode(cfg.GinMode)

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, fileStorage, notifier)

	logs.LogJSON("INFO", "Starting Yatube API server", map[string]interface{}{
		"port":    cfg.Port,
		"db":      cfg.DBDriver,
		"storage": cfg.StorageBackend,
	})

	if err := router.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Failed to start server", map[string]interface{}{"error": err.Error()})
	}
}

func newFileStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.AWSBucket,
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.AWSEndpoint,
		})
	case "local":
		return storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}
