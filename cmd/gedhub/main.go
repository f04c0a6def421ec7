package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/softagon/gedhub/internal/config"
	"github.com/softagon/gedhub/internal/models"
	"github.com/softagon/gedhub/internal/services"
	"github.com/softagon/gedhub/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed helpdesk lookup rows
	if err := models.SeedDefaultData(); err != nil {
		logger.Warnf("Failed to seed default data: %v", err)
	}

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("schema migrated and lookups seeded")

	// Start the notification retention sweep
	janitor := services.StartJanitor(models.GetDB(), cfg.Retention.NotificationDays)

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	janitor.Stop()
	if err := models.CloseDB(); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}
}
