// Package main implements the entry point for the finmart API server,
// which manages member profiles, recent search keywords, and product
// carts for the financial product marketplace.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/hyeonm/finmart-api/internal/config"
)

// main parses command-line flags and either runs a migration operation or
// initializes the full application and starts the HTTP server.
func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run database migrations (up, down, reset, status, version, create)",
	)
	migrationName := flag.String(
		"migration-name",
		"",
		"Name for a new migration (used with -migrate=create)",
	)
	verbose := flag.Bool("verbose", false, "Enable verbose migration logging")
	verifyOnly := flag.Bool(
		"verify-migrations",
		false,
		"Verify migration setup without applying changes",
	)
	validateMigrations := flag.Bool(
		"validate-migrations",
		false,
		"Validate that all migrations have been applied (CI)",
	)
	flag.Parse()

	cfg, logger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Migration flags short-circuit server startup: the binary doubles as
	// the migration runner so deploys need only one artifact.
	if *migrateCmd != "" || *verifyOnly || *validateMigrations {
		if err := handleMigrations(cfg, *migrateCmd, *migrationName, *verbose, *verifyOnly, *validateMigrations); err != nil {
			logger.Error("Migration operation failed", "error", err)
			log.Fatalf("Migration failed: %v", err)
		}
		logger.Info("Migration operation completed successfully")
		return
	}

	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config, the configured root logger, and any error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return cfg, logger, nil
}
