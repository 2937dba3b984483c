package main

import (
	"fmt"
	"log/slog"

	"github.com/hyeonm/finmart-api/internal/config"
)

// loadAppConfig reads configuration from the environment (and an optional
// config file) and reports what was found. Validation happens inside
// config.Load, so a non-nil result is safe to use as-is.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Presence checks only. The values themselves never go to the logs.
	slog.Debug("Sensitive configuration",
		"database_url_present", cfg.Database.URL != "",
		"jwt_secret_present", cfg.Auth.JWTSecret != "")

	return cfg, nil
}
