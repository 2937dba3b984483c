package main

import (
	"fmt"
	"log/slog"

	"github.com/hyeonm/finmart-api/internal/config"
	"github.com/hyeonm/finmart-api/internal/platform/logger"
)

// setupAppLogger builds the process-wide structured logger from the server
// config. logger.Setup also installs it as the slog default.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
