package main

import (
	"fmt"
	"log/slog"

	"github.com/hyeonm/finmart-api/internal/config"
)

// handleMigrations dispatches the migration work requested on the command
// line. Exactly one mode runs per invocation; with nothing requested it
// returns an error so main can print usage instead of silently starting
// the server.
func handleMigrations(
	cfg *config.Config,
	migrateCmd string,
	migrationName string,
	verbose bool,
	verifyOnly bool,
	validateMigrations bool,
) error {
	switch {
	case validateMigrations:
		// CI gate: confirm every migration on disk has been applied.
		slog.Info("Validating applied migrations",
			"verbose", verbose,
			"mode", getExecutionMode())
		return validateAppliedMigrations(cfg, verbose)

	case verifyOnly:
		slog.Info("Verifying migrations without applying",
			"command", migrateCmd,
			"verbose", verbose)
		return verifyMigrations(cfg, verbose)

	case migrateCmd != "":
		slog.Info("Executing migration command",
			"command", migrateCmd,
			"verbose", verbose)

		// goose's create command takes the new migration's name.
		var args []string
		if migrateCmd == "create" && migrationName != "" {
			args = append(args, migrationName)
		}
		return executeMigration(cfg, migrateCmd, verbose, args...)
	}

	return fmt.Errorf("no migration operation specified")
}
