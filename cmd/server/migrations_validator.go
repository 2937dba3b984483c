package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyeonm/finmart-api/internal/ciutil"
	"github.com/hyeonm/finmart-api/internal/config"
)

// MigrationFilesData is the inventory of a migrations directory: every
// file name, how many of them are SQL migrations, and the version span
// they cover.
type MigrationFilesData struct {
	Files         []string
	SQLCount      int
	NewestFile    string
	OldestFile    string
	LatestVersion string
}

// migrationLedger summarizes the rows goose wrote to its version table.
type migrationLedger struct {
	applied []string
	failed  []string
}

// verifyMigrations checks connectivity and migration state without
// changing anything. goose's status command does exactly that.
func verifyMigrations(cfg *config.Config, verbose bool) error {
	slog.Info("Verifying database migrations setup")
	return executeMigration(cfg, "status", verbose)
}

// validateAppliedMigrations confirms the database carries every migration
// shipped with the binary. CI jobs run this as a gate after goose up.
func validateAppliedMigrations(cfg *config.Config, verbose bool) error {
	logger := slog.Default().With(
		"component", "migration_validator",
		"mode", getExecutionMode(),
	)

	// CI runners standardize their database URL through the environment;
	// prefer that over the configured one when present.
	dbURL := cfg.Database.URL
	if ciutil.IsCI() {
		if ciURL := ciutil.GetTestDatabaseURL(logger); ciURL != "" {
			dbURL = ciURL
		}
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if verbose {
		logDatabaseInfo(ctx, db, logger)
	}

	if err := verifyAppliedMigrations(db, logger); err != nil {
		if ciutil.IsCI() {
			logger.Error("Migration validation failed, the CI run cannot proceed", "error", err)
		}
		return fmt.Errorf("migration validation failed: %w", err)
	}

	logger.Info("Migration validation completed", "result", "all migrations applied")
	return nil
}

// verifyAppliedMigrations cross-checks the goose version table against the
// migration files shipped in the repository. It fails when the table has
// fewer rows than there are SQL files, when any row is marked unapplied,
// or when the newest applied version is not the newest file on disk.
func verifyAppliedMigrations(db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	table := ciutil.MigrationTableName

	var appliedCount int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&appliedCount); err != nil {
		logger.Error("Failed to count applied migrations", "error", err)
		return fmt.Errorf("failed to count applied migrations: %w", err)
	}

	migrationsPath, err := getMigrationsPath()
	if err != nil {
		logger.Error("Failed to locate migrations directory", "error", err)
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}

	onDisk, err := enumerateMigrationFiles(migrationsPath)
	if err != nil {
		logger.Error("Failed to read migrations directory", "error", err)
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	if appliedCount < onDisk.SQLCount {
		errMsg := "Not all migrations have been applied"
		logger.Error(errMsg,
			"applied_migrations", appliedCount,
			"migration_files", onDisk.SQLCount)
		return fmt.Errorf("%s: found %d applied migrations but expected %d",
			errMsg, appliedCount, onDisk.SQLCount)
	}

	ledger, err := readMigrationLedger(db, table, logger)
	if err != nil {
		logger.Error("Failed to read migration history", "error", err)
		return err
	}

	logger.Info("Applied migration versions",
		"versions", ledger.applied,
		"count", len(ledger.applied))

	if len(ledger.failed) > 0 {
		errMsg := "Some migrations failed to apply"
		logger.Error(errMsg,
			"failed_versions", ledger.failed,
			"count", len(ledger.failed))
		return fmt.Errorf("%s: %v", errMsg, ledger.failed)
	}

	if n := len(ledger.applied); n > 0 && onDisk.LatestVersion != "" {
		if latest := ledger.applied[n-1]; latest != onDisk.LatestVersion {
			errMsg := "Latest applied migration does not match the newest file on disk"
			logger.Error(errMsg,
				"latest_applied", latest,
				"newest_on_disk", onDisk.LatestVersion)
			return fmt.Errorf("%s: got %s but expected %s",
				errMsg, latest, onDisk.LatestVersion)
		}
	}

	logger.Info("Migration verification completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"migrations_applied", len(ledger.applied))
	return nil
}

// readMigrationLedger loads every version row, split into applied and
// failed sets, ordered by version so the last applied entry is the newest.
func readMigrationLedger(db *sql.DB, table string, logger *slog.Logger) (migrationLedger, error) {
	var ledger migrationLedger

	rows, err := db.Query(
		fmt.Sprintf("SELECT version_id, is_applied FROM %s ORDER BY version_id", table),
	)
	if err != nil {
		return ledger, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logger.Warn("Failed to close migration history rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var versionID string
		var isApplied bool
		if err := rows.Scan(&versionID, &isApplied); err != nil {
			return ledger, fmt.Errorf("failed to scan migration row: %w", err)
		}
		if isApplied {
			ledger.applied = append(ledger.applied, versionID)
		} else {
			ledger.failed = append(ledger.failed, versionID)
		}
	}
	if err := rows.Err(); err != nil {
		return ledger, fmt.Errorf("failed to iterate migration history: %w", err)
	}

	return ledger, nil
}

// enumerateMigrationFiles inventories the files in a migrations directory.
func enumerateMigrationFiles(dirPath string) (MigrationFilesData, error) {
	var data MigrationFilesData

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return data, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		data.Files = append(data.Files, name)

		if filepath.Ext(name) != ".sql" {
			continue
		}
		data.SQLCount++

		// Timestamped names sort chronologically as plain strings.
		if data.OldestFile == "" || name < data.OldestFile {
			data.OldestFile = name
		}
		if data.NewestFile == "" || name > data.NewestFile {
			data.NewestFile = name
		}

		// goose names migrations <version>_<description>.sql.
		version, _, found := strings.Cut(name, "_")
		if !found {
			continue
		}
		if _, err := strconv.ParseInt(version, 10, 64); err != nil {
			continue
		}
		if version > data.LatestVersion {
			data.LatestVersion = version
		}
	}

	sort.Strings(data.Files)
	return data, nil
}
