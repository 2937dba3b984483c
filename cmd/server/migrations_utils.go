package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/hyeonm/finmart-api/internal/ciutil"
)

// slogGooseLogger routes goose output through slog. Fatalf logs at error
// level without exiting; the caller decides what a failed migration means
// for the process.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// getExecutionMode labels log records so CI output can be told apart from
// a developer's machine.
func getExecutionMode() string {
	if ciutil.IsCI() {
		return "ci"
	}
	return "local"
}

// maskDatabaseURL replaces the password portion of a connection URL so it
// can be logged. Anything unparseable comes back as a fixed placeholder.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User == nil {
		return dbURL
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	return parsed.String()
}

// extractHostFromURL pulls the bare hostname out of a connection URL for
// log fields.
func extractHostFromURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "unknown"
	}
	return parsed.Hostname()
}

// directoryExists reports whether path names an existing directory.
func directoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// getMigrationsPath locates the migrations directory relative to the
// project root.
func getMigrationsPath() (string, error) {
	migrationsPath, err := ciutil.FindMigrationsDir(nil)
	if err != nil {
		return "", fmt.Errorf("could not locate migrations directory: %w", err)
	}
	if !directoryExists(migrationsPath) {
		return "", fmt.Errorf("migrations directory does not exist at %s", migrationsPath)
	}
	return migrationsPath, nil
}

// logDatabaseInfo reports server version, user, and database name along
// with the state of the migration tracking table. Only verbose runs call
// it; every probe is best-effort.
func logDatabaseInfo(ctx context.Context, db *sql.DB, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()

	probes := []struct {
		key   string
		query string
	}{
		{"version", "SELECT version()"},
		{"user", "SELECT current_user"},
		{"database", "SELECT current_database()"},
	}
	for _, probe := range probes {
		var value string
		if err := db.QueryRowContext(ctx, probe.query).Scan(&value); err != nil {
			logger.Warn("Database probe failed", "probe", probe.key, "error", err)
			continue
		}
		logger.Info("Database info", probe.key, value)
	}

	table := ciutil.MigrationTableName
	existsQuery := fmt.Sprintf(
		"SELECT EXISTS (SELECT FROM pg_tables WHERE schemaname = 'public' AND tablename = '%s')",
		table,
	)
	var tableExists bool
	if err := db.QueryRowContext(ctx, existsQuery).Scan(&tableExists); err != nil {
		logger.Warn("Failed to check for migration tracking table", "table", table, "error", err)
		return
	}
	if !tableExists {
		logger.Info("Migration tracking table not created yet", "table", table)
		return
	}

	var applied int
	if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&applied); err != nil {
		logger.Warn("Failed to count applied migrations", "error", err)
		return
	}
	logger.Info("Migration tracking table", "table", table, "applied", applied)

	logger.Debug("Database information gathering completed",
		"duration_ms", time.Since(start).Milliseconds())
}
