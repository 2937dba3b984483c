package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Standard connection pieces for CI databases. The CI postgres service
// containers are provisioned with exactly these credentials.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "finmart_test"
	StandardCIOptions  = "sslmode=disable"

	// MigrationTableName is the goose bookkeeping table. The migration
	// runner, its validator, and the test database helper must agree on it.
	MigrationTableName = "schema_migrations"
)

// databaseURLSources lists the environment variables consulted for a test
// database URL, in priority order. FINMART_TEST_DB_URL is the
// standardized name; the other two stay supported for existing setups.
func databaseURLSources() []string {
	return []string{EnvDatabaseURL, EnvTestDatabaseURL, EnvFinmartDatabaseURL}
}

// GetTestDatabaseURL returns the database URL tests and the migration
// runner should connect to, or an empty string when none is configured.
// Under CI the URL is rewritten to the standard postgres:postgres
// credentials and written back to the environment.
func GetTestDatabaseURL(logger *slog.Logger) string {
	var dbURL string
	for _, envVar := range databaseURLSources() {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		dbURL = val

		if logger != nil {
			if envVar == EnvTestDatabaseURL {
				logger.Info("Using test database URL",
					"var", envVar,
					"value", MaskSensitiveValue(val))
			} else {
				logger.Warn("Using non-standardized database URL environment variable",
					"used_var", envVar,
					"preferred_var", EnvTestDatabaseURL,
					"value", MaskSensitiveValue(val))
			}
		}
		break
	}

	if dbURL == "" {
		if logger != nil {
			logger.Info("No database URL environment variables found")
		}
		return ""
	}

	if !IsCI() {
		return dbURL
	}

	standardizedURL, err := standardizeDatabaseURL(dbURL, logger)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to standardize database URL",
				"error", err,
				"original_url", MaskSensitiveValue(dbURL))
		}
		return dbURL
	}

	if standardizedURL != dbURL {
		if logger != nil {
			logger.Info("Standardized database URL for CI",
				"original", MaskSensitiveValue(dbURL),
				"standardized", MaskSensitiveValue(standardizedURL))
		}
		syncDatabaseEnvVars(standardizedURL, logger)
	}

	return standardizedURL
}

// standardizeDatabaseURL swaps the credentials of a postgres URL for the
// standard CI ones and fills in the port, database name, and connection
// options when the URL leaves them out. Non-postgres URLs come back
// unchanged.
func standardizeDatabaseURL(dbURL string, logger *slog.Logger) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}

	if parsed.Scheme != "postgres" {
		if logger != nil {
			logger.Warn("Non-postgres database URL detected", "scheme", parsed.Scheme)
		}
		return dbURL, nil
	}

	var username, password string
	if parsed.User != nil {
		username = parsed.User.Username()
		password, _ = parsed.User.Password()
	}
	if username == StandardCIUser && password == StandardCIPassword {
		return dbURL, nil
	}

	standardized := *parsed
	standardized.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if (host == "" || host == "localhost" || host == "127.0.0.1") && parsed.Port() == "" {
		standardized.Host = fmt.Sprintf("%s:%s", host, StandardCIPort)
	}
	if strings.TrimPrefix(parsed.Path, "/") == "" {
		standardized.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		standardized.RawQuery = StandardCIOptions
	}

	return standardized.String(), nil
}

// syncDatabaseEnvVars rewrites every database URL variable that is
// already set so later readers see the standardized value.
func syncDatabaseEnvVars(standardizedURL string, logger *slog.Logger) {
	for _, envVar := range databaseURLSources() {
		if os.Getenv(envVar) == "" {
			continue
		}
		if logger != nil {
			logger.Debug("Updating environment variable",
				"var", envVar,
				"value", MaskSensitiveValue(standardizedURL))
		}
		os.Setenv(envVar, standardizedURL)
	}
}
