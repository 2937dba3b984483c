package ciutil

import (
	"os"
	"strings"
)

// Environment variable names shared across the codebase, kept in one
// place so callers cannot drift apart on spelling.
const (
	// CI provider detection
	EnvCI               = "CI"
	EnvGitHubActions    = "GITHUB_ACTIONS"
	EnvGitHubWorkspace  = "GITHUB_WORKSPACE"
	EnvGitLabCI         = "GITLAB_CI"
	EnvGitLabProjectDir = "CI_PROJECT_DIR"
	EnvJenkinsURL       = "JENKINS_URL"
	EnvTravisCI         = "TRAVIS"
	EnvCircleCI         = "CIRCLECI"

	// Project-specific overrides
	EnvProjectRoot = "FINMART_PROJECT_ROOT"

	// Database connection variables
	EnvDatabaseURL        = "DATABASE_URL"
	EnvTestDatabaseURL    = "FINMART_TEST_DB_URL" // preferred standardized name
	EnvFinmartDatabaseURL = "FINMART_DATABASE_URL"
)

// IsCI reports whether the process appears to run under any of the
// common CI providers.
func IsCI() bool {
	for _, envVar := range []string{
		EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvTravisCI, EnvCircleCI,
	} {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}

// IsGitHubActions reports whether the process runs inside GitHub Actions
// with a usable workspace directory.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// IsGitLabCI reports whether the process runs inside GitLab CI with a
// usable project directory.
func IsGitLabCI() bool {
	return os.Getenv(EnvGitLabCI) != "" && os.Getenv(EnvGitLabProjectDir) != ""
}

// MaskSensitiveValue hides credentials in values destined for logs. It
// masks the password portion of database URLs and the middle of anything
// that looks like a key, token, or secret.
func MaskSensitiveValue(value string) string {
	if strings.HasPrefix(value, "postgres://") || strings.HasPrefix(value, "mysql://") {
		parts := strings.Split(value, "@")
		if len(parts) >= 2 {
			credentials := strings.Split(parts[0], ":")
			if len(credentials) >= 3 {
				return credentials[0] + ":" + credentials[1] + ":****@" + strings.Join(parts[1:], "@")
			}
		}
	}

	if len(value) > 8 && (strings.Contains(value, "key") ||
		strings.Contains(value, "token") ||
		strings.Contains(value, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}
