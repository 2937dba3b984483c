package ciutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Errors returned by project root detection.
var (
	ErrProjectRootNotFound = errors.New("unable to find project root")
	ErrInvalidProjectRoot  = errors.New("invalid project root: no go.mod file found")
)

// migrationsRelPath is where the goose migration files live relative to
// the project root.
var migrationsRelPath = filepath.Join("internal", "platform", "postgres", "migrations")

// FindProjectRoot returns the absolute path of the repository root.
//
// Resolution order: the FINMART_PROJECT_ROOT override, the workspace
// directory of the detected CI provider (GitHub Actions, GitLab CI), and
// finally an upward walk from the working directory looking for go.mod
// or .git. A nil logger disables progress logging.
func FindProjectRoot(logger *slog.Logger) (string, error) {
	sources := []struct {
		name  string
		value string
	}{
		{EnvProjectRoot, os.Getenv(EnvProjectRoot)},
		{EnvGitHubWorkspace, githubWorkspaceDir()},
		{EnvGitLabProjectDir, gitlabProjectDir()},
	}

	for _, source := range sources {
		if source.value == "" {
			continue
		}
		if !isRepoRoot(source.value) {
			return "", fmt.Errorf("%w at %s", ErrInvalidProjectRoot, source.value)
		}
		if logger != nil {
			logger.Info("Using project root from environment",
				"source", source.name,
				"project_root", source.value)
		}
		return source.value, nil
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	return walkUpForRoot(workingDir, logger)
}

func githubWorkspaceDir() string {
	if !IsGitHubActions() {
		return ""
	}
	return os.Getenv(EnvGitHubWorkspace)
}

func gitlabProjectDir() string {
	if !IsGitLabCI() {
		return ""
	}
	return os.Getenv(EnvGitLabProjectDir)
}

// walkUpForRoot climbs from startDir toward the filesystem root looking
// for a go.mod file or a .git directory. The walk is capped so a stray
// working directory cannot send it scanning the whole disk.
func walkUpForRoot(startDir string, logger *slog.Logger) (string, error) {
	const maxHops = 10

	dir := startDir
	for i := 0; i < maxHops; i++ {
		if isFile(filepath.Join(dir, "go.mod")) || isDir(filepath.Join(dir, ".git")) {
			if logger != nil {
				logger.Debug("Found project root",
					"project_root", dir,
					"hops", i)
			}
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if logger != nil {
		logger.Error("Failed to find project root",
			"start_dir", startDir,
			"max_hops", maxHops)
	}
	return "", ErrProjectRootNotFound
}

// isRepoRoot reports whether dir exists and carries a go.mod file.
func isRepoRoot(dir string) bool {
	return isDir(dir) && isFile(filepath.Join(dir, "go.mod"))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FindMigrationsDir resolves the migrations directory under the project
// root and verifies it exists.
func FindMigrationsDir(logger *slog.Logger) (string, error) {
	projectRoot, err := FindProjectRoot(logger)
	if err != nil {
		return "", fmt.Errorf("failed to find project root: %w", err)
	}

	migrationsPath := filepath.Join(projectRoot, migrationsRelPath)
	if !isDir(migrationsPath) {
		return "", fmt.Errorf("migrations directory not found at %s", migrationsPath)
	}

	return migrationsPath, nil
}
