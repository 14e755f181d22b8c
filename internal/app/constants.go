// Package app - constants.go centralizes magic strings and configuration values.
package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory and file paths for aasview configuration.
const (
	// GlobalConfigDir is the application subdirectory within the OS config directory.
	GlobalConfigDir = "aasview"

	// ContextsDir is the subdirectory for named context config files.
	ContextsDir = "contexts"

	// DefaultContextName is used when no context has been selected.
	DefaultContextName = "default"

	// KeychainService is the service name used in the OS keychain.
	KeychainService = "aasview"

	// RepositoryURLEnvVar overrides the repository base URL.
	RepositoryURLEnvVar = "AASVIEW_REPOSITORY_URL"

	// DefaultRepositoryURL is the repository API targeted when neither a
	// flag nor the environment names one.
	DefaultRepositoryURL = "http://localhost:8000/api/v1"
)

// GlobalConfigPath returns the platform-appropriate global config directory
// for aasview (e.g. ~/.config/aasview on Linux,
// ~/Library/Application Support/aasview on macOS).
func GlobalConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir), nil
}

// File permissions.
const (
	// DirPerm is the permission mode for directories.
	DirPerm = 0o755

	// FilePerm is the permission mode for regular files.
	FilePerm = 0o644
)

// Fetch status values used while loading repository data.
const (
	FetchStatusIdle    = "idle"
	FetchStatusLoading = "loading"
	FetchStatusOK      = "ok"
	FetchStatusBad     = "bad"
)

// Save status values for an edit session.
const (
	SaveStatusIdle    = "idle"
	SaveStatusSaving  = "saving"
	SaveStatusSuccess = "success"
	SaveStatusError   = "error"
)
