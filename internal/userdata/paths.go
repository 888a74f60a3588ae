package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dolittle-tools/common/internal/branding"
)

// Directory and file name constants for the home directory convention.
const (
	BoilerplatesDir   = "boilerplates"
	PluginsDir        = "plugins"
	SourcesFile       = "boilerplate-sources.yaml"
	SyncMarkerFile    = ".last-sync"
	ProjectConfigFile = "bounded-context.json"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetHomeRoot returns the tool's home directory.
// It checks the DOLITTLE_HOME environment variable first,
// then falls back to ~/.dolittle.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetBoilerplatesRoot returns the directory synced boilerplate sources are
// cloned into. DOLITTLE_BOILERPLATES overrides the default.
func GetBoilerplatesRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("BOILERPLATES")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, BoilerplatesDir), nil
}

// GetPluginsRoot returns the directory plugins are installed into.
// DOLITTLE_PLUGINS overrides the default.
func GetPluginsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("PLUGINS")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, PluginsDir), nil
}

// GetSourcesPath returns the path to boilerplate-sources.yaml.
func GetSourcesPath() (string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, SourcesFile), nil
}

// BoilerplatesExist reports whether at least one source has been synced.
func BoilerplatesExist() (bool, error) {
	root, err := GetBoilerplatesRoot()
	if err != nil {
		return false, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading boilerplates directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return true, nil
		}
	}
	return false, nil
}
