package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dolittle-tools/common/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys read by the dependency engine.
const (
	KeyCoreLanguage     = "coreLanguage"
	KeyAreas            = "areas"
	KeyMaxDepth         = "discovery.maxDepth"
	KeyMaxAttempts      = "prompt.maxAttempts"
	KeyBoilerplatePaths = "boilerplates.paths"
)

// Defaults for the engine keys.
const (
	DefaultCoreLanguage = "csharp"
	DefaultMaxDepth     = 64
	DefaultMaxAttempts  = 3
)

// DefaultAreas maps a core language to the folder pattern of each area.
// Patterns are matched against absolute slash separated paths.
var DefaultAreas = map[string]map[string]string{
	"csharp": {
		"concepts": "(^|/)Concepts$",
		"domain":   "(^|/)Domain$",
		"events":   "(^|/)Events$",
		"read":     "(^|/)Read$",
	},
}

// Dir returns the path to the config directory (~/.dolittle/).
// DOLITTLE_HOME overrides the default.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.dolittle/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyCoreLanguage, DefaultCoreLanguage)
	viper.SetDefault(KeyAreas, DefaultAreas)
	viper.SetDefault(KeyMaxDepth, DefaultMaxDepth)
	viper.SetDefault(KeyMaxAttempts, DefaultMaxAttempts)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CoreLanguage returns the configured default core language.
func CoreLanguage() string {
	if v := viper.GetString(KeyCoreLanguage); v != "" {
		return v
	}
	return DefaultCoreLanguage
}

// Areas returns the language -> area -> directory pattern mapping. Entries
// from the config file are layered over DefaultAreas per language.
func Areas() map[string]map[string]string {
	areas := make(map[string]map[string]string, len(DefaultAreas))
	for lang, byArea := range DefaultAreas {
		areas[lang] = make(map[string]string, len(byArea))
		for area, pattern := range byArea {
			areas[lang][area] = pattern
		}
	}
	for lang, raw := range viper.GetStringMap(KeyAreas) {
		byArea, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if areas[lang] == nil {
			areas[lang] = map[string]string{}
		}
		for area, pattern := range byArea {
			if s, ok := pattern.(string); ok && s != "" {
				areas[lang][area] = s
			}
		}
	}
	return areas
}

// MaxDepth returns the maximum number of ancestor directories visited while
// searching upwards.
func MaxDepth() int {
	if v := viper.GetInt(KeyMaxDepth); v > 0 {
		return v
	}
	return DefaultMaxDepth
}

// MaxAttempts returns how many times a prompt is asked before a rule
// violation becomes fatal.
func MaxAttempts() int {
	if v := viper.GetInt(KeyMaxAttempts); v > 0 {
		return v
	}
	return DefaultMaxAttempts
}

// BoilerplatePaths returns extra folders searched for boilerplates.
func BoilerplatePaths() []string {
	return viper.GetStringSlice(KeyBoilerplatePaths)
}
