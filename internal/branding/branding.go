// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary; values missing from it fall back
// to the hard defaults below.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName             string `yaml:"cli_name"`
	DisplayName         string `yaml:"display_name"`
	Description         string `yaml:"description"`
	HomeDir             string `yaml:"home_dir"`
	EnvPrefix           string `yaml:"env_prefix"`
	GoModule            string `yaml:"go_module"`
	BoilerplatesRepoURL string `yaml:"boilerplates_repo_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "dolittle",
			DisplayName: "Dolittle",
			Description: "Scaffolding tooling for Dolittle applications",
			HomeDir:     ".dolittle",
			EnvPrefix:   "DOLITTLE",
			GoModule:    "github.com/dolittle-tools/common",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "dolittle").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".dolittle").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DOLITTLE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// BoilerplatesRepoURL returns the git URL of the default boilerplate source.
// Empty when the build ships without one.
func BoilerplatesRepoURL() string { load(); return defaults.BoilerplatesRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "DOLITTLE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
