package boilerplates

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/dolittle-tools/common/internal/branding"
	"github.com/dolittle-tools/common/internal/userdata"
)

// DefaultSourceName names the source used when none are configured.
const DefaultSourceName = "dolittle"

// SourcesConfig represents the boilerplate-sources.yaml file.
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// Source is a git repository holding boilerplates.
type Source struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// DefaultSources returns the sources used when no configuration file exists.
func DefaultSources() *SourcesConfig {
	return &SourcesConfig{Sources: []Source{{
		Name: DefaultSourceName,
		URL:  branding.BoilerplatesRepoURL(),
	}}}
}

// LoadSources reads a sources file. A missing file yields DefaultSources.
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSources(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sources %s: %w", path, err)
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sources %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveSources writes the configuration back to path.
func SaveSources(path string, cfg *SourcesConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}

	if err := os.WriteFile(path, data, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing sources %s: %w", path, err)
	}
	return nil
}

// Find returns the source with the given name, or nil if not found.
func (c *SourcesConfig) Find(name string) *Source {
	for i := range c.Sources {
		if c.Sources[i].Name == name {
			return &c.Sources[i]
		}
	}
	return nil
}

// Add appends a new source. Returns an error if a source with the same
// name is already present.
func (c *SourcesConfig) Add(src Source) error {
	if src.Name == "" || src.URL == "" {
		return fmt.Errorf("a source needs both a name and a url")
	}
	if c.Find(src.Name) != nil {
		return fmt.Errorf("source %q already exists", src.Name)
	}
	c.Sources = append(c.Sources, src)
	return nil
}

// Remove removes a source by name.
func (c *SourcesConfig) Remove(name string) error {
	for i, src := range c.Sources {
		if src.Name == name {
			c.Sources = append(c.Sources[:i], c.Sources[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("source %q not found in configuration", name)
}
