package plugins

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/dolittle-tools/common/internal/versions"
)

// ManifestFile is the name of a plugin manifest.
const ManifestFile = "plugin.yaml"

// Supported runtimes.
const (
	RuntimeExec = "exec"
	RuntimeNode = "node"
)

// Manifest is a parsed plugin.yaml.
type Manifest struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Executable  string `yaml:"executable"`
	Runtime     string `yaml:"runtime,omitempty"`
	Tooling     string `yaml:"tooling,omitempty"`
}

// Plugin is an installed plugin.
type Plugin struct {
	Manifest
	Dir string
}

// Entry returns the absolute path of the plugin executable.
func (p *Plugin) Entry() string {
	if filepath.IsAbs(p.Executable) {
		return p.Executable
	}
	return filepath.Join(p.Dir, p.Executable)
}

// Parse reads a plugin.yaml file.
func Parse(path string) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing plugin manifest %s: %w", path, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("plugin manifest %s: missing name", path)
	}
	if m.Executable == "" {
		return nil, fmt.Errorf("plugin manifest %s: missing executable", path)
	}
	switch m.Runtime {
	case "":
		m.Runtime = RuntimeExec
	case RuntimeExec, RuntimeNode:
	default:
		return nil, fmt.Errorf("plugin manifest %s: unknown runtime %q: supported runtimes are %q and %q", path, m.Runtime, RuntimeExec, RuntimeNode)
	}
	return &Plugin{Manifest: m, Dir: filepath.Dir(path)}, nil
}

// Discover returns the plugins installed below root, sorted by name.
// Manifests are looked for one and two levels down so that several
// versions can sit side by side (root/<name>/<version>/plugin.yaml); the
// highest version of each plugin wins. Plugins incompatible with
// toolingVersion and invalid manifests are skipped with a warning.
func Discover(root, toolingVersion string, logger *slog.Logger) []*Plugin {
	if logger == nil {
		logger = slog.Default()
	}

	var paths []string
	for _, pattern := range []string{"*/" + ManifestFile, "*/*/" + ManifestFile} {
		matches, _ := filepath.Glob(filepath.Join(root, pattern))
		paths = append(paths, matches...)
	}

	byName := map[string]*Plugin{}
	for _, path := range paths {
		p, err := Parse(path)
		if err != nil {
			logger.Warn("Skipping invalid plugin", "path", path, "error", err)
			continue
		}
		ok, err := versions.Satisfies(p.Tooling, toolingVersion)
		if err != nil || !ok {
			logger.Warn("Skipping incompatible plugin", "plugin", p.Name, "tooling", p.Tooling, "error", err)
			continue
		}
		if current, seen := byName[p.Name]; !seen || versions.Newer(p.Version, current.Version) {
			byName[p.Name] = p
		}
	}

	result := make([]*Plugin, 0, len(byName))
	for _, p := range byName {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
