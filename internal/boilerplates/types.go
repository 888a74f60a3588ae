package boilerplates

import (
	"encoding/json"
	"path/filepath"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// File and folder names making up a boilerplate.
const (
	DescriptorFile = "boilerplate.json"
	TemplateFile   = "template.json"
	ContentFolder  = "Content"
)

// Boilerplate types.
const (
	TypeApplication    = "application"
	TypeBoundedContext = "boundedContext"
	TypeArtifacts      = "artifacts"
)

// AnyLanguage is used when a descriptor does not name a language.
const AnyLanguage = "any"

// Boilerplate is a parsed boilerplate.json.
type Boilerplate struct {
	Language            string   `json:"language"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Type                string   `json:"type"`
	Namespace           string   `json:"namespace,omitempty"`
	Version             string   `json:"version,omitempty"`
	Tooling             string   `json:"tooling,omitempty"`
	PathsNeedingBinding []string `json:"pathsNeedingBinding,omitempty"`
	FilesNeedingBinding []string `json:"filesNeedingBinding,omitempty"`

	RawDependencies json.RawMessage           `json:"dependencies,omitempty"`
	Dependencies    []dependencies.Dependency `json:"-"`

	// Path is the location of the descriptor file.
	Path string `json:"-"`
}

// Dir returns the folder holding the boilerplate.
func (b *Boilerplate) Dir() string { return filepath.Dir(b.Path) }

// ContentDir returns the folder rendered when the boilerplate is used.
func (b *Boilerplate) ContentDir() string { return filepath.Join(b.Dir(), ContentFolder) }

// IsArtifacts reports whether the boilerplate holds artifact templates.
func (b *Boilerplate) IsArtifacts() bool { return b.Type == TypeArtifacts }

// Identity is the key boilerplates are deduplicated by.
func (b *Boilerplate) Identity() string {
	return b.Language + "|" + b.Type + "|" + b.Name + "|" + b.Namespace
}

// ArtifactTemplate is a parsed template.json inside an artifacts boilerplate.
type ArtifactTemplate struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	Area          string   `json:"area"`
	IncludedFiles []string `json:"includedFiles"`

	RawDependencies json.RawMessage           `json:"dependencies,omitempty"`
	Dependencies    []dependencies.Dependency `json:"-"`

	// Path is the location of the template.json file.
	Path string `json:"-"`
	// Boilerplate is the artifacts boilerplate owning the template.
	Boilerplate *Boilerplate `json:"-"`
}

// Dir returns the folder holding the template files.
func (t *ArtifactTemplate) Dir() string { return filepath.Dir(t.Path) }

// AllDependencies returns the boilerplate-wide dependencies followed by the
// template's own. A template dependency replaces a boilerplate dependency
// with the same name.
func (t *ArtifactTemplate) AllDependencies() []dependencies.Dependency {
	own := make(map[string]bool, len(t.Dependencies))
	for _, dep := range t.Dependencies {
		own[dep.Name] = true
	}

	var deps []dependencies.Dependency
	if t.Boilerplate != nil {
		for _, dep := range t.Boilerplate.Dependencies {
			if !own[dep.Name] {
				deps = append(deps, dep)
			}
		}
	}
	return append(deps, t.Dependencies...)
}
