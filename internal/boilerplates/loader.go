package boilerplates

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/dolittle-tools/common/internal/versions"
)

// skippedDirs are never searched for descriptors.
var skippedDirs = []string{".git", "node_modules", "bin", "obj"}

// Loader finds and parses the boilerplates below a set of roots.
type Loader struct {
	fs     afero.Fs
	parser *Parser
	logger *slog.Logger
}

// NewLoader returns a loader reading from fsys. A nil fsys reads the OS
// filesystem.
func NewLoader(fsys afero.Fs, logger *slog.Logger) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fs: fsys, parser: NewParser(fsys), logger: logger}
}

// Parser returns the parser used for descriptors.
func (l *Loader) Parser() *Parser { return l.parser }

// Load walks roots for boilerplate.json files and parses them. Roots that do
// not exist are skipped, and so are boilerplates that fail to parse, with a
// warning. When several boilerplates share an identity the highest version
// wins. The result keeps discovery order.
func (l *Loader) Load(roots ...string) []*Boilerplate {
	l.logger.Info("Loading boilerplates", "roots", roots)

	var result []*Boilerplate
	index := map[string]int{}
	for _, root := range roots {
		for _, path := range l.descriptors(root) {
			b, err := l.parser.ParseBoilerplate(path)
			if err != nil {
				l.logger.Warn("Skipping invalid boilerplate", "path", path, "error", err)
				continue
			}

			i, seen := index[b.Identity()]
			if !seen {
				index[b.Identity()] = len(result)
				result = append(result, b)
				continue
			}
			if versions.Newer(b.Version, result[i].Version) {
				l.logger.Debug("Replacing boilerplate with newer version",
					"name", b.Name, "version", b.Version, "replaced", result[i].Version)
				result[i] = b
			}
		}
	}
	return result
}

// LoadDir parses the boilerplate in a single folder.
func (l *Loader) LoadDir(dir string) (*Boilerplate, error) {
	return l.parser.ParseBoilerplate(filepath.Join(dir, DescriptorFile))
}

// Templates returns the artifact templates of an artifacts boilerplate.
// Templates that fail to parse are skipped with a warning.
func (l *Loader) Templates(b *Boilerplate) []*ArtifactTemplate {
	if !b.IsArtifacts() {
		return nil
	}

	var templates []*ArtifactTemplate
	err := afero.Walk(l.fs, b.ContentDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || info.Name() != TemplateFile {
			return nil
		}
		t, err := l.parser.ParseTemplate(path, b)
		if err != nil {
			l.logger.Warn("Skipping invalid artifact template", "path", path, "error", err)
			return nil
		}
		templates = append(templates, t)
		return nil
	})
	if err != nil {
		l.logger.Warn("Could not walk artifact templates", "boilerplate", b.Name, "error", err)
	}
	return templates
}

// descriptors returns every boilerplate.json below root. A boilerplate's
// own Content folder is not searched.
func (l *Loader) descriptors(root string) []string {
	if ok, _ := afero.DirExists(l.fs, root); !ok {
		return nil
	}

	var found []string
	_ = afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if info.IsDir() {
			if path != root && (slices.Contains(skippedDirs, info.Name()) || info.Name() == ContentFolder) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() == DescriptorFile {
			found = append(found, path)
		}
		return nil
	})
	return found
}

// ByType returns the boilerplates of the given type.
func ByType(bs []*Boilerplate, typ string) []*Boilerplate {
	return filter(bs, func(b *Boilerplate) bool { return b.Type == typ })
}

// ByLanguage returns the boilerplates for language. Boilerplates without a
// language match every language.
func ByLanguage(bs []*Boilerplate, language string) []*Boilerplate {
	return filter(bs, func(b *Boilerplate) bool {
		return b.Language == language || b.Language == AnyLanguage
	})
}

// ByNamespace returns the boilerplates in namespace.
func ByNamespace(bs []*Boilerplate, namespace string) []*Boilerplate {
	return filter(bs, func(b *Boilerplate) bool { return b.Namespace == namespace })
}

// ByName returns the boilerplates called name.
func ByName(bs []*Boilerplate, name string) []*Boilerplate {
	return filter(bs, func(b *Boilerplate) bool { return b.Name == name })
}

// Compatible reports whether b can be used by the given tooling version.
func Compatible(b *Boilerplate, toolingVersion string) (bool, error) {
	return versions.Satisfies(b.Tooling, toolingVersion)
}

func filter(bs []*Boilerplate, keep func(*Boilerplate) bool) []*Boilerplate {
	var out []*Boilerplate
	for _, b := range bs {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
