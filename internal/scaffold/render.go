package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/userdata"
)

// ErrOutsideDestination is returned when a rendered path escapes the
// destination folder.
var ErrOutsideDestination = errors.New("rendered path is outside the destination")

// binaryExtensions are never rendered as templates.
var binaryExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".ico", ".obj", ".dll", ".bin", ".exe", ".ttf", ".woff", ".woff2", ".zip"}

const delimiter = "{{"

// Request describes one rendering.
type Request struct {
	// Source is the folder whose files are rendered.
	Source      string
	Destination string
	Context     *dependencies.Context

	// PathsNeedingBinding and FilesNeedingBinding are doublestar globs over
	// source-relative slash paths. When both are empty every path and file
	// containing a template delimiter is rendered.
	PathsNeedingBinding []string
	FilesNeedingBinding []string

	// IncludedFiles restricts rendering to these source-relative files.
	IncludedFiles []string
	// Exclude lists base names that are never copied.
	Exclude []string
}

// Result holds the outcome of a rendering.
type Result struct {
	Destination string
	Files       []string
	Skipped     []string
}

// Renderer writes rendered content to a filesystem.
type Renderer struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New returns a renderer writing to fsys. A nil fsys writes to the OS
// filesystem.
func New(fsys afero.Fs, logger *slog.Logger) *Renderer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{fs: fsys, logger: logger}
}

// Render copies the source folder into the destination, rendering the
// paths and contents that need binding. Existing files are never
// overwritten; they are reported in Result.Skipped.
func (r *Renderer) Render(req Request) (*Result, error) {
	for _, glob := range slices.Concat(req.PathsNeedingBinding, req.FilesNeedingBinding, req.IncludedFiles) {
		if !doublestar.ValidatePattern(escapeDelimiters(glob)) {
			return nil, fmt.Errorf("invalid glob %q", glob)
		}
	}

	data := map[string]any{}
	if req.Context != nil {
		data = req.Context.Map()
	}
	detect := len(req.PathsNeedingBinding) == 0 && len(req.FilesNeedingBinding) == 0

	files, err := r.sourceFiles(req)
	if err != nil {
		return nil, err
	}

	result := &Result{Destination: req.Destination}
	for _, rel := range files {
		target := rel
		if (detect && strings.Contains(rel, delimiter)) || matchAny(req.PathsNeedingBinding, rel) {
			if target, err = execute("path "+rel, rel, data); err != nil {
				return nil, err
			}
		}
		dest, err := within(req.Destination, target)
		if err != nil {
			return nil, err
		}

		if exists, _ := afero.Exists(r.fs, dest); exists {
			r.logger.Warn("Not overwriting existing file", "path", dest)
			result.Skipped = append(result.Skipped, dest)
			continue
		}

		if err := r.renderFile(filepath.Join(req.Source, filepath.FromSlash(rel)), dest, rel, data, detect, req.FilesNeedingBinding); err != nil {
			return nil, err
		}
		r.logger.Debug("Rendered file", "source", rel, "destination", dest)
		result.Files = append(result.Files, dest)
	}
	return result, nil
}

// sourceFiles lists the source-relative slash paths to copy.
func (r *Renderer) sourceFiles(req Request) ([]string, error) {
	var files []string
	err := afero.Walk(r.fs, req.Source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || slices.Contains(req.Exclude, info.Name()) {
			return nil
		}
		rel, err := filepath.Rel(req.Source, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if len(req.IncludedFiles) > 0 && !matchAny(req.IncludedFiles, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.Source, err)
	}
	return files, nil
}

func (r *Renderer) renderFile(src, dest, rel string, data map[string]any, detect bool, globs []string) error {
	content, err := afero.ReadFile(r.fs, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	info, err := r.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	bind := matchAny(globs, rel) || (detect && bytes.Contains(content, []byte(delimiter)))
	if bind && !isBinary(rel) {
		out, err := execute(rel, string(content), data)
		if err != nil {
			return err
		}
		content = []byte(out)
	}

	if err := r.fs.MkdirAll(filepath.Dir(dest), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := afero.WriteFile(r.fs, dest, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"camel": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToLower(s[:1]) + s[1:]
	},
}

// execute renders text as a template. Missing keys are errors.
func execute(name, text string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// within joins a rendered relative path onto root and rejects results that
// leave root.
func within(root, rel string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(rel))
	back, err := filepath.Rel(root, dest)
	if err != nil || back == "." || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideDestination, rel)
	}
	return dest, nil
}

// matchAny reports whether rel matches one of the globs. Template
// delimiters in a glob match literally.
func matchAny(globs []string, rel string) bool {
	for _, glob := range globs {
		if glob == rel {
			return true
		}
		if ok, _ := doublestar.Match(escapeDelimiters(glob), rel); ok {
			return true
		}
	}
	return false
}

var delimiterEscaper = strings.NewReplacer("{{", `\{\{`, "}}", `\}\}`)

func escapeDelimiters(glob string) string { return delimiterEscaper.Replace(glob) }

func isBinary(path string) bool {
	return slices.Contains(binaryExtensions, strings.ToLower(filepath.Ext(path)))
}
