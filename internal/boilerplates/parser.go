package boilerplates

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/parsing"
	"github.com/dolittle-tools/common/internal/dependencies/validation"
)

var (
	// ErrMissingContent is returned for a boilerplate without a Content folder.
	ErrMissingContent = errors.New("boilerplate has no " + ContentFolder + " folder")
	// ErrInvalidTemplate is returned for an artifact template that cannot be used.
	ErrInvalidTemplate = errors.New("invalid artifact template")
)

// Parser turns descriptor files into boilerplates and artifact templates.
type Parser struct {
	fs         afero.Fs
	parsers    *parsing.Parsers
	validators *validation.Validators
}

// NewParser returns a parser reading from fsys with the built-in dependency
// parsers and validators. A nil fsys reads the OS filesystem.
func NewParser(fsys afero.Fs) *Parser {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Parser{
		fs:         fsys,
		parsers:    parsing.Default(),
		validators: validation.Default(),
	}
}

// ParseBoilerplate reads and validates a boilerplate.json file.
func (p *Parser) ParseBoilerplate(path string) (*Boilerplate, error) {
	data, err := p.read(path, BoilerplateSchema)
	if err != nil {
		return nil, err
	}

	var b Boilerplate
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing boilerplate %s: %w", path, err)
	}
	b.Path = path
	if b.Language == "" {
		b.Language = AnyLanguage
	}

	if ok, _ := afero.DirExists(p.fs, b.ContentDir()); !ok {
		return nil, fmt.Errorf("%s: %w", b.Dir(), ErrMissingContent)
	}

	b.Dependencies, err = p.dependencies(b.RawDependencies)
	if err != nil {
		return nil, fmt.Errorf("boilerplate %s: %w", path, err)
	}
	return &b, nil
}

// ParseTemplate reads and validates a template.json file belonging to owner.
func (p *Parser) ParseTemplate(path string, owner *Boilerplate) (*ArtifactTemplate, error) {
	data, err := p.read(path, TemplateSchema)
	if err != nil {
		return nil, err
	}

	var t ArtifactTemplate
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	t.Path = path
	t.Boilerplate = owner

	if !dependencies.IsValidArea(t.Area) {
		return nil, fmt.Errorf("%w %s: area %q is not one of %v", ErrInvalidTemplate, path, t.Area, dependencies.Areas)
	}

	t.Dependencies, err = p.dependencies(t.RawDependencies)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return &t, nil
}

// read loads a descriptor, checks it against its schema and returns it as
// plain JSON.
func (p *Parser) read(path, schema string) ([]byte, error) {
	raw, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(schema, raw)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &SchemaError{File: path, Issues: result.Issues}
	}
	return jsonc.ToJSON(raw), nil
}

func (p *Parser) dependencies(raw json.RawMessage) ([]dependencies.Dependency, error) {
	raws, err := parsing.DecodeDependencies(raw)
	if err != nil {
		return nil, err
	}
	deps, err := p.parsers.ParseAll(raws)
	if err != nil {
		return nil, err
	}
	if err := p.validators.ValidateAll(deps); err != nil {
		return nil, err
	}
	return deps, nil
}
