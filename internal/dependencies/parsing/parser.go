package parsing

import (
	"errors"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/rules"
)

// Parser converts raw descriptors it claims into dependencies.
type Parser interface {
	Name() string
	CanParse(raw Raw) bool
	Parse(raw Raw, name string) (dependencies.Dependency, error)
}

// Parsers is an ordered registry requiring exactly one claiming parser.
type Parsers struct {
	parsers []Parser
}

// New returns a registry holding the given parsers.
func New(parsers ...Parser) *Parsers {
	return &Parsers{parsers: parsers}
}

// Default returns a registry with the four built-in parsers.
func Default() *Parsers {
	return New(ValueParser{}, DiscoverParser{}, PromptParser{}, DiscoverAndPromptParser{})
}

// Add registers another parser.
func (p *Parsers) Add(parser Parser) {
	p.parsers = append(p.parsers, parser)
}

// Parse selects the single parser claiming raw and parses it under name.
func (p *Parsers) Parse(raw Raw, name string) (dependencies.Dependency, error) {
	var claiming []Parser
	for _, parser := range p.parsers {
		if parser.CanParse(raw) {
			claiming = append(claiming, parser)
		}
	}
	switch len(claiming) {
	case 0:
		return dependencies.Dependency{}, dependencies.CannotParse(name)
	case 1:
		return claiming[0].Parse(raw, name)
	default:
		names := make([]string, len(claiming))
		for i, c := range claiming {
			names[i] = c.Name()
		}
		return dependencies.Dependency{}, dependencies.MultipleParsers(name, names)
	}
}

// ParseAll parses every descriptor in order, collecting all failures.
func (p *Parsers) ParseAll(raws []Raw) ([]dependencies.Dependency, error) {
	deps := make([]dependencies.Dependency, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		dep, err := p.Parse(raw, raw.Name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		deps = append(deps, dep)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return deps, nil
}

// base decodes the fields every variant shares.
func base(raw Raw, name string, kind dependencies.Kind) (dependencies.Dependency, error) {
	dep := dependencies.Dependency{Name: name, Kind: kind}
	var err error
	if dep.Description, err = raw.String(FieldDescription); err != nil {
		return dep, err
	}
	if dep.Type, err = raw.String(FieldType); err != nil {
		return dep, err
	}
	names, err := raw.Strings(FieldRules)
	if err != nil {
		return dep, err
	}
	if dep.Rules, err = rules.Parse(names); err != nil {
		return dep, dependencies.InvalidField(name, FieldRules, err.Error())
	}
	return dep, nil
}

func discovery(raw Raw) (*dependencies.Discovery, error) {
	d := &dependencies.Discovery{}
	discoverType, err := raw.String(FieldDiscoverType)
	if err != nil {
		return nil, err
	}
	d.DiscoverType = dependencies.DiscoverType(discoverType)
	if d.WithNamespace, err = raw.Bool(FieldWithNamespace); err != nil {
		return nil, err
	}
	patterns := []struct {
		field string
		dst   *string
	}{
		{FieldMilestone, &d.Milestone},
		{FieldFileMatch, &d.FileMatch},
		{FieldContentMatch, &d.ContentMatch},
		{FieldFromArea, &d.FromArea},
	}
	for _, p := range patterns {
		if *p.dst, err = raw.String(p.field); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func prompt(raw Raw) (*dependencies.Prompt, error) {
	p := &dependencies.Prompt{}
	userInputType, err := raw.String(FieldUserInputType)
	if err != nil {
		return nil, err
	}
	p.UserInputType = dependencies.UserInputType(userInputType)
	if p.PromptMessage, err = raw.String(FieldPromptMessage); err != nil {
		return nil, err
	}
	if p.Choices, err = raw.Choices(); err != nil {
		return nil, err
	}
	if p.CustomInput, err = raw.String(FieldCustomInput); err != nil {
		return nil, err
	}
	if p.Optional, err = raw.Bool(FieldOptional); err != nil {
		return nil, err
	}
	if p.Default, err = raw.Any(FieldDefault); err != nil {
		return nil, err
	}
	return p, nil
}
