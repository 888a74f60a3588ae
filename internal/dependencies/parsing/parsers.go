package parsing

import (
	"github.com/dolittle-tools/common/internal/dependencies"
)

// ValueParser claims descriptors carrying a literal value and neither
// discovery nor user input fields.
type ValueParser struct{}

func (ValueParser) Name() string { return "ValueParser" }

func (ValueParser) CanParse(raw Raw) bool {
	return raw.Has(FieldValue) && !raw.Has(FieldDiscoverType) && !raw.Has(FieldUserInputType)
}

func (ValueParser) Parse(raw Raw, name string) (dependencies.Dependency, error) {
	dep, err := base(raw, name, dependencies.KindValue)
	if err != nil {
		return dependencies.Dependency{}, err
	}
	if dep.Value, err = raw.Any(FieldValue); err != nil {
		return dependencies.Dependency{}, err
	}
	return dep, nil
}

// DiscoverParser claims descriptors with a discover type and no user input type.
type DiscoverParser struct{}

func (DiscoverParser) Name() string { return "DiscoverParser" }

func (DiscoverParser) CanParse(raw Raw) bool {
	return raw.Has(FieldDiscoverType) && !raw.Has(FieldUserInputType)
}

func (DiscoverParser) Parse(raw Raw, name string) (dependencies.Dependency, error) {
	dep, err := base(raw, name, dependencies.KindDiscover)
	if err != nil {
		return dependencies.Dependency{}, err
	}
	if dep.Discover, err = discovery(raw); err != nil {
		return dependencies.Dependency{}, err
	}
	return dep, nil
}

// PromptParser claims descriptors with a user input type and no discover type.
type PromptParser struct{}

func (PromptParser) Name() string { return "PromptParser" }

func (PromptParser) CanParse(raw Raw) bool {
	return raw.Has(FieldUserInputType) && !raw.Has(FieldDiscoverType)
}

func (PromptParser) Parse(raw Raw, name string) (dependencies.Dependency, error) {
	dep, err := base(raw, name, dependencies.KindPrompt)
	if err != nil {
		return dependencies.Dependency{}, err
	}
	if dep.Prompt, err = prompt(raw); err != nil {
		return dependencies.Dependency{}, err
	}
	return dep, nil
}

// DiscoverAndPromptParser claims descriptors carrying both a discover type
// and a user input type.
type DiscoverAndPromptParser struct{}

func (DiscoverAndPromptParser) Name() string { return "DiscoverAndPromptParser" }

func (DiscoverAndPromptParser) CanParse(raw Raw) bool {
	return raw.Has(FieldDiscoverType) && raw.Has(FieldUserInputType)
}

func (DiscoverAndPromptParser) Parse(raw Raw, name string) (dependencies.Dependency, error) {
	dep, err := base(raw, name, dependencies.KindDiscoverAndPrompt)
	if err != nil {
		return dependencies.Dependency{}, err
	}
	if dep.Discover, err = discovery(raw); err != nil {
		return dependencies.Dependency{}, err
	}
	if dep.Prompt, err = prompt(raw); err != nil {
		return dependencies.Dependency{}, err
	}
	return dep, nil
}
