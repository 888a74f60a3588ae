package dependencies

import (
	"github.com/dolittle-tools/common/internal/dependencies/rules"
)

// Dependency is a named template variable. It is built once by a parser and
// never mutated afterwards.
type Dependency struct {
	Name        string
	Description string
	Type        string
	Kind        Kind
	Rules       []rules.Rule

	// Value is the literal of a KindValue dependency.
	Value any

	// Discover is set for KindDiscover and KindDiscoverAndPrompt.
	Discover *Discovery

	// Prompt is set for KindPrompt and KindDiscoverAndPrompt.
	Prompt *Prompt
}

// Discovery describes how a value is derived from the filesystem. Patterns
// are regular expression sources.
type Discovery struct {
	DiscoverType  DiscoverType
	WithNamespace bool
	Milestone     string
	FileMatch     string
	ContentMatch  string
	FromArea      string
}

// Prompt describes how a value is asked for.
type Prompt struct {
	UserInputType UserInputType
	PromptMessage string
	Choices       []Choice
	CustomInput   string
	Optional      bool
	Default       any
}

// Choice is one selectable answer. A plain string choice has Name == Value.
type Choice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NamespacedValue pairs a discovered value with the namespace of the folder
// it was found in.
type NamespacedValue struct {
	Value     string `json:"value"`
	Namespace string `json:"namespace"`
}

// IsDiscover reports whether d is resolved, at least partly, through discovery.
func (d Dependency) IsDiscover() bool {
	return d.Kind == KindDiscover || d.Kind == KindDiscoverAndPrompt
}

// IsPrompt reports whether d is resolved, at least partly, by asking the user.
func (d Dependency) IsPrompt() bool {
	return d.Kind == KindPrompt || d.Kind == KindDiscoverAndPrompt
}

// UserInputType returns the prompt input type or "" when d does not prompt.
func (d Dependency) UserInputType() UserInputType {
	if d.Prompt == nil {
		return ""
	}
	return d.Prompt.UserInputType
}

// DiscoverType returns the discover type or "" when d does not discover.
func (d Dependency) DiscoverType() DiscoverType {
	if d.Discover == nil {
		return ""
	}
	return d.Discover.DiscoverType
}

// RuleNames returns the names of the attached rules in order.
func (d Dependency) RuleNames() []string {
	names := make([]string, len(d.Rules))
	for i, r := range d.Rules {
		names[i] = r.Name()
	}
	return names
}
