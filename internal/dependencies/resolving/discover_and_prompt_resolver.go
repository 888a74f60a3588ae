package resolving

import (
	"context"
	"fmt"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/prompt"
)

// DiscoverAndPromptResolver discovers candidates and lets the user pick.
// Discovered values become the choices of chooseOne and chooseMultiple
// questions and the default of every other question.
type DiscoverAndPromptResolver struct {
	discoverer *Discoverer
	asker      *asker
}

// NewDiscoverAndPromptResolver returns a DiscoverAndPromptResolver.
func NewDiscoverAndPromptResolver(d *Discoverer, p prompt.Prompter, maxAttempts int) *DiscoverAndPromptResolver {
	return &DiscoverAndPromptResolver{discoverer: d, asker: newAsker(p, maxAttempts)}
}

func (*DiscoverAndPromptResolver) Name() string { return "DiscoverAndPromptResolver" }

func (*DiscoverAndPromptResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindDiscoverAndPrompt
}

func (r *DiscoverAndPromptResolver) Resolve(ctx context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	if err := requireDiscoveryOptions(opts); err != nil {
		return err
	}
	for _, dep := range deps {
		if existing, ok := scope.Get(dep.Name); ok {
			if err := checkRules(dep, existing, opts); err != nil {
				return err
			}
			continue
		}
		discovered, err := r.discoverer.Discover(dep, opts.DestinationPath, opts.CoreLanguage)
		if err != nil {
			return err
		}
		value, err := r.asker.ask(ctx, dep, r.question(dep, discovered), opts)
		if err != nil {
			return err
		}
		if err := scope.Set(dep.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *DiscoverAndPromptResolver) question(dep dependencies.Dependency, discovered any) prompt.Question {
	q := question(dep)
	candidates := discoveredChoices(discovered)
	switch q.Type {
	case dependencies.InputChooseOne, dependencies.InputChooseMultiple:
		q.Choices = append(append([]dependencies.Choice(nil), q.Choices...), candidates...)
		if len(q.Choices) == 0 && q.CustomInput == "" {
			r.asker.prompter.Warn(fmt.Sprintf("Nothing was discovered for %q", dep.Name))
			q.Type = dependencies.InputText
		}
	case dependencies.InputConfirm:
		if q.Default == nil {
			q.Default = len(candidates) > 0
		}
	default:
		if q.Default == nil && len(candidates) > 0 {
			q.Default = candidates[0].Name
		}
	}
	return q
}

func discoveredChoices(discovered any) []dependencies.Choice {
	switch v := discovered.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []dependencies.Choice{{Name: v, Value: v}}
	case dependencies.NamespacedValue:
		if v.Value == "" {
			return nil
		}
		return []dependencies.Choice{namespacedChoice(v)}
	case []string:
		out := make([]dependencies.Choice, len(v))
		for i, s := range v {
			out[i] = dependencies.Choice{Name: s, Value: s}
		}
		return out
	case []dependencies.NamespacedValue:
		out := make([]dependencies.Choice, len(v))
		for i, nv := range v {
			out[i] = namespacedChoice(nv)
		}
		return out
	}
	return nil
}

func namespacedChoice(nv dependencies.NamespacedValue) dependencies.Choice {
	name := nv.Value
	if nv.Namespace != "" {
		name = nv.Namespace + "." + nv.Value
	}
	return dependencies.Choice{Name: name, Value: nv}
}
