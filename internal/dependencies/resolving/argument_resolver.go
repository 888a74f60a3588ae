package resolving

import (
	"context"
	"strconv"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/prompt"
)

// ArgumentResolver resolves non-optional argument dependencies. A value
// already in the context wins, then the next positional argument; otherwise
// the user is asked.
type ArgumentResolver struct {
	asker *asker
}

// NewArgumentResolver returns an ArgumentResolver falling back to p.
func NewArgumentResolver(p prompt.Prompter, maxAttempts int) *ArgumentResolver {
	return &ArgumentResolver{asker: newAsker(p, maxAttempts)}
}

func (*ArgumentResolver) Name() string { return "ArgumentResolver" }

func (*ArgumentResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindPrompt && dep.Prompt != nil &&
		dep.Prompt.UserInputType == dependencies.InputArgument &&
		!dep.Prompt.Optional
}

func (r *ArgumentResolver) Resolve(ctx context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	next := 0
	for _, dep := range deps {
		var value any
		switch existing, ok := scope.Get(dep.Name); {
		case ok:
			value = existing
		case next < len(opts.Args):
			value = opts.Args[next]
			next++
		default:
			asked, err := r.asker.ask(ctx, dep, question(dep), opts)
			if err != nil {
				return err
			}
			if err := scope.Set(dep.Name, asked); err != nil {
				return err
			}
			continue
		}
		if err := checkRules(dep, value, opts); err != nil {
			return err
		}
		if err := scope.Set(dep.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// OptionalArgumentResolver resolves optional argument dependencies from
// flags, then the context, then their default. It never asks.
type OptionalArgumentResolver struct{}

func (OptionalArgumentResolver) Name() string { return "OptionalArgumentResolver" }

func (OptionalArgumentResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindPrompt && dep.Prompt != nil &&
		dep.Prompt.UserInputType == dependencies.InputArgument &&
		dep.Prompt.Optional
}

func (OptionalArgumentResolver) Resolve(_ context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	for _, dep := range deps {
		value, err := optionalValue(scope, dep, opts)
		if err != nil {
			return err
		}
		if err := checkRules(dep, value, opts); err != nil {
			return err
		}
		if err := scope.Set(dep.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func optionalValue(scope *Scope, dep dependencies.Dependency, opts Options) (any, error) {
	if flag, ok := opts.Flags[dep.Name]; ok {
		if _, isBool := dep.Prompt.Default.(bool); isBool {
			b, err := strconv.ParseBool(flag)
			if err != nil {
				return nil, dependencies.InvalidField(dep.Name, "default", "flag value "+strconv.Quote(flag)+" is not a boolean")
			}
			return b, nil
		}
		return flag, nil
	}
	if existing, ok := scope.Get(dep.Name); ok {
		return existing, nil
	}
	if dep.Prompt.Default == nil {
		return "", nil
	}
	return dep.Prompt.Default, nil
}
