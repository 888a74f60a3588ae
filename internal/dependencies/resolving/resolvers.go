package resolving

import (
	"context"
	"log/slog"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/rules"
)

// Resolver resolves the dependencies it claims.
type Resolver interface {
	Name() string
	CanResolve(dep dependencies.Dependency) bool
	Resolve(ctx context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error
}

// Options carries what resolvers may need besides the dependencies.
type Options struct {
	// AdditionalRules are checked on top of each dependency's own rules.
	AdditionalRules []rules.For
	// DestinationPath is where discovery starts.
	DestinationPath string
	// CoreLanguage selects the area configuration used by discovery.
	CoreLanguage string
	// Args are positional command line arguments, consumed in order by
	// non-optional argument dependencies.
	Args []string
	// Flags hold values for optional argument dependencies, keyed by name.
	Flags map[string]string
}

// Resolvers coordinates a registered set of resolvers.
type Resolvers struct {
	resolvers []Resolver
	logger    *slog.Logger
}

// New returns a coordinator over the given resolvers.
func New(logger *slog.Logger, resolvers ...Resolver) *Resolvers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolvers{resolvers: resolvers, logger: logger}
}

// Add registers another resolver.
func (r *Resolvers) Add(resolver Resolver) {
	r.resolvers = append(r.resolvers, resolver)
}

type group struct {
	resolver Resolver
	deps     []dependencies.Dependency
}

// Resolve resolves deps into values and returns it. A nil values starts from
// an empty context. Every dependency must be claimed by exactly one resolver
// before anything is resolved. Groups run sequentially in the order their
// resolver first claimed a dependency; a failing group stops the pass and
// leaves earlier writes in place.
func (r *Resolvers) Resolve(ctx context.Context, values *dependencies.Context, deps []dependencies.Dependency, opts Options) (*dependencies.Context, error) {
	if values == nil {
		values = dependencies.NewContext()
	}

	groups, err := r.group(deps)
	if err != nil {
		return values, err
	}

	r.logger.Info("Resolving dependencies", slog.Int("dependencies", len(deps)), slog.Int("resolvers", len(groups)))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return values, err
		}
		scope := newScope(values, g.resolver.Name(), g.deps)
		r.logger.Debug("Running resolver", slog.String("resolver", g.resolver.Name()), slog.Int("dependencies", len(g.deps)))
		if err := g.resolver.Resolve(ctx, scope, g.deps, opts); err != nil {
			return values, err
		}
	}
	r.logger.Info("Finished resolving dependencies", slog.Int("values", values.Len()))
	return values, nil
}

func (r *Resolvers) group(deps []dependencies.Dependency) ([]*group, error) {
	var groups []*group
	byResolver := map[int]*group{}
	for _, dep := range deps {
		var claiming []int
		for i, res := range r.resolvers {
			if res.CanResolve(dep) {
				claiming = append(claiming, i)
			}
		}
		switch len(claiming) {
		case 0:
			return nil, dependencies.CannotResolve(dep.Name)
		case 1:
		default:
			names := make([]string, len(claiming))
			for i, idx := range claiming {
				names[i] = r.resolvers[idx].Name()
			}
			return nil, dependencies.MultipleResolvers(dep.Name, names)
		}

		idx := claiming[0]
		g, ok := byResolver[idx]
		if !ok {
			g = &group{resolver: r.resolvers[idx]}
			byResolver[idx] = g
			groups = append(groups, g)
		}
		g.deps = append(g.deps, dep)
	}
	return groups, nil
}
