package resolving

import (
	"context"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// ValueResolver writes the literal of value dependencies.
type ValueResolver struct{}

func (ValueResolver) Name() string { return "ValueResolver" }

func (ValueResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindValue
}

func (ValueResolver) Resolve(_ context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	for _, dep := range deps {
		if err := checkRules(dep, dep.Value, opts); err != nil {
			return err
		}
		if err := scope.Set(dep.Name, dep.Value); err != nil {
			return err
		}
	}
	return nil
}
