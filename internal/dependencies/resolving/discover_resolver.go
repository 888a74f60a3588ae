package resolving

import (
	"context"
	"fmt"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// DiscoverResolver resolves pure discover dependencies.
type DiscoverResolver struct {
	discoverer *Discoverer
}

// NewDiscoverResolver returns a DiscoverResolver using d.
func NewDiscoverResolver(d *Discoverer) *DiscoverResolver {
	return &DiscoverResolver{discoverer: d}
}

func (*DiscoverResolver) Name() string { return "DiscoverResolver" }

func (*DiscoverResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindDiscover
}

// Resolve fails before discovering anything when the destination path or
// core language is missing.
func (r *DiscoverResolver) Resolve(_ context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	if err := requireDiscoveryOptions(opts); err != nil {
		return err
	}
	for _, dep := range deps {
		value, err := r.discoverer.Discover(dep, opts.DestinationPath, opts.CoreLanguage)
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

func requireDiscoveryOptions(opts Options) error {
	if opts.DestinationPath == "" {
		return fmt.Errorf("discovering dependencies: %w", dependencies.ErrMissingDestinationPath)
	}
	if opts.CoreLanguage == "" {
		return fmt.Errorf("discovering dependencies: %w", dependencies.ErrMissingCoreLanguage)
	}
	return nil
}
