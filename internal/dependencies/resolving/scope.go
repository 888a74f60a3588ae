package resolving

import (
	"github.com/dolittle-tools/common/internal/dependencies"
)

// Scope is a resolver's view of the shared context. Any key can be read;
// only the names of the dependencies the resolver claimed can be written.
type Scope struct {
	values   *dependencies.Context
	resolver string
	claimed  map[string]bool
}

func newScope(values *dependencies.Context, resolver string, deps []dependencies.Dependency) *Scope {
	claimed := make(map[string]bool, len(deps))
	for _, dep := range deps {
		claimed[dep.Name] = true
	}
	return &Scope{values: values, resolver: resolver, claimed: claimed}
}

// Get returns the value stored under key.
func (s *Scope) Get(key string) (any, bool) {
	return s.values.Get(key)
}

// Has reports whether key has a value.
func (s *Scope) Has(key string) bool {
	return s.values.Has(key)
}

// Set writes value under key, which must be a claimed dependency name.
func (s *Scope) Set(key string, value any) error {
	if !s.claimed[key] {
		return dependencies.KeyNotClaimed(s.resolver, key)
	}
	s.values.Set(key, value)
	return nil
}
