package validation

import (
	"github.com/dolittle-tools/common/internal/dependencies"
)

// DependencyHasName requires a non-empty name.
type DependencyHasName struct{}

func (DependencyHasName) Name() string { return "DependencyHasName" }

func (DependencyHasName) CanValidate(dependencies.Dependency) bool { return true }

func (DependencyHasName) Validate(dep dependencies.Dependency) error {
	if dep.Name == "" {
		return dependencies.MissingField(dep.Name, "name")
	}
	return nil
}

// DependencyHasType requires a non-empty type tag.
type DependencyHasType struct{}

func (DependencyHasType) Name() string { return "DependencyHasType" }

func (DependencyHasType) CanValidate(dependencies.Dependency) bool { return true }

func (DependencyHasType) Validate(dep dependencies.Dependency) error {
	if dep.Type == "" {
		return dependencies.MissingField(dep.Name, "type")
	}
	return nil
}
