package validation

import (
	"fmt"
	"regexp"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// DiscoverDependencyHasDiscoverType requires a discover type on discover
// dependencies.
type DiscoverDependencyHasDiscoverType struct{}

func (DiscoverDependencyHasDiscoverType) Name() string { return "DiscoverDependencyHasDiscoverType" }

func (DiscoverDependencyHasDiscoverType) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsDiscover() && dep.Discover != nil
}

func (v DiscoverDependencyHasDiscoverType) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if dep.Discover.DiscoverType == "" {
		return dependencies.MissingField(dep.Name, "discoverType")
	}
	return nil
}

// DiscoverDependencyHasValidDiscoverType requires the discover type to be one
// of dependencies.DiscoverTypes.
type DiscoverDependencyHasValidDiscoverType struct{}

func (DiscoverDependencyHasValidDiscoverType) Name() string {
	return "DiscoverDependencyHasValidDiscoverType"
}

func (DiscoverDependencyHasValidDiscoverType) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsDiscover() && dep.Discover != nil && dep.Discover.DiscoverType != ""
}

func (v DiscoverDependencyHasValidDiscoverType) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if !dep.Discover.DiscoverType.Valid() {
		return dependencies.InvalidField(dep.Name, "discoverType",
			fmt.Sprintf("expected 'discoverType' to be any of %v", dependencies.DiscoverTypes))
	}
	return nil
}

// DiscoverDependencyHasMilestoneWhenDiscoveringNamespace requires a
// compilable milestone when a namespace is synthesized.
type DiscoverDependencyHasMilestoneWhenDiscoveringNamespace struct{}

func (DiscoverDependencyHasMilestoneWhenDiscoveringNamespace) Name() string {
	return "DiscoverDependencyHasMilestoneWhenDiscoveringNamespace"
}

func (DiscoverDependencyHasMilestoneWhenDiscoveringNamespace) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsDiscover() && dep.Discover != nil &&
		(dep.Discover.DiscoverType == dependencies.DiscoverNamespace || dep.Discover.WithNamespace)
}

func (v DiscoverDependencyHasMilestoneWhenDiscoveringNamespace) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	return requirePattern(dep.Name, "milestone", dep.Discover.Milestone, 0)
}

// DiscoverDependencyHasFileMatchWhenDiscoveringFiles requires a compilable
// fileMatch for every discover type that searches files.
type DiscoverDependencyHasFileMatchWhenDiscoveringFiles struct{}

func (DiscoverDependencyHasFileMatchWhenDiscoveringFiles) Name() string {
	return "DiscoverDependencyHasFileMatchWhenDiscoveringFiles"
}

func (DiscoverDependencyHasFileMatchWhenDiscoveringFiles) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsDiscover() && dep.Discover != nil && dep.Discover.DiscoverType.MatchesFiles()
}

func (v DiscoverDependencyHasFileMatchWhenDiscoveringFiles) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	return requirePattern(dep.Name, "fileMatch", dep.Discover.FileMatch, 0)
}

// DiscoverDependencyHasContentMatchWhenDiscoveringContents requires a
// contentMatch with a capture group for content discovery, and checks any
// contentMatch given to multipleFiles.
type DiscoverDependencyHasContentMatchWhenDiscoveringContents struct{}

func (DiscoverDependencyHasContentMatchWhenDiscoveringContents) Name() string {
	return "DiscoverDependencyHasContentMatchWhenDiscoveringContents"
}

func (DiscoverDependencyHasContentMatchWhenDiscoveringContents) CanValidate(dep dependencies.Dependency) bool {
	if !dep.IsDiscover() || dep.Discover == nil {
		return false
	}
	t := dep.Discover.DiscoverType
	return t.MatchesContent() || (t == dependencies.DiscoverMultipleFiles && dep.Discover.ContentMatch != "")
}

func (v DiscoverDependencyHasContentMatchWhenDiscoveringContents) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	return requirePattern(dep.Name, "contentMatch", dep.Discover.ContentMatch, 1)
}

// DiscoverDependencyHasValidArea requires fromArea, when set, to be one of
// dependencies.Areas.
type DiscoverDependencyHasValidArea struct{}

func (DiscoverDependencyHasValidArea) Name() string { return "DiscoverDependencyHasValidArea" }

func (DiscoverDependencyHasValidArea) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsDiscover() && dep.Discover != nil && dep.Discover.FromArea != ""
}

func (v DiscoverDependencyHasValidArea) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if !dependencies.IsValidArea(dep.Discover.FromArea) {
		return dependencies.InvalidField(dep.Name, "fromArea",
			fmt.Sprintf("expected 'fromArea' to be any of %v", dependencies.Areas))
	}
	return nil
}

func requirePattern(dependency, field, pattern string, groups int) error {
	if pattern == "" {
		return dependencies.MissingField(dependency, field)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return dependencies.InvalidField(dependency, field, err.Error())
	}
	if re.NumSubexp() < groups {
		return dependencies.InvalidField(dependency, field, "expected at least one capture group")
	}
	return nil
}
