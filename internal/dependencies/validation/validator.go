package validation

import (
	"errors"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// Validator is a single check over the dependencies it can validate.
// Validate returns ErrCannotValidateDependency for dependencies outside its
// scope.
type Validator interface {
	Name() string
	CanValidate(dep dependencies.Dependency) bool
	Validate(dep dependencies.Dependency) error
}

// Validators is a set of validators applied together.
type Validators struct {
	validators []Validator
}

// New returns a set holding the given validators.
func New(validators ...Validator) *Validators {
	return &Validators{validators: validators}
}

// Default returns the set of built-in validators.
func Default() *Validators {
	return New(
		DependencyHasName{},
		DependencyHasType{},
		DiscoverDependencyHasDiscoverType{},
		DiscoverDependencyHasValidDiscoverType{},
		DiscoverDependencyHasMilestoneWhenDiscoveringNamespace{},
		DiscoverDependencyHasFileMatchWhenDiscoveringFiles{},
		DiscoverDependencyHasContentMatchWhenDiscoveringContents{},
		DiscoverDependencyHasValidArea{},
		PromptDependencyHasUserInputType{},
		PromptDependencyHasValidUserInputType{},
		PromptDependencyHasPromptMessage{},
		PromptDependencyHasChoicesWhenChoosing{},
	)
}

// Add registers another validator.
func (v *Validators) Add(validator Validator) {
	v.validators = append(v.validators, validator)
}

// Validate runs every validator that applies to dep.
func (v *Validators) Validate(dep dependencies.Dependency) error {
	var errs []error
	for _, validator := range v.validators {
		if !validator.CanValidate(dep) {
			continue
		}
		if err := validator.Validate(dep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateAll validates every dependency.
func (v *Validators) ValidateAll(deps []dependencies.Dependency) error {
	var errs []error
	for _, dep := range deps {
		if err := v.Validate(dep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
