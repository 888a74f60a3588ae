package validation

import (
	"fmt"

	"github.com/dolittle-tools/common/internal/dependencies"
)

// PromptDependencyHasUserInputType requires a user input type on prompt
// dependencies.
type PromptDependencyHasUserInputType struct{}

func (PromptDependencyHasUserInputType) Name() string { return "PromptDependencyHasUserInputType" }

func (PromptDependencyHasUserInputType) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsPrompt() && dep.Prompt != nil
}

func (v PromptDependencyHasUserInputType) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if dep.Prompt.UserInputType == "" {
		return dependencies.MissingField(dep.Name, "userInputType")
	}
	return nil
}

// PromptDependencyHasValidUserInputType requires the user input type to be
// one of dependencies.UserInputTypes.
type PromptDependencyHasValidUserInputType struct{}

func (PromptDependencyHasValidUserInputType) Name() string {
	return "PromptDependencyHasValidUserInputType"
}

func (PromptDependencyHasValidUserInputType) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsPrompt() && dep.Prompt != nil && dep.Prompt.UserInputType != ""
}

func (v PromptDependencyHasValidUserInputType) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if !dep.Prompt.UserInputType.Valid() {
		return dependencies.InvalidField(dep.Name, "userInputType",
			fmt.Sprintf("expected 'userInputType' to be any of %v", dependencies.UserInputTypes))
	}
	return nil
}

// PromptDependencyHasPromptMessage requires a non-empty prompt message.
type PromptDependencyHasPromptMessage struct{}

func (PromptDependencyHasPromptMessage) Name() string { return "PromptDependencyHasPromptMessage" }

func (PromptDependencyHasPromptMessage) CanValidate(dep dependencies.Dependency) bool {
	return dep.IsPrompt() && dep.Prompt != nil
}

func (v PromptDependencyHasPromptMessage) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if dep.Prompt.PromptMessage == "" {
		return dependencies.MissingField(dep.Name, "promptMessage")
	}
	return nil
}

// PromptDependencyHasChoicesWhenChoosing requires choices on pure prompt
// dependencies that select among them. Discover-and-prompt dependencies get
// their choices from discovery.
type PromptDependencyHasChoicesWhenChoosing struct{}

func (PromptDependencyHasChoicesWhenChoosing) Name() string {
	return "PromptDependencyHasChoicesWhenChoosing"
}

func (PromptDependencyHasChoicesWhenChoosing) CanValidate(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindPrompt && dep.Prompt != nil && dep.Prompt.UserInputType.Chooses()
}

func (v PromptDependencyHasChoicesWhenChoosing) Validate(dep dependencies.Dependency) error {
	if !v.CanValidate(dep) {
		return dependencies.CannotValidate(dep.Name, v.Name())
	}
	if len(dep.Prompt.Choices) == 0 {
		return dependencies.MissingField(dep.Name, "choices")
	}
	return nil
}
