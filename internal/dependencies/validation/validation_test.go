package validation

import (
	"testing"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discoverDep(d dependencies.Discovery) dependencies.Dependency {
	return dependencies.Dependency{Name: "dep", Type: "discover", Kind: dependencies.KindDiscover, Discover: &d}
}

func promptDep(p dependencies.Prompt) dependencies.Dependency {
	return dependencies.Dependency{Name: "dep", Type: "userInput", Kind: dependencies.KindPrompt, Prompt: &p}
}

func TestDefault_AcceptsWellFormedDependencies(t *testing.T) {
	deps := []dependencies.Dependency{
		discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace, Milestone: `.*\.csproj$`}),
		discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `.*\.cs$`, ContentMatch: `class (\w+)`, FromArea: "events", WithNamespace: true, Milestone: `.*\.csproj$`}),
		discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverFileContent, FileMatch: `.*\.json$`, ContentMatch: `"name":\s*"(\w+)"`}),
		promptDep(dependencies.Prompt{UserInputType: dependencies.InputChooseOne, PromptMessage: "Pick", Choices: []dependencies.Choice{{Name: "a", Value: "a"}}}),
		{Name: "license", Type: "value", Kind: dependencies.KindValue, Value: "MIT"},
	}
	assert.NoError(t, Default().ValidateAll(deps))
}

func TestDefault_Failures(t *testing.T) {
	tests := []struct {
		name     string
		dep      dependencies.Dependency
		sentinel error
		field    string
	}{
		{"no name", dependencies.Dependency{Type: "value", Kind: dependencies.KindValue}, dependencies.ErrMissingField, "name"},
		{"no type", dependencies.Dependency{Name: "x", Kind: dependencies.KindValue}, dependencies.ErrMissingField, "type"},
		{"no discover type", discoverDep(dependencies.Discovery{}), dependencies.ErrMissingField, "discoverType"},
		{"unknown discover type", discoverDep(dependencies.Discovery{DiscoverType: "folders"}), dependencies.ErrInvalidField, "discoverType"},
		{"namespace without milestone", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace}), dependencies.ErrMissingField, "milestone"},
		{"withNamespace without milestone", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverFile, FileMatch: "a", WithNamespace: true}), dependencies.ErrMissingField, "milestone"},
		{"broken milestone", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace, Milestone: "("}), dependencies.ErrInvalidField, "milestone"},
		{"files without fileMatch", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles}), dependencies.ErrMissingField, "fileMatch"},
		{"content without contentMatch", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFileContents, FileMatch: "a"}), dependencies.ErrMissingField, "contentMatch"},
		{"contentMatch without group", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverFileContent, FileMatch: "a", ContentMatch: "class"}), dependencies.ErrInvalidField, "contentMatch"},
		{"invalid area", discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: "a", FromArea: "Concepts"}), dependencies.ErrInvalidField, "fromArea"},
		{"no user input type", promptDep(dependencies.Prompt{PromptMessage: "m"}), dependencies.ErrMissingField, "userInputType"},
		{"invalid user input type", promptDep(dependencies.Prompt{UserInputType: "slider", PromptMessage: "m"}), dependencies.ErrInvalidField, "userInputType"},
		{"no prompt message", promptDep(dependencies.Prompt{UserInputType: dependencies.InputText}), dependencies.ErrMissingField, "promptMessage"},
		{"choosing without choices", promptDep(dependencies.Prompt{UserInputType: dependencies.InputChooseMultiple, PromptMessage: "m"}), dependencies.ErrMissingField, "choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().Validate(tt.dep)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDefault_HybridChoicesComeFromDiscovery(t *testing.T) {
	dep := dependencies.Dependency{
		Name: "concept", Type: "discoverAndUserInput", Kind: dependencies.KindDiscoverAndPrompt,
		Discover: &dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `.*\.cs$`},
		Prompt:   &dependencies.Prompt{UserInputType: dependencies.InputChooseOne, PromptMessage: "Pick a concept"},
	}
	assert.NoError(t, Default().Validate(dep))
}

func TestValidate_OutOfScopeDependency(t *testing.T) {
	prompt := promptDep(dependencies.Prompt{UserInputType: dependencies.InputText, PromptMessage: "m"})
	discover := discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace, Milestone: "x"})

	validators := []Validator{
		DiscoverDependencyHasDiscoverType{},
		DiscoverDependencyHasValidDiscoverType{},
		DiscoverDependencyHasMilestoneWhenDiscoveringNamespace{},
		DiscoverDependencyHasFileMatchWhenDiscoveringFiles{},
		DiscoverDependencyHasContentMatchWhenDiscoveringContents{},
		DiscoverDependencyHasValidArea{},
	}
	for _, v := range validators {
		t.Run(v.Name(), func(t *testing.T) {
			assert.False(t, v.CanValidate(prompt))
			assert.ErrorIs(t, v.Validate(prompt), dependencies.ErrCannotValidateDependency)
		})
	}

	promptValidators := []Validator{
		PromptDependencyHasUserInputType{},
		PromptDependencyHasValidUserInputType{},
		PromptDependencyHasPromptMessage{},
		PromptDependencyHasChoicesWhenChoosing{},
	}
	for _, v := range promptValidators {
		t.Run(v.Name(), func(t *testing.T) {
			assert.False(t, v.CanValidate(discover))
			assert.ErrorIs(t, v.Validate(discover), dependencies.ErrCannotValidateDependency)
		})
	}
}

func TestFileMatch_AppliesToEveryFileDiscovery(t *testing.T) {
	v := DiscoverDependencyHasFileMatchWhenDiscoveringFiles{}
	for _, dt := range []dependencies.DiscoverType{
		dependencies.DiscoverMultipleFiles,
		dependencies.DiscoverFile,
		dependencies.DiscoverFileContent,
		dependencies.DiscoverMultipleFileContents,
	} {
		assert.True(t, v.CanValidate(discoverDep(dependencies.Discovery{DiscoverType: dt})), dt)
	}
	assert.False(t, v.CanValidate(discoverDep(dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace})))
}

func TestValidators_JoinsAllFailures(t *testing.T) {
	dep := promptDep(dependencies.Prompt{})
	dep.Name = ""
	err := Default().Validate(dep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
	assert.Contains(t, err.Error(), `"userInputType"`)
	assert.Contains(t, err.Error(), `"promptMessage"`)
}

func TestValidators_Add(t *testing.T) {
	v := New()
	dep := dependencies.Dependency{Kind: dependencies.KindValue}
	assert.NoError(t, v.Validate(dep))
	v.Add(DependencyHasName{})
	assert.ErrorIs(t, v.Validate(dep), dependencies.ErrMissingField)
}
