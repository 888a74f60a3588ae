package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/boilerplates"
	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/prompt"
	"github.com/dolittle-tools/common/internal/scaffold"
)

var addSet []string

func init() {
	addCmd.Flags().StringArrayVar(&addSet, "set", nil, "Dependency value as key=value (can be specified multiple times)")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <artifactType> <name> [args...]",
	Short: "Add an artifact to the current bounded context",
	Long: `Add an artifact such as a command, event or read model to the bounded
context containing the working directory.

Dotted names add feature folders: 'add command Carts.Checkout.Pay' creates
the Pay command in the Carts/Checkout feature of the command's area.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	artifactType, name := args[0], args[1]
	set, err := parseSet(addSet)
	if err != nil {
		return err
	}

	e := newEngine(cmd)
	tmpl, err := e.template(cmd.Context(), artifactType)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	dest, err := scaffold.DetermineDestination(e.folders, e.areas, tmpl.Area, e.language, name, cwd)
	if err != nil {
		return err
	}

	values := dependencies.NewContext(dependencies.Pair{Key: "name", Value: dest.Name})
	values, err = e.resolve(cmd.Context(), tmpl.AllDependencies(), values, dest.Dir, args[2:], set)
	if err != nil {
		return fmt.Errorf("resolving dependencies of %s: %w", tmpl.Name, err)
	}

	result, err := e.renderer.Render(scaffold.Request{
		Source:        tmpl.Dir(),
		Destination:   dest.Dir,
		Context:       values,
		IncludedFiles: tmpl.IncludedFiles,
		Exclude:       []string{boilerplates.TemplateFile},
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl.Name, err)
	}
	e.printRendered(fmt.Sprintf("%s %q", artifactType, dest.Name), result)
	return nil
}

// template finds the artifact template of the given type for the core
// language, asking when several boilerplates provide one.
func (e *engine) template(ctx context.Context, artifactType string) (*boilerplates.ArtifactTemplate, error) {
	artifacts := e.compatible(boilerplates.ByLanguage(boilerplates.ByType(e.boilerplates(), boilerplates.TypeArtifacts), e.language))

	var candidates []*boilerplates.ArtifactTemplate
	for _, b := range artifacts {
		for _, t := range e.loader.Templates(b) {
			if t.Type == artifactType {
				candidates = append(candidates, t)
			}
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("no %q artifact template found for language %q", artifactType, e.language)
	case 1:
		return candidates[0], nil
	}

	choices := make([]dependencies.Choice, len(candidates))
	for i, t := range candidates {
		choices[i] = dependencies.Choice{Name: t.Boilerplate.Name + ": " + t.Name, Value: i}
	}
	answer, err := e.prompter.Ask(ctx, prompt.Question{
		Name:    "template",
		Type:    dependencies.InputChooseOne,
		Message: fmt.Sprintf("Which %s template do you want to use?", artifactType),
		Choices: choices,
	})
	if err != nil {
		return nil, fmt.Errorf("choosing template: %w", err)
	}
	i, ok := answer.(int)
	if !ok || i < 0 || i >= len(candidates) {
		return nil, fmt.Errorf("choosing template: %w", prompt.ErrInvalidAnswer)
	}
	return candidates[i], nil
}
