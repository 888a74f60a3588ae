package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/boilerplates"
	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/scaffold"
)

// Shared flags for all create subcommands.
var (
	createOutputDir   string
	createNamespace   string
	createBoilerplate string
	createSet         []string
)

func init() {
	flags := createCmd.PersistentFlags()
	flags.StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	flags.StringVar(&createNamespace, "namespace", "", "Only use boilerplates from this namespace")
	flags.StringVar(&createBoilerplate, "boilerplate", "", "Name of the boilerplate to use")
	flags.StringArrayVar(&createSet, "set", nil, "Dependency value as key=value (can be specified multiple times)")
	rootCmd.AddCommand(createCmd)

	createCmd.AddCommand(newCreateCmd("application", boilerplates.TypeApplication, "Create a new application"))
	createCmd.AddCommand(newCreateCmd("boundedcontext", boilerplates.TypeBoundedContext, "Create a new bounded context"))
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an application or bounded context from a boilerplate",
}

func newCreateCmd(use, boilerplateType, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name> [args...]",
		Short: short,
		Long: short + `.

Remaining arguments are consumed in order by the boilerplate's argument
dependencies; anything still missing is discovered or asked for.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, boilerplateType, args[0], args[1:])
		},
	}
}

func runCreate(cmd *cobra.Command, boilerplateType, name string, args []string) error {
	set, err := parseSet(createSet)
	if err != nil {
		return err
	}

	e := newEngine(cmd)
	candidates := boilerplates.ByLanguage(boilerplates.ByType(e.boilerplates(), boilerplateType), e.language)
	if createNamespace != "" {
		candidates = boilerplates.ByNamespace(candidates, createNamespace)
	}
	if createBoilerplate != "" {
		candidates = boilerplates.ByName(candidates, createBoilerplate)
	}
	b, err := e.choose(cmd.Context(), boilerplateType, e.compatible(candidates))
	if err != nil {
		return err
	}

	outDir := createOutputDir
	if outDir == "" {
		outDir = filepath.Join(".", name)
	}
	if outDir, err = absolute(outDir); err != nil {
		return err
	}

	values := dependencies.NewContext(dependencies.Pair{Key: "name", Value: name})
	values, err = e.resolve(cmd.Context(), b.Dependencies, values, outDir, args, set)
	if err != nil {
		return fmt.Errorf("resolving dependencies of %s: %w", b.Name, err)
	}

	result, err := e.renderer.Render(scaffold.Request{
		Source:              b.ContentDir(),
		Destination:         outDir,
		Context:             values,
		PathsNeedingBinding: b.PathsNeedingBinding,
		FilesNeedingBinding: b.FilesNeedingBinding,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", b.Name, err)
	}
	e.printRendered(fmt.Sprintf("%s %q", boilerplateType, name), result)
	return nil
}
