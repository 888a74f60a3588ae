package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/dependencies"
)

var (
	resolveDestination string
	resolveTemplate    string
	resolveSet         []string
)

func init() {
	dependenciesResolveCmd.Flags().StringVar(&resolveDestination, "destination", "", "Folder discovery starts from (default: current directory)")
	dependenciesResolveCmd.Flags().StringVar(&resolveTemplate, "template", "", "Resolve the artifact template of this type instead of the boilerplate")
	dependenciesResolveCmd.Flags().StringArrayVar(&resolveSet, "set", nil, "Dependency value as key=value (can be specified multiple times)")
	dependenciesCmd.AddCommand(dependenciesResolveCmd)
	rootCmd.AddCommand(dependenciesCmd)
}

var dependenciesCmd = &cobra.Command{
	Use:   "dependencies",
	Short: "Work with boilerplate dependencies",
}

var dependenciesResolveCmd = &cobra.Command{
	Use:   "resolve <boilerplate-dir> [args...]",
	Short: "Resolve a boilerplate's dependencies and print them as JSON",
	Long: `Resolve the dependencies declared by a boilerplate (or one of its artifact
templates) exactly as create and add would, without rendering anything.
The resolved values are printed as a JSON object in declaration order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := parseSet(resolveSet)
		if err != nil {
			return err
		}

		e := newEngine(cmd)
		dir, err := absolute(args[0])
		if err != nil {
			return err
		}
		b, err := e.loader.LoadDir(dir)
		if err != nil {
			return err
		}

		deps := b.Dependencies
		if resolveTemplate != "" {
			deps = nil
			for _, t := range e.loader.Templates(b) {
				if t.Type == resolveTemplate {
					deps = t.AllDependencies()
					break
				}
			}
			if deps == nil {
				return fmt.Errorf("boilerplate %s has no %q template", b.Name, resolveTemplate)
			}
		}

		destination, err := absolute(resolveDestination)
		if err != nil {
			return err
		}
		values, err := e.resolve(cmd.Context(), deps, dependencies.NewContext(), destination, args[1:], set)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling resolved values: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}
