package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/plugins"
	"github.com/dolittle-tools/common/internal/userdata"
)

const pluginGroup = "plugins"

func init() {
	pluginsCmd.AddCommand(pluginsListCmd)
	rootCmd.AddCommand(pluginsCmd)
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Manage plugins",
	Long: `Plugins are executables installed below ~/.dolittle/plugins/, each in a folder
with a plugin.yaml manifest. Every plugin is available as a subcommand.`,
}

var pluginsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := userdata.GetPluginsRoot()
		if err != nil {
			return err
		}
		found := plugins.Discover(root, buildVersion, nil)
		if len(found) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No plugins installed.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
		for _, p := range found {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, dash(p.Version), p.Description)
		}
		return w.Flush()
	},
}

// registerPlugins adds a subcommand per installed plugin. Plugins never
// shadow built-in commands.
func registerPlugins(root *cobra.Command) {
	dir, err := userdata.GetPluginsRoot()
	if err != nil {
		return
	}
	found := plugins.Discover(dir, buildVersion, nil)
	if len(found) == 0 {
		return
	}

	if !root.ContainsGroup(pluginGroup) {
		root.AddGroup(&cobra.Group{ID: pluginGroup, Title: "Plugin Commands:"})
	}
	for _, p := range found {
		if existing, _, err := root.Find([]string{p.Name}); err == nil && existing != root {
			continue
		}
		root.AddCommand(pluginCommand(p))
	}
}

func pluginCommand(p *plugins.Plugin) *cobra.Command {
	return &cobra.Command{
		Use:                p.Name,
		Short:              p.Description,
		GroupID:            pluginGroup,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			runner := &plugins.Runner{Stdin: cmd.InOrStdin(), Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
			out, err := runner.Run(cmd.Context(), p, args, plugins.Env{CoreLanguage: coreLanguage(), Cwd: cwd})
			if err != nil {
				return err
			}
			if out.ExitCode != 0 {
				return fmt.Errorf("plugin %s exited with code %d", p.Name, out.ExitCode)
			}
			return nil
		},
	}
}
