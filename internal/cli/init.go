package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/branding"
	"github.com/dolittle-tools/common/internal/userdata"
)

var initNoSync bool

func init() {
	initCmd.Flags().BoolVar(&initNoSync, "no-sync", false, "Do not clone the boilerplate sources")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the " + branding.DisplayName() + " home directory",
	Long: `Create ~/.dolittle/ with its boilerplates and plugins folders and a
boilerplate-sources.yaml pointing at the default boilerplates repository,
then sync the sources.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := userdata.GetHomeRoot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s\n", root)

		if err := userdata.InitHome(out); err != nil {
			return fmt.Errorf("initializing home directory: %w", err)
		}
		fmt.Fprintln(out, "\nHome directory initialized successfully.")
		if initNoSync {
			return nil
		}

		cfg, syncer, err := loadSources()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSyncing %d boilerplate source(s)...\n", len(cfg.Sources))
		if err := syncer.Sync(cmd.Context(), cfg.Sources); err != nil {
			fmt.Fprintf(out, "Warning: sync failed: %v\n", err)
			fmt.Fprintf(out, "Run '%s boilerplates sync' later to retry.\n", branding.CLIName())
			return nil // Non-fatal: the home directory still exists.
		}
		fmt.Fprintln(out, "Boilerplates synced successfully.")
		return nil
	},
}
