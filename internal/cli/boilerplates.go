package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/boilerplates"
	"github.com/dolittle-tools/common/internal/config"
	"github.com/dolittle-tools/common/internal/userdata"
)

var (
	listTypeFilter string
	listJSON       bool
	listTemplates  bool
	sourceBranch   string
)

func init() {
	boilerplatesListCmd.Flags().StringVar(&listTypeFilter, "type", "", "Filter by type (application, boundedContext, artifacts)")
	boilerplatesListCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	boilerplatesListCmd.Flags().BoolVar(&listTemplates, "templates", false, "List the artifact templates of artifacts boilerplates")
	sourcesAddCmd.Flags().StringVar(&sourceBranch, "branch", "", "Branch to check out")

	sourcesCmd.AddCommand(sourcesListCmd, sourcesAddCmd, sourcesRemoveCmd)
	boilerplatesCmd.AddCommand(boilerplatesListCmd, boilerplatesValidateCmd, boilerplatesCheckCmd, boilerplatesSyncCmd, sourcesCmd)
	rootCmd.AddCommand(boilerplatesCmd)
}

var boilerplatesCmd = &cobra.Command{
	Use:   "boilerplates",
	Short: "Manage boilerplates and their sources",
	Long: `Manage the boilerplates used by create and add.

Boilerplates come from git sources listed in ~/.dolittle/boilerplate-sources.yaml,
synced into ~/.dolittle/boilerplates/, and from any folder listed under the
boilerplates.paths config key.`,
}

// boilerplateEntry represents a boilerplate for display.
type boilerplateEntry struct {
	Type      string   `json:"type"`
	Language  string   `json:"language"`
	Name      string   `json:"name"`
	Namespace string   `json:"namespace,omitempty"`
	Version   string   `json:"version,omitempty"`
	Path      string   `json:"path"`
	Templates []string `json:"templates,omitempty"`
}

var boilerplatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available boilerplates",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEngine(cmd)
		bs := e.boilerplates()
		if listTypeFilter != "" {
			bs = boilerplates.ByType(bs, listTypeFilter)
		}
		if len(bs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No boilerplates found. Run 'boilerplates sync' to fetch them.")
			return nil
		}

		entries := make([]boilerplateEntry, 0, len(bs))
		for _, b := range bs {
			entry := boilerplateEntry{
				Type:      b.Type,
				Language:  b.Language,
				Name:      b.Name,
				Namespace: b.Namespace,
				Version:   b.Version,
				Path:      b.Dir(),
			}
			if listTemplates {
				for _, t := range e.loader.Templates(b) {
					entry.Templates = append(entry.Templates, t.Type)
				}
			}
			entries = append(entries, entry)
		}

		if listJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TYPE\tLANGUAGE\tNAME\tNAMESPACE\tVERSION")
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", entry.Type, entry.Language, entry.Name, dash(entry.Namespace), dash(entry.Version))
			for _, t := range entry.Templates {
				fmt.Fprintf(w, "\t\t  %s\t\t\n", t)
			}
		}
		return w.Flush()
	},
}

var boilerplatesValidateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "Validate a boilerplate folder",
	Long: `Check a boilerplate.json against the boilerplate schema, parse and validate
its dependencies and, for artifacts boilerplates, every template.json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEngine(cmd)
		dir, err := absolute(args[0])
		if err != nil {
			return err
		}

		b, err := e.loader.LoadDir(dir)
		if err != nil {
			var schemaErr *boilerplates.SchemaError
			if errors.As(err, &schemaErr) {
				e.console.Error("%s does not match the boilerplate schema", schemaErr.File)
				for _, issue := range schemaErr.Issues {
					e.console.Printf("  %s\n", issue)
				}
				return fmt.Errorf("boilerplate is invalid")
			}
			return err
		}

		e.console.Success("%s %q is valid (%d dependencies)", b.Type, b.Name, len(b.Dependencies))
		for _, t := range e.loader.Templates(b) {
			e.console.Success("template %q (%s) is valid", t.Name, t.Type)
		}
		return nil
	},
}

var boilerplatesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report stale sources and incompatible boilerplates",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEngine(cmd)
		cfg, syncer, err := loadSources()
		if err != nil {
			return err
		}

		problems := 0
		for _, src := range syncer.Stale(cfg.Sources, boilerplates.DefaultMaxAge) {
			e.console.Warn("source %q has not been synced for more than 7 days", src.Name)
			problems++
		}
		for _, b := range e.boilerplates() {
			ok, err := boilerplates.Compatible(b, buildVersion)
			switch {
			case err != nil:
				e.console.Warn("%s: %v", b.Name, err)
				problems++
			case !ok:
				e.console.Warn("%s requires tooling %s, this is %s", b.Name, b.Tooling, buildVersion)
				problems++
			}
		}

		if problems == 0 {
			e.console.Success("Boilerplates are up to date")
		}
		return nil
	},
}

var boilerplatesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Clone or update every boilerplate source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, syncer, err := loadSources()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Syncing %d source(s) into %s...\n", len(cfg.Sources), syncer.Root)
		if err := syncer.Sync(cmd.Context(), cfg.Sources); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Boilerplates synced successfully.")
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage boilerplate sources",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boilerplate sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, syncer, err := loadSources()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tURL\tBRANCH\tLAST SYNC")
		for _, src := range cfg.Sources {
			last := "never"
			if t := boilerplates.ReadSyncMarker(syncer.Dir(src)); !t.IsZero() {
				last = t.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", src.Name, src.URL, dash(src.Branch), last)
		}
		return w.Flush()
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a boilerplate source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSources(func(cfg *boilerplates.SourcesConfig) error {
			return cfg.Add(boilerplates.Source{Name: args[0], URL: args[1], Branch: sourceBranch})
		}, cmd, fmt.Sprintf("Added source %s. Run 'boilerplates sync' to fetch it.", args[0]))
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a boilerplate source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSources(func(cfg *boilerplates.SourcesConfig) error {
			return cfg.Remove(args[0])
		}, cmd, fmt.Sprintf("Removed source %s.", args[0]))
	},
}

func loadSources() (*boilerplates.SourcesConfig, *boilerplates.Syncer, error) {
	path, err := userdata.GetSourcesPath()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := boilerplates.LoadSources(path)
	if err != nil {
		return nil, nil, err
	}
	root, err := userdata.GetBoilerplatesRoot()
	if err != nil {
		return nil, nil, err
	}
	return cfg, boilerplates.NewSyncer(root, nil), nil
}

func updateSources(change func(*boilerplates.SourcesConfig) error, cmd *cobra.Command, done string) error {
	path, err := userdata.GetSourcesPath()
	if err != nil {
		return err
	}
	if err := config.EnsureDir(); err != nil {
		return err
	}
	cfg, err := boilerplates.LoadSources(path)
	if err != nil {
		return err
	}
	if err := change(cfg); err != nil {
		return err
	}
	if err := boilerplates.SaveSources(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
