package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/boilerplates"
	"github.com/dolittle-tools/common/internal/branding"
	"github.com/dolittle-tools/common/internal/config"
	"github.com/dolittle-tools/common/internal/output"
	"github.com/dolittle-tools/common/internal/userdata"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	flagVerbose  bool
	flagDebug    bool
	flagNoPrompt bool
	flagLanguage string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates applications, bounded contexts and artifacts from boilerplates.
Boilerplate dependencies are resolved from command line arguments, by discovering
values in the surrounding source tree, or by asking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		slog.SetDefault(newLogger(cmd.ErrOrStderr()))

		// Skip the banner for commands that manage sources themselves.
		switch cmd.Name() {
		case "sync", "init", "version", "config", "sources":
			return
		}
		printStaleSources(cmd.ErrOrStderr())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Log progress information")
	flags.BoolVar(&flagDebug, "debug", false, "Log debug information")
	flags.BoolVar(&flagNoPrompt, "no-prompt", false, "Never ask questions; fail when a value is missing")
	flags.StringVar(&flagLanguage, "language", "", "Core language (default from config, \"csharp\" when unset)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	config.Load()
	registerPlugins(rootCmd)

	err := rootCmd.Execute()
	if err != nil {
		output.New(rootCmd.ErrOrStderr()).Error("%v", err)
	}
	return err
}

// newLogger returns the process logger. Warnings are always shown;
// --verbose adds info and --debug adds debug records.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case flagDebug:
		level = slog.LevelDebug
	case flagVerbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// coreLanguage returns the --language flag or the configured language.
func coreLanguage() string {
	if flagLanguage != "" {
		return flagLanguage
	}
	return config.CoreLanguage()
}

// printStaleSources reminds the user to sync old boilerplate sources. It
// never touches the network.
func printStaleSources(w io.Writer) {
	root, err := userdata.GetBoilerplatesRoot()
	if err != nil {
		return
	}
	sourcesPath, err := userdata.GetSourcesPath()
	if err != nil {
		return
	}
	cfg, err := boilerplates.LoadSources(sourcesPath)
	if err != nil {
		return
	}

	syncer := boilerplates.NewSyncer(root, nil)
	for _, src := range syncer.Stale(cfg.Sources, boilerplates.DefaultMaxAge) {
		if _, err := os.Stat(syncer.Dir(src)); err != nil {
			continue
		}
		fmt.Fprintf(w, "Boilerplate source %q is more than 7 days old. Run '%s boilerplates sync'.\n", src.Name, branding.CLIName())
	}
}
