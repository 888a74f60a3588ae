package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dolittle-tools/common/internal/boilerplates"
	"github.com/dolittle-tools/common/internal/config"
	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/resolving"
	"github.com/dolittle-tools/common/internal/folders"
	"github.com/dolittle-tools/common/internal/output"
	"github.com/dolittle-tools/common/internal/prompt"
	"github.com/dolittle-tools/common/internal/scaffold"
	"github.com/dolittle-tools/common/internal/userdata"
)

// engine wires the collaborators a command needs from configuration and
// global flags.
type engine struct {
	fs        afero.Fs
	folders   *folders.Folders
	areas     resolving.Areas
	loader    *boilerplates.Loader
	resolvers *resolving.Resolvers
	renderer  *scaffold.Renderer
	prompter  prompt.Prompter
	console   *output.Console
	logger    *slog.Logger
	language  string
}

func newEngine(cmd *cobra.Command) *engine {
	logger := slog.Default()
	fs := afero.NewOsFs()
	f := folders.New(fs, folders.Options{MaxDepth: config.MaxDepth(), Logger: logger})
	areas := resolving.Areas(config.Areas())

	var p prompt.Prompter = prompt.Disabled{Logger: logger}
	if !flagNoPrompt && isInteractive(cmd) {
		p = prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return &engine{
		fs:        fs,
		folders:   f,
		areas:     areas,
		loader:    boilerplates.NewLoader(fs, logger),
		resolvers: resolving.Default(resolving.NewDiscoverer(f, areas, logger), p, config.MaxAttempts(), logger),
		renderer:  scaffold.New(fs, logger),
		prompter:  p,
		console:   output.New(cmd.OutOrStdout()),
		logger:    logger,
		language:  coreLanguage(),
	}
}

// isInteractive reports whether questions can be asked on the command input.
func isInteractive(cmd *cobra.Command) bool {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.IsTerminal(f)
	}
	return true
}

// boilerplates loads every boilerplate from the synced sources and the
// configured extra paths.
func (e *engine) boilerplates() []*boilerplates.Boilerplate {
	var roots []string
	if root, err := userdata.GetBoilerplatesRoot(); err == nil {
		roots = append(roots, root)
	}
	roots = append(roots, config.BoilerplatePaths()...)
	return e.loader.Load(roots...)
}

// choose picks one boilerplate, asking when there are several.
func (e *engine) choose(ctx context.Context, kind string, candidates []*boilerplates.Boilerplate) (*boilerplates.Boilerplate, error) {
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("no %s boilerplates found for language %q; run 'boilerplates sync' or check 'boilerplates list'", kind, e.language)
	case 1:
		return candidates[0], nil
	}

	choices := make([]dependencies.Choice, len(candidates))
	for i, b := range candidates {
		label := b.Name
		if b.Namespace != "" {
			label = b.Namespace + "/" + b.Name
		}
		choices[i] = dependencies.Choice{Name: label, Value: i}
	}
	answer, err := e.prompter.Ask(ctx, prompt.Question{
		Name:    "boilerplate",
		Type:    dependencies.InputChooseOne,
		Message: fmt.Sprintf("Which %s boilerplate do you want to use?", kind),
		Choices: choices,
	})
	if err != nil {
		return nil, fmt.Errorf("choosing boilerplate: %w", err)
	}
	i, ok := answer.(int)
	if !ok || i < 0 || i >= len(candidates) {
		return nil, fmt.Errorf("choosing boilerplate: %w", prompt.ErrInvalidAnswer)
	}
	return candidates[i], nil
}

// compatible drops boilerplates whose tooling constraint rejects this build.
func (e *engine) compatible(bs []*boilerplates.Boilerplate) []*boilerplates.Boilerplate {
	var out []*boilerplates.Boilerplate
	for _, b := range bs {
		ok, err := boilerplates.Compatible(b, buildVersion)
		if err != nil {
			e.logger.Warn("Invalid tooling constraint", "boilerplate", b.Name, "tooling", b.Tooling, "error", err)
			continue
		}
		if !ok {
			e.logger.Warn("Boilerplate requires a different tooling version", "boilerplate", b.Name, "tooling", b.Tooling, "version", buildVersion)
			continue
		}
		out = append(out, b)
	}
	return out
}

// resolve runs a resolution pass. Values passed with --set seed the context
// and feed optional argument dependencies.
func (e *engine) resolve(ctx context.Context, deps []dependencies.Dependency, values *dependencies.Context, destination string, args []string, set map[string]string) (*dependencies.Context, error) {
	if values == nil {
		values = dependencies.NewContext()
	}
	for k, v := range set {
		if !values.Has(k) {
			values.Set(k, v)
		}
	}
	resolved, err := e.resolvers.Resolve(ctx, values, deps, resolving.Options{
		DestinationPath: destination,
		CoreLanguage:    e.language,
		Args:            args,
		Flags:           set,
	})
	if err != nil {
		return nil, err
	}
	return declarationOrder(resolved, deps), nil
}

// declarationOrder returns values with the declared dependencies first, in
// declaration order, followed by any other keys.
func declarationOrder(values *dependencies.Context, deps []dependencies.Dependency) *dependencies.Context {
	ordered := dependencies.NewContext()
	for _, dep := range deps {
		if v, ok := values.Get(dep.Name); ok {
			ordered.Set(dep.Name, v)
		}
	}
	for k, v := range values.All() {
		if !ordered.Has(k) {
			ordered.Set(k, v)
		}
	}
	return ordered
}

// parseSet parses key=value pairs.
func parseSet(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid value %q: expected key=value", pair)
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("invalid value %q: key cannot be empty", pair)
		}
		result[key] = strings.TrimSpace(parts[1])
	}
	return result, nil
}

// absolute resolves dir against the working directory.
func absolute(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// printRendered reports a scaffold result.
func (e *engine) printRendered(what string, result *scaffold.Result) {
	e.console.Success("Created %s at %s", what, result.Destination)
	for _, f := range result.Files {
		e.console.Muted("  %s", f)
	}
	for _, f := range result.Skipped {
		e.console.Warn("kept existing %s", f)
	}
}
