package resolving

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/rules"
	"github.com/dolittle-tools/common/internal/folders"
	"github.com/dolittle-tools/common/internal/prompt"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var csharpAreas = Areas{
	"csharp": {"concepts": "(^|/)Concepts$", "domain": "(^|/)Domain$", "events": "(^|/)Events$", "read": "(^|/)Read$"},
}

func memTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

// newDiscoverer returns a discoverer over files and the buffer its warnings
// are logged to.
func newDiscoverer(t *testing.T, files map[string]string) (*Discoverer, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	f := folders.New(memTree(t, files), folders.Options{Logger: logger})
	return NewDiscoverer(f, csharpAreas, logger), &logs
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// scripted answers questions from a fixed list. An error in the list is
// returned instead of an answer.
type scripted struct {
	answers  []any
	asked    []prompt.Question
	warnings []string
}

func (s *scripted) Ask(_ context.Context, q prompt.Question) (any, error) {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return nil, errors.New("no more answers")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scripted) Warn(message string) { s.warnings = append(s.warnings, message) }

func valueDep(name string, value any) dependencies.Dependency {
	return dependencies.Dependency{Name: name, Type: "value", Kind: dependencies.KindValue, Value: value}
}

func argumentDep(name string, optional bool, rs ...rules.Rule) dependencies.Dependency {
	return dependencies.Dependency{
		Name: name, Type: "userInput", Kind: dependencies.KindPrompt, Rules: rs,
		Prompt: &dependencies.Prompt{UserInputType: dependencies.InputArgument, PromptMessage: "Enter " + name, Optional: optional},
	}
}

func promptDep(name string, t dependencies.UserInputType, rs ...rules.Rule) dependencies.Dependency {
	return dependencies.Dependency{
		Name: name, Type: "userInput", Kind: dependencies.KindPrompt, Rules: rs,
		Prompt: &dependencies.Prompt{UserInputType: t, PromptMessage: "Enter " + name},
	}
}

func discoverDep(name string, d dependencies.Discovery) dependencies.Dependency {
	return dependencies.Dependency{Name: name, Type: "discover", Kind: dependencies.KindDiscover, Discover: &d}
}
