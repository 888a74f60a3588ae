//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/prompt"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir         string // DOLITTLE_HOME
	BoilerplatesDir string // synced boilerplates below the home directory
	ProjectDir      string // where applications and bounded contexts are created
}

// setupTestEnv creates isolated temp directories and points DOLITTLE_HOME at
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	env.BoilerplatesDir = filepath.Join(env.HomeDir, "boilerplates")
	t.Setenv("DOLITTLE_HOME", env.HomeDir)
	return env
}

// setupBoilerplates writes a bounded context boilerplate and an artifacts
// boilerplate into a synthetic synced source.
func setupBoilerplates(t *testing.T, env *testEnv) {
	t.Helper()
	source := filepath.Join(env.BoilerplatesDir, "dolittle")

	writeFile(t, filepath.Join(source, "bounded-context", "boilerplate.json"), `{
	// Bounded context with a domain and a concepts project.
	"language": "csharp",
	"name": "Bounded Context",
	"description": "A C# bounded context",
	"type": "boundedContext",
	"version": "1.0.0",
	"dependencies": {
		"name": {
			"type": "userInput",
			"userInputType": "argument",
			"promptMessage": "Name of the bounded context",
			"rules": ["isNotEmpty"],
		},
		"license": {"type": "value", "value": "MIT"},
	},
}`)
	content := filepath.Join(source, "bounded-context", "Content")
	writeFile(t, filepath.Join(content, "bounded-context.json"), `{"name": "{{.name}}", "license": "{{.license}}"}`)
	writeFile(t, filepath.Join(content, "Domain", "Domain.csproj"), "<Project />\n")
	writeFile(t, filepath.Join(content, "Concepts", "Concepts.csproj"), "<Project />\n")
	writeFile(t, filepath.Join(content, "Concepts", "Carts", "CartId.cs"), "namespace Concepts.Carts\n{\n    public class CartId {}\n}\n")
	writeFile(t, filepath.Join(content, "Concepts", "Orders", "OrderId.cs"), "namespace Concepts.Orders\n{\n    public class OrderId {}\n}\n")

	artifacts := filepath.Join(source, "artifacts")
	writeFile(t, filepath.Join(artifacts, "boilerplate.json"), `{
	"language": "csharp",
	"name": "Artifacts",
	"description": "C# artifacts",
	"type": "artifacts",
	"dependencies": {
		"namespace": {"type": "discover", "discoverType": "namespace", "milestone": ".*\\.csproj$"}
	}
}`)
	writeFile(t, filepath.Join(artifacts, "Content", "command", "template.json"), `{
	"name": "Command",
	"type": "command",
	"description": "Creates a command",
	"area": "domain",
	"includedFiles": ["{{.name}}.cs"],
	"dependencies": {
		"concept": {
			"type": "discoverAndUserInput",
			"discoverType": "multipleFiles",
			"userInputType": "chooseOne",
			"fromArea": "concepts",
			"fileMatch": ".*\\.cs$",
			"contentMatch": "class\\s+(\\w+)",
			"withNamespace": true,
			"milestone": ".*\\.csproj$",
			"promptMessage": "Which concept identifies the cart?"
		}
	}
}`)
	writeFile(t, filepath.Join(artifacts, "Content", "command", "{{.name}}.cs"), `using {{.concept.Namespace}};

namespace {{.namespace}}
{
    public class {{.name}}
    {
        public {{.concept.Value}} Id { get; set; }
    }
}
`)
	writeFile(t, filepath.Join(artifacts, "Content", "command", "notes.md"), "not included\n")
}

// writeFile creates parent directories and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// quietLogger discards records below error.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

// pickLast answers every choice question with its last choice.
type pickLast struct {
	asked []prompt.Question
}

func (p *pickLast) Ask(_ context.Context, q prompt.Question) (any, error) {
	p.asked = append(p.asked, q)
	if len(q.Choices) == 0 {
		return nil, prompt.ErrPromptingDisabled
	}
	return q.Choices[len(q.Choices)-1].Value, nil
}

func (p *pickLast) Warn(string) {}

var _ prompt.Prompter = (*pickLast)(nil)

// names returns the dependency names in order.
func names(deps []dependencies.Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.Name
	}
	return out
}
