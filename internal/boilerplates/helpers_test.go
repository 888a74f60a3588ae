package boilerplates

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const boundedContextJSON = `{
	// C# bounded context
	"language": "csharp",
	"name": "Bounded Context",
	"description": "Creates a bounded context",
	"type": "boundedContext",
	"version": "%s",
	"tooling": ">=1.0.0",
	"pathsNeedingBinding": ["**/{{.name}}*"],
	"dependencies": {
		"name": {
			"type": "userInput",
			"userInputType": "argument",
			"promptMessage": "Name of the bounded context",
			"rules": ["isNotEmpty"],
		},
		"license": {"type": "value", "value": "MIT"},
	},
}`

const artifactsJSON = `{
	"language": "csharp",
	"name": "Artifacts",
	"description": "C# artifacts",
	"type": "artifacts",
	"dependencies": {
		"namespace": {"type": "discover", "discoverType": "namespace", "milestone": ".*\\.csproj$"}
	}
}`

const commandTemplateJSON = `{
	"name": "Command",
	"type": "command",
	"description": "Creates a command",
	"area": "domain",
	"includedFiles": ["{{.name}}.cs"],
	"dependencies": {
		"name": {"type": "userInput", "userInputType": "argument", "promptMessage": "Name of the command"}
	}
}`

// writeTree writes files into a memory filesystem.
func writeTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}
