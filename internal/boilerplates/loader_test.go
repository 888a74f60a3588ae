package boilerplates

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolittle-tools/common/internal/dependencies"
)

func newLoader(t *testing.T, files map[string]string) (*Loader, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewLoader(writeTree(t, files), logger), &logs
}

func TestParseBoilerplate(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/bps/bc/boilerplate.json":         fmt.Sprintf(boundedContextJSON, "1.0.0"),
		"/bps/bc/Content/{{.name}}.csproj": "<Project />",
	})

	b, err := loader.LoadDir("/bps/bc")
	require.NoError(t, err)

	assert.Equal(t, "Bounded Context", b.Name)
	assert.Equal(t, TypeBoundedContext, b.Type)
	assert.Equal(t, "/bps/bc/Content", b.ContentDir())
	assert.Equal(t, []string{"**/{{.name}}*"}, b.PathsNeedingBinding)
	require.Len(t, b.Dependencies, 2)
	assert.Equal(t, "name", b.Dependencies[0].Name)
	assert.Equal(t, dependencies.KindPrompt, b.Dependencies[0].Kind)
	assert.Equal(t, dependencies.KindValue, b.Dependencies[1].Kind)
}

func TestParseBoilerplate_Errors(t *testing.T) {
	t.Run("schema violation", func(t *testing.T) {
		loader, _ := newLoader(t, map[string]string{
			"/bp/boilerplate.json": `{"name": "x", "type": "library"}`,
			"/bp/Content/a.txt":    "",
		})
		_, err := loader.LoadDir("/bp")
		var schemaErr *SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})

	t.Run("missing content", func(t *testing.T) {
		loader, _ := newLoader(t, map[string]string{
			"/bp/boilerplate.json": `{"name": "x", "type": "application"}`,
		})
		_, err := loader.LoadDir("/bp")
		assert.ErrorIs(t, err, ErrMissingContent)
	})

	t.Run("invalid dependency", func(t *testing.T) {
		loader, _ := newLoader(t, map[string]string{
			"/bp/boilerplate.json": `{"name": "x", "type": "application", "dependencies": {
				"ns": {"type": "discover", "discoverType": "namespace"}
			}}`,
			"/bp/Content/a.txt": "",
		})
		_, err := loader.LoadDir("/bp")
		assert.ErrorIs(t, err, dependencies.ErrMissingField)
		assert.Contains(t, err.Error(), "milestone")
	})

	t.Run("language defaults to any", func(t *testing.T) {
		loader, _ := newLoader(t, map[string]string{
			"/bp/boilerplate.json": `{"name": "x", "type": "application"}`,
			"/bp/Content/a.txt":    "",
		})
		b, err := loader.LoadDir("/bp")
		require.NoError(t, err)
		assert.Equal(t, AnyLanguage, b.Language)
	})
}

func TestLoad_KeepsHighestVersionAndSkipsInvalid(t *testing.T) {
	loader, logs := newLoader(t, map[string]string{
		"/a/bc-old/boilerplate.json":            fmt.Sprintf(boundedContextJSON, "1.0.0"),
		"/a/bc-old/Content/x.cs":                "",
		"/b/bc-new/boilerplate.json":            fmt.Sprintf(boundedContextJSON, "1.3.0"),
		"/b/bc-new/Content/x.cs":                "",
		"/b/bc-older/boilerplate.json":          fmt.Sprintf(boundedContextJSON, "1.1.0"),
		"/b/bc-older/Content/x.cs":              "",
		"/b/broken/boilerplate.json":            `{"name": 1}`,
		"/b/.git/boilerplate.json":              fmt.Sprintf(boundedContextJSON, "9.0.0"),
		"/b/artifacts/boilerplate.json":         artifactsJSON,
		"/b/artifacts/Content/boilerplate.json": `{"name": "nested", "type": "application"}`,
	})

	bs := loader.Load("/a", "/b", "/missing")
	require.Len(t, bs, 2)
	assert.Equal(t, "1.3.0", bs[0].Version)
	assert.Equal(t, "/b/bc-new/boilerplate.json", bs[0].Path)
	assert.Equal(t, "Artifacts", bs[1].Name)
	assert.Contains(t, logs.String(), "Skipping invalid boilerplate")
}

func TestTemplates(t *testing.T) {
	loader, logs := newLoader(t, map[string]string{
		"/art/boilerplate.json":              artifactsJSON,
		"/art/Content/command/template.json": commandTemplateJSON,
		"/art/Content/command/{{.name}}.cs":  "class {{.name}} {}",
		"/art/Content/broken/template.json":  `{"name": "Broken", "type": "x", "area": "nowhere"}`,
	})

	b, err := loader.LoadDir("/art")
	require.NoError(t, err)

	templates := loader.Templates(b)
	require.Len(t, templates, 1)
	tmpl := templates[0]
	assert.Equal(t, "command", tmpl.Type)
	assert.Equal(t, "domain", tmpl.Area)
	assert.Equal(t, "/art/Content/command", tmpl.Dir())
	assert.Same(t, b, tmpl.Boilerplate)
	assert.Contains(t, logs.String(), "Skipping invalid artifact template")

	names := make([]string, 0)
	for _, dep := range tmpl.AllDependencies() {
		names = append(names, dep.Name)
	}
	assert.Equal(t, []string{"namespace", "name"}, names)
}

func TestTemplates_InvalidArea(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/art/boilerplate.json":            artifactsJSON,
		"/art/Content/query/template.json": `{"name": "Q", "type": "query", "area": "nowhere"}`,
	})
	b, err := loader.LoadDir("/art")
	require.NoError(t, err)

	_, err = loader.Parser().ParseTemplate("/art/Content/query/template.json", b)
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}

func TestTemplates_NotArtifacts(t *testing.T) {
	loader, _ := newLoader(t, nil)
	assert.Nil(t, loader.Templates(&Boilerplate{Type: TypeApplication}))
}

func TestAllDependencies_TemplateOverridesBoilerplate(t *testing.T) {
	owner := &Boilerplate{Dependencies: []dependencies.Dependency{
		{Name: "namespace"}, {Name: "name", Description: "owner"},
	}}
	tmpl := &ArtifactTemplate{Boilerplate: owner, Dependencies: []dependencies.Dependency{
		{Name: "name", Description: "template"},
	}}

	deps := tmpl.AllDependencies()
	require.Len(t, deps, 2)
	assert.Equal(t, "namespace", deps[0].Name)
	assert.Equal(t, "template", deps[1].Description)
}

func TestFilters(t *testing.T) {
	bs := []*Boilerplate{
		{Name: "app", Type: TypeApplication, Language: "csharp"},
		{Name: "bc", Type: TypeBoundedContext, Language: "csharp", Namespace: "dolittle"},
		{Name: "web", Type: TypeBoundedContext, Language: AnyLanguage},
		{Name: "py", Type: TypeBoundedContext, Language: "python"},
	}

	assert.Len(t, ByType(bs, TypeBoundedContext), 3)
	assert.Len(t, ByLanguage(bs, "csharp"), 3)
	assert.Len(t, ByNamespace(bs, "dolittle"), 1)
	assert.Len(t, ByName(bs, "py"), 1)
	assert.Len(t, ByLanguage(ByType(bs, TypeBoundedContext), "python"), 2)
}

func TestCompatible(t *testing.T) {
	b := &Boilerplate{Tooling: ">=2.0.0"}

	ok, err := Compatible(b, "2.1.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Compatible(b, "1.9.0")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Compatible(b, "dev")
	require.NoError(t, err)
	assert.True(t, ok)
}
