package resolving

import (
	"testing"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namespaceDep(milestone string) dependencies.Dependency {
	return discoverDep("namespace", dependencies.Discovery{DiscoverType: dependencies.DiscoverNamespace, Milestone: milestone})
}

func TestNamespace_FromMilestoneDownToDestination(t *testing.T) {
	d, _ := newDiscoverer(t, map[string]string{
		"/root/A/milestone.txt": "",
		"/root/A/B/C/.keep":     "",
	})
	got, err := d.Discover(namespaceDep(`(^|/)milestone\.txt$`), "/root/A/B/C", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "milestone.B.C", got)
}

func TestNamespace_DestinationHoldsMilestone(t *testing.T) {
	d, _ := newDiscoverer(t, map[string]string{"/work/Acme.Shop.csproj": ""})
	got, err := d.Discover(namespaceDep(`\.csproj$`), "/work", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "Acme.Shop", got)
}

func TestNamespace_NearestMilestoneWins(t *testing.T) {
	d, _ := newDiscoverer(t, map[string]string{
		"/repo/Outer.csproj":             "",
		"/repo/Source/Inner.csproj":      "",
		"/repo/Source/Features/Carts/.k": "",
	})
	got, err := d.Discover(namespaceDep(`\.csproj$`), "/repo/Source/Features/Carts", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "Inner.Features.Carts", got)
}

func TestNamespace_NoMilestoneIsEmptyWithWarning(t *testing.T) {
	d, logs := newDiscoverer(t, map[string]string{"/root/A/B/C/.keep": ""})
	got, err := d.Discover(namespaceDep(`(^|/)milestone\.txt$`), "/root/A/B/C", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Could not discover the namespace")
}

func TestNamespace_BrokenMilestone(t *testing.T) {
	d, _ := newDiscoverer(t, nil)
	_, err := d.Discover(namespaceDep(`(`), "/x", "csharp")
	assert.ErrorIs(t, err, dependencies.ErrInvalidField)

	_, err = d.Discover(namespaceDep(""), "/x", "csharp")
	assert.ErrorIs(t, err, dependencies.ErrMissingField)
}

var shopTree = map[string]string{
	"/shop/Shop.csproj":                         "",
	"/shop/Concepts/Carts/CartId.cs":            "public record CartId(Guid Value);",
	"/shop/Concepts/Carts/Quantity.cs":          "public record Quantity(int Value);",
	"/shop/Concepts/readme.md":                  "record Ignored",
	"/shop/Domain/Carts/Cart.cs":                "public class Cart : AggregateRoot {}\npublic class CartLine {}",
	"/shop/Domain/Carts/CartPolicy.cs":          "// nothing to see",
	"/shop/Events/Carts/ItemAddedToCart.cs":     "public record ItemAddedToCart(CartId Cart) : IEvent;",
	"/shop/Events/Carts/ItemRemovedFromCart.cs": "public record ItemRemovedFromCart(CartId Cart) : IEvent;",
	"/shop/Read/Carts/CartView.cs":              "public class CartView : IReadModel {}",
}

func TestMultipleFiles_Paths(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("files", dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `\.cs$`})

	got, err := d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{"/shop/Domain/Carts/Cart.cs", "/shop/Domain/Carts/CartPolicy.cs"}, got)
}

func TestMultipleFiles_ContentMatchContributesFirstGroup(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("classes", dependencies.Discovery{
		DiscoverType: dependencies.DiscoverMultipleFiles,
		FileMatch:    `\.cs$`,
		ContentMatch: `class (\w+)`,
	})

	got, err := d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cart"}, got)
}

func TestMultipleFiles_FromAreaWithNamespace(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("events", dependencies.Discovery{
		DiscoverType:  dependencies.DiscoverMultipleFiles,
		FileMatch:     `\.cs$`,
		ContentMatch:  `record (\w+)\(`,
		FromArea:      "events",
		WithNamespace: true,
		Milestone:     `\.csproj$`,
	})

	got, err := d.Discover(dep, "/shop/Domain/Carts", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []dependencies.NamespacedValue{
		{Value: "ItemAddedToCart", Namespace: "Shop.Events.Carts"},
		{Value: "ItemRemovedFromCart", Namespace: "Shop.Events.Carts"},
	}, got)
}

func TestMultipleFiles_NothingFoundIsEmptyList(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("files", dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `\.ts$`})
	got, err := d.Discover(dep, "/shop", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	dep.Discover.WithNamespace = true
	dep.Discover.Milestone = `\.csproj$`
	got, err = d.Discover(dep, "/shop", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []dependencies.NamespacedValue{}, got)
}

func TestMultipleFiles_AreaNotConfigured(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("files", dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `\.cs$`, FromArea: "read"})
	_, err := d.Discover(dep, "/shop", "typescript")
	assert.ErrorIs(t, err, dependencies.ErrInvalidField)
	assert.Contains(t, err.Error(), "typescript")
}

func TestMultipleFiles_AreaNotFound(t *testing.T) {
	d, logs := newDiscoverer(t, map[string]string{"/lonely/File.cs": ""})
	dep := discoverDep("files", dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `\.cs$`, FromArea: "read"})
	got, err := d.Discover(dep, "/lonely", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
	assert.Contains(t, logs.String(), "Could not find the area folder")
}

func TestFile(t *testing.T) {
	d, logs := newDiscoverer(t, shopTree)
	dep := discoverDep("project", dependencies.Discovery{DiscoverType: dependencies.DiscoverFile, FileMatch: `\.csproj$`})

	got, err := d.Discover(dep, "/shop", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "/shop/Shop.csproj", got)

	got, err = d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Contains(t, logs.String(), "Discovery found nothing")
}

func TestFile_WithNamespace(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("view", dependencies.Discovery{
		DiscoverType: dependencies.DiscoverFile, FileMatch: `View\.cs$`, FromArea: "read",
		WithNamespace: true, Milestone: `\.csproj$`,
	})
	got, err := d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, dependencies.NamespacedValue{Value: "/shop/Read/Carts/CartView.cs", Namespace: "Shop.Read.Carts"}, got)
}

func TestFile_WithNamespaceNothingFound(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("view", dependencies.Discovery{
		DiscoverType: dependencies.DiscoverFile, FileMatch: `Missing\.cs$`, FromArea: "read",
		WithNamespace: true, Milestone: `\.csproj$`,
	})
	got, err := d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, dependencies.NamespacedValue{}, got)

	dep.Discover.DiscoverType = dependencies.DiscoverFileContent
	dep.Discover.FileMatch = `\.cs$`
	dep.Discover.ContentMatch = `interface (\w+)`
	got, err = d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, dependencies.NamespacedValue{}, got)
}

func TestPatternsWithFolders(t *testing.T) {
	d, _ := newDiscoverer(t, map[string]string{
		"/app/Core.csproj":           "",
		"/app/Domain/Carts/Cart.cs":  "",
		"/app/Events/Carts/Added.cs": "",
	})

	files := discoverDep("files", dependencies.Discovery{DiscoverType: dependencies.DiscoverMultipleFiles, FileMatch: `Domain/.*\.cs$`})
	got, err := d.Discover(files, "/app", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/Domain/Carts/Cart.cs"}, got)

	got, err = d.Discover(namespaceDep(`/app/.*\.csproj$`), "/app/Domain/Carts", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "Core.Domain.Carts", got)
}

func TestFileContent(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("first", dependencies.Discovery{
		DiscoverType: dependencies.DiscoverFileContent, FileMatch: `\.cs$`, ContentMatch: `record (\w+)\(`, FromArea: "concepts",
	})
	got, err := d.Discover(dep, "/shop/Domain/Carts", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "CartId", got)

	dep.Discover.ContentMatch = `interface (\w+)`
	got, err = d.Discover(dep, "/shop/Domain/Carts", "csharp")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMultipleFileContents_EveryMatch(t *testing.T) {
	d, _ := newDiscoverer(t, shopTree)
	dep := discoverDep("classes", dependencies.Discovery{
		DiscoverType: dependencies.DiscoverMultipleFileContents, FileMatch: `\.cs$`, ContentMatch: `class (\w+)`,
	})
	got, err := d.Discover(dep, "/shop/Domain", "csharp")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cart", "CartLine"}, got)
}

func TestUnhandledDiscoverType(t *testing.T) {
	d, _ := newDiscoverer(t, nil)
	dep := discoverDep("x", dependencies.Discovery{DiscoverType: "folders"})
	_, err := d.Discover(dep, "/", "csharp")
	assert.ErrorIs(t, err, dependencies.ErrUnhandledDiscoverType)
	assert.Contains(t, err.Error(), `"folders"`)
}
