package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dolittle-tools/common/internal/folders"
	"github.com/dolittle-tools/common/internal/userdata"
)

// ErrNoBoundedContext is returned when no bounded-context.json is found
// above the working directory.
var ErrNoBoundedContext = errors.New("not inside a bounded context: no " + userdata.ProjectConfigFile + " found")

var boundedContextFile = regexp.MustCompile("(^|/)" + regexp.QuoteMeta(userdata.ProjectConfigFile) + "$")

// Destination is where an artifact is written.
type Destination struct {
	// Dir is the folder receiving the artifact files.
	Dir string
	// Name is the artifact name without feature segments.
	Name string
	// BoundedContextRoot is the folder holding bounded-context.json.
	BoundedContextRoot string
}

// DetermineDestination works out the folder an artifact called name
// belongs in. The area is mapped to its folder through areas for language.
// Area patterns must name a single folder: "Domain", "^Domain$" and
// "(^|/)Domain$" all mean the Domain folder.
// When cwd already lies inside that area folder the feature path below it is
// kept; otherwise the artifact goes below the area folder at the bounded
// context root. Dotted names add feature folders: "Carts.Checkout.Pay"
// is artifact "Pay" in "Carts/Checkout".
func DetermineDestination(f *folders.Folders, areas map[string]map[string]string, area, language, name, cwd string) (*Destination, error) {
	areaFolder := areaFolderName(areas[language][area])
	if areaFolder == "" {
		return nil, fmt.Errorf("no folder configured for area %q in language %q", area, language)
	}

	cwd = folders.Normalize(cwd)
	config, err := f.NearestFileSearchingUpwards(cwd, boundedContextFile)
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", userdata.ProjectConfigFile, err)
	}
	if config == "" {
		return nil, ErrNoBoundedContext
	}
	root := filepath.Dir(config)
	areaRoot := filepath.Join(root, areaFolder)

	base := areaRoot
	if rel, err := filepath.Rel(areaRoot, cwd); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		base = cwd
	}

	segments := strings.Split(name, ".")
	artifact := segments[len(segments)-1]
	if artifact == "" {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}

	return &Destination{
		Dir:                filepath.Join(append([]string{base}, segments[:len(segments)-1]...)...),
		Name:               artifact,
		BoundedContextRoot: root,
	}, nil
}

func areaFolderName(pattern string) string {
	name := strings.TrimPrefix(pattern, "(^|/)")
	name = strings.TrimPrefix(name, "^")
	name = strings.TrimPrefix(name, "/")
	return strings.TrimSuffix(name, "$")
}
