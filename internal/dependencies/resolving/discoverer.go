package resolving

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/folders"
)

// Areas maps a core language to the directory name pattern of each area.
type Areas map[string]map[string]string

// Discoverer derives dependency values from the filesystem.
type Discoverer struct {
	folders *folders.Folders
	areas   Areas
	logger  *slog.Logger
}

// NewDiscoverer returns a Discoverer searching through f.
func NewDiscoverer(f *folders.Folders, areas Areas, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{folders: f, areas: areas, logger: logger}
}

// Discover resolves dep starting at location. The result is a string for
// namespace, file and fileContent; a []string for multipleFiles and
// multipleFileContents. With withNamespace every value is a
// dependencies.NamespacedValue instead of a string, and file or fileContent
// finding nothing yields the zero NamespacedValue rather than "".
// Milestone, fileMatch and area patterns match absolute slash separated paths.
func (d *Discoverer) Discover(dep dependencies.Dependency, location, coreLanguage string) (any, error) {
	if dep.Discover == nil {
		return nil, dependencies.MissingField(dep.Name, "discoverType")
	}
	location = folders.Normalize(location)
	s := &search{Discoverer: d, dep: dep, discovery: dep.Discover, namespaces: map[string]string{}}

	switch dep.Discover.DiscoverType {
	case dependencies.DiscoverNamespace:
		milestone, err := s.pattern("milestone", dep.Discover.Milestone)
		if err != nil {
			return nil, err
		}
		return d.namespace(dep.Name, milestone, location)
	case dependencies.DiscoverMultipleFiles:
		return s.multipleFiles(location, coreLanguage)
	case dependencies.DiscoverFile:
		return s.file(location, coreLanguage)
	case dependencies.DiscoverFileContent:
		return s.fileContent(location, coreLanguage)
	case dependencies.DiscoverMultipleFileContents:
		return s.multipleFileContents(location, coreLanguage)
	default:
		return nil, dependencies.UnhandledDiscoverType(dep.Name, dep.Discover.DiscoverType)
	}
}

// namespace joins the extension-less name of the nearest milestone file with
// the folder names from below the milestone folder down to location. It
// returns "" and logs a warning when no milestone is found.
func (d *Discoverer) namespace(dependency string, milestone *regexp.Regexp, location string) (string, error) {
	milestonePath, err := d.folders.NearestFileSearchingUpwards(location, milestone)
	if err != nil {
		return "", err
	}
	if milestonePath == "" {
		d.logger.Warn("Could not discover the namespace, no milestone found",
			slog.String("dependency", dependency),
			slog.String("milestone", milestone.String()),
			slog.String("location", location))
		return "", nil
	}

	milestoneDir := filepath.Dir(milestonePath)
	var segments []string
	for dir := range d.folders.Ancestors(location) {
		if dir == milestoneDir {
			break
		}
		segments = append(segments, filepath.Base(dir))
	}
	slices.Reverse(segments)

	base := filepath.Base(milestonePath)
	root := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Join(append([]string{root}, segments...), "."), nil
}

// search holds the state of one Discover call.
type search struct {
	*Discoverer
	dep        dependencies.Dependency
	discovery  *dependencies.Discovery
	namespaces map[string]string
}

func (s *search) pattern(field, source string) (*regexp.Regexp, error) {
	if source == "" {
		return nil, dependencies.MissingField(s.dep.Name, field)
	}
	re, err := s.folders.Compile(source)
	if err != nil {
		return nil, dependencies.InvalidField(s.dep.Name, field, err.Error())
	}
	return re, nil
}

// roots returns the folders file searches start from.
func (s *search) roots(location, coreLanguage string) ([]string, error) {
	if s.discovery.FromArea == "" {
		return []string{location}, nil
	}
	pattern := s.areas[coreLanguage][s.discovery.FromArea]
	if pattern == "" {
		return nil, dependencies.InvalidField(s.dep.Name, "fromArea",
			fmt.Sprintf("no %q area is configured for core language %q", s.discovery.FromArea, coreLanguage))
	}
	re, err := s.folders.Compile(pattern)
	if err != nil {
		return nil, dependencies.InvalidField(s.dep.Name, "fromArea", err.Error())
	}
	dirs, err := s.folders.NearestDirsSearchingUpwards(location, re)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		s.logger.Warn("Could not find the area folder",
			slog.String("dependency", s.dep.Name),
			slog.String("area", s.discovery.FromArea),
			slog.String("location", location))
	}
	return dirs, nil
}

// files returns the files matching fileMatch below every root.
func (s *search) files(location, coreLanguage string) ([]string, error) {
	fileMatch, err := s.pattern("fileMatch", s.discovery.FileMatch)
	if err != nil {
		return nil, err
	}
	roots, err := s.roots(location, coreLanguage)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, root := range roots {
		found, err := s.folders.SearchRecursiveRegex(root, fileMatch)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// captures returns the first capture group of the first match in file, or
// of every match when all is set.
func (s *search) captures(re *regexp.Regexp, file string, all bool) ([]string, error) {
	content, err := s.folders.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	limit := 1
	if all {
		limit = -1
	}
	var out []string
	for _, m := range re.FindAllSubmatch(content, limit) {
		if len(m) > 1 {
			out = append(out, string(m[1]))
		}
	}
	return out, nil
}

// value pairs v with the namespace of file's folder when withNamespace is set.
func (s *search) value(v, file string) (any, error) {
	if !s.discovery.WithNamespace {
		return v, nil
	}
	dir := filepath.Dir(file)
	ns, ok := s.namespaces[dir]
	if !ok {
		milestone, err := s.pattern("milestone", s.discovery.Milestone)
		if err != nil {
			return nil, err
		}
		if ns, err = s.namespace(s.dep.Name, milestone, dir); err != nil {
			return nil, err
		}
		s.namespaces[dir] = ns
	}
	return dependencies.NamespacedValue{Value: v, Namespace: ns}, nil
}

// collector accumulates either strings or namespaced values.
type collector struct {
	strings    []string
	namespaced []dependencies.NamespacedValue
	withNS     bool
}

func (c *collector) add(v any) {
	if nv, ok := v.(dependencies.NamespacedValue); ok {
		c.namespaced = append(c.namespaced, nv)
		return
	}
	c.strings = append(c.strings, v.(string))
}

func (c *collector) result() any {
	if c.withNS {
		if c.namespaced == nil {
			return []dependencies.NamespacedValue{}
		}
		return c.namespaced
	}
	if c.strings == nil {
		return []string{}
	}
	return c.strings
}

func (s *search) multipleFiles(location, coreLanguage string) (any, error) {
	files, err := s.files(location, coreLanguage)
	if err != nil {
		return nil, err
	}
	var contentMatch *regexp.Regexp
	if s.discovery.ContentMatch != "" {
		if contentMatch, err = s.pattern("contentMatch", s.discovery.ContentMatch); err != nil {
			return nil, err
		}
	}

	c := &collector{withNS: s.discovery.WithNamespace}
	for _, file := range files {
		raw := file
		if contentMatch != nil {
			groups, err := s.captures(contentMatch, file, false)
			if err != nil {
				return nil, err
			}
			if len(groups) == 0 {
				continue
			}
			raw = groups[0]
		}
		v, err := s.value(raw, file)
		if err != nil {
			return nil, err
		}
		c.add(v)
	}
	return c.result(), nil
}

func (s *search) file(location, coreLanguage string) (any, error) {
	files, err := s.files(location, coreLanguage)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return s.nothingFound(location), nil
	}
	return s.value(files[0], files[0])
}

func (s *search) fileContent(location, coreLanguage string) (any, error) {
	files, err := s.files(location, coreLanguage)
	if err != nil {
		return nil, err
	}
	contentMatch, err := s.pattern("contentMatch", s.discovery.ContentMatch)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		groups, err := s.captures(contentMatch, file, false)
		if err != nil {
			return nil, err
		}
		if len(groups) > 0 {
			return s.value(groups[0], file)
		}
	}
	return s.nothingFound(location), nil
}

func (s *search) multipleFileContents(location, coreLanguage string) (any, error) {
	files, err := s.files(location, coreLanguage)
	if err != nil {
		return nil, err
	}
	contentMatch, err := s.pattern("contentMatch", s.discovery.ContentMatch)
	if err != nil {
		return nil, err
	}
	c := &collector{withNS: s.discovery.WithNamespace}
	for _, file := range files {
		groups, err := s.captures(contentMatch, file, true)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			v, err := s.value(g, file)
			if err != nil {
				return nil, err
			}
			c.add(v)
		}
	}
	return c.result(), nil
}

func (s *search) nothingFound(location string) any {
	s.logger.Warn("Discovery found nothing",
		slog.String("dependency", s.dep.Name),
		slog.String("discoverType", string(s.discovery.DiscoverType)),
		slog.String("location", location))
	if s.discovery.WithNamespace {
		return dependencies.NamespacedValue{}
	}
	return ""
}
