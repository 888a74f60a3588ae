package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// DefaultMaxDepth bounds upward searches when Options.MaxDepth is not set.
const DefaultMaxDepth = 64

const defaultCacheSize = 256

// Options configures a Folders.
type Options struct {
	// MaxDepth is the most directories an upward search visits, the start
	// directory included.
	MaxDepth  int
	CacheSize int
	Logger    *slog.Logger
}

// Folders performs file and folder searches over a filesystem.
type Folders struct {
	fs       afero.Fs
	maxDepth int
	patterns *lru.Cache[string, *regexp.Regexp]
	logger   *slog.Logger
}

// New returns a Folders over fsys. A nil fsys means the OS filesystem.
func New(fsys afero.Fs, opts Options) *Folders {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *regexp.Regexp](opts.CacheSize)
	return &Folders{fs: fsys, maxDepth: opts.MaxDepth, patterns: cache, logger: opts.Logger}
}

// Fs returns the underlying filesystem.
func (f *Folders) Fs() afero.Fs { return f.fs }

// MaxDepth returns the bound applied to upward searches.
func (f *Folders) MaxDepth() int { return f.maxDepth }

// Compile compiles pattern, reusing earlier compilations.
func (f *Folders) Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := f.patterns.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	f.patterns.Add(pattern, re)
	return re, nil
}

// Normalize cleans path and makes it absolute.
func Normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Ancestors yields start and each of its parents, nearest first. It stops
// after the filesystem root or after maxDepth directories, whichever comes
// first. A non-positive maxDepth means DefaultMaxDepth.
func Ancestors(start string, maxDepth int) iter.Seq[string] {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return func(yield func(string) bool) {
		dir := Normalize(start)
		for range maxDepth {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// Ancestors yields the directories an upward search from start visits.
func (f *Folders) Ancestors(start string) iter.Seq[string] {
	return Ancestors(start, f.maxDepth)
}

// SearchRecursive returns every file below folder matching the doublestar
// glob. A glob without a separator is matched against base names, otherwise
// against the slash separated path relative to folder.
func (f *Folders) SearchRecursive(folder, glob string) ([]string, error) {
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid glob %q", glob)
	}
	byName := !strings.Contains(glob, "/")
	root := Normalize(folder)
	return f.walkFiles(root, func(path string) bool {
		subject := filepath.Base(path)
		if !byName {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return false
			}
			subject = filepath.ToSlash(rel)
		}
		ok, _ := doublestar.Match(glob, subject)
		return ok
	})
}

// SearchRecursiveRegex returns every file below folder whose path matches re.
// Regular expressions are matched against the absolute, slash separated
// path, so "(^|/)Cart\.cs$" selects a base name and "Domain/.*\.cs$" a folder.
func (f *Folders) SearchRecursiveRegex(folder string, re *regexp.Regexp) ([]string, error) {
	return f.walkFiles(Normalize(folder), func(path string) bool {
		return matchPath(re, path)
	})
}

// SearchFolderRegex returns the files directly in folder whose path matches re.
func (f *Folders) SearchFolderRegex(folder string, re *regexp.Regexp) ([]string, error) {
	return f.readDir(Normalize(folder), func(path string, info os.FileInfo) bool {
		return !info.IsDir() && matchPath(re, path)
	})
}

// FoldersInRegex returns the folders directly in folder whose path matches re.
func (f *Folders) FoldersInRegex(folder string, re *regexp.Regexp) ([]string, error) {
	return f.readDir(Normalize(folder), func(path string, info os.FileInfo) bool {
		return info.IsDir() && matchPath(re, path)
	})
}

func matchPath(re *regexp.Regexp, path string) bool {
	return re.MatchString(filepath.ToSlash(path))
}

// NearestFileSearchingUpwards returns the first file matching re in folder or
// its nearest ancestor holding one. It returns "" when none is found.
func (f *Folders) NearestFileSearchingUpwards(folder string, re *regexp.Regexp) (string, error) {
	for dir := range f.Ancestors(folder) {
		files, err := f.SearchFolderRegex(dir, re)
		if err != nil {
			return "", err
		}
		if len(files) > 0 {
			return files[0], nil
		}
	}
	return "", nil
}

// NearestDirsSearchingUpwards returns the folders matching re in folder or in
// the nearest ancestor holding at least one.
func (f *Folders) NearestDirsSearchingUpwards(folder string, re *regexp.Regexp) ([]string, error) {
	for dir := range f.Ancestors(folder) {
		dirs, err := f.FoldersInRegex(dir, re)
		if err != nil {
			return nil, err
		}
		if len(dirs) > 0 {
			return dirs, nil
		}
	}
	return nil, nil
}

// ReadFile returns the content of path.
func (f *Folders) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, Normalize(path))
}

// Exists reports whether path exists.
func (f *Folders) Exists(path string) bool {
	ok, err := afero.Exists(f.fs, Normalize(path))
	return err == nil && ok
}

// IsDir reports whether path is an existing folder.
func (f *Folders) IsDir(path string) bool {
	ok, err := afero.IsDir(f.fs, Normalize(path))
	return err == nil && ok
}

func (f *Folders) readDir(folder string, keep func(path string, info os.FileInfo) bool) ([]string, error) {
	infos, err := afero.ReadDir(f.fs, folder)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading folder %s: %w", folder, err)
	}
	var out []string
	for _, info := range infos {
		path := filepath.Join(folder, info.Name())
		if keep(path, info) {
			out = append(out, path)
		}
	}
	return out, nil
}

func (f *Folders) walkFiles(root string, keep func(path string) bool) ([]string, error) {
	if !f.IsDir(root) {
		return nil, nil
	}
	var out []string
	err := afero.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped.
			f.logger.Debug("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && keep(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}
	return out, nil
}
