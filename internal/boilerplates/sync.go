package boilerplates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dolittle-tools/common/internal/userdata"
)

const (
	// DefaultMaxAge is how long a synced source stays fresh.
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// GitFunc runs git with args in dir and returns its combined output.
type GitFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Syncer keeps local copies of boilerplate sources.
type Syncer struct {
	// Root holds one folder per source.
	Root   string
	Git    GitFunc
	Logger *slog.Logger
}

// NewSyncer returns a syncer cloning into root with the git binary.
func NewSyncer(root string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{Root: root, Git: runGit, Logger: logger}
}

// Dir returns the local folder of a source.
func (s *Syncer) Dir(src Source) string { return filepath.Join(s.Root, src.Name) }

// Sync clones or updates every source. All sources are attempted; the
// failures are joined.
func (s *Syncer) Sync(ctx context.Context, sources []Source) error {
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.SyncSource(ctx, src); err != nil {
			errs = append(errs, fmt.Errorf("syncing %s: %w", src.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SyncSource clones a source the first time and pulls it afterwards.
func (s *Syncer) SyncSource(ctx context.Context, src Source) error {
	dir := s.Dir(src)
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		s.Logger.Info("Updating boilerplate source", "source", src.Name)
		if _, err := s.Git(ctx, dir, "pull", "--depth=1", "--rebase"); err != nil {
			return fmt.Errorf("pulling updates: %w", err)
		}
		WriteSyncMarker(dir)
		return nil
	}

	s.Logger.Info("Cloning boilerplate source", "source", src.Name, "url", src.URL)
	return s.clone(ctx, src, dir)
}

// clone performs a shallow clone into a temporary folder and renames it
// into place on success.
func (s *Syncer) clone(ctx context.Context, src Source, dir string) error {
	tmpDir := dir + tmpSuffix
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	args := []string{"clone", "--depth=1"}
	if src.Branch != "" {
		args = append(args, "--branch", src.Branch)
	}
	args = append(args, src.URL, tmpDir)
	if _, err := s.Git(ctx, "", args...); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing source dir: %w", err)
	}
	if err := os.Rename(tmpDir, dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing clone: %w", err)
	}

	WriteSyncMarker(dir)
	return nil
}

// Stale returns the sources not synced within maxAge.
func (s *Syncer) Stale(sources []Source, maxAge time.Duration) []Source {
	var stale []Source
	for _, src := range sources {
		if IsStale(s.Dir(src), maxAge) {
			stale = append(stale, src)
		}
	}
	return stale
}

// WriteSyncMarker writes the current Unix timestamp to the marker file.
func WriteSyncMarker(dir string) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(filepath.Join(dir, userdata.SyncMarkerFile), []byte(ts), userdata.FilePermNormal)
}

// ReadSyncMarker reads the timestamp from the marker file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadSyncMarker(dir string) time.Time {
	data, err := os.ReadFile(filepath.Join(dir, userdata.SyncMarkerFile))
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale reports whether dir was last synced more than maxAge ago.
// A folder without a marker is stale.
func IsStale(dir string, maxAge time.Duration) bool {
	last := ReadSyncMarker(dir)
	if last.IsZero() {
		return true
	}
	return time.Since(last) > maxAge
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, fmt.Errorf("git is required but not found in PATH")
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%w\n%s", err, strings.TrimSpace(string(out)))
	}
	return out, nil
}
