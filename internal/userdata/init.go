package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dolittle-tools/common/internal/branding"
)

const defaultSourcesFormat = `# Git repositories holding boilerplates. Synced with: %s boilerplates sync
sources:
  - name: %s
    url: %s
`

// InitHome creates the home directory layout. It prints progress messages to
// w and skips what already exists.
func InitHome(w io.Writer) error {
	root, err := GetHomeRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, root); err != nil {
		return err
	}

	boilerplates, err := GetBoilerplatesRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, boilerplates); err != nil {
		return err
	}

	plugins, err := GetPluginsRoot()
	if err != nil {
		return err
	}
	if err := ensureDir(w, plugins); err != nil {
		return err
	}

	sources := fmt.Sprintf(defaultSourcesFormat, branding.CLIName(), branding.CLIName(), branding.BoilerplatesRepoURL())
	return ensureFile(w, filepath.Join(root, SourcesFile), sources)
}

func ensureDir(w io.Writer, path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, DirPermNormal); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

func ensureFile(w io.Writer, path, content string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), FilePermNormal); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
