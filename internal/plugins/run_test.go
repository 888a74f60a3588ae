package plugins

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellPlugin(t *testing.T, script string) *Plugin {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell plugins need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
	dir := t.TempDir()
	entry := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(entry, []byte("#!/bin/sh\n"+script), 0o755))
	return &Plugin{Manifest: Manifest{Name: "sample", Executable: "run.sh", Runtime: RuntimeExec}, Dir: dir}
}

func TestRunner_PassesEnvAndArgs(t *testing.T) {
	p := shellPlugin(t, `echo "$DOLITTLE_CORE_LANGUAGE $DOLITTLE_CWD $*"`+"\n")
	cwd := t.TempDir()

	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}, Stdin: &bytes.Buffer{}}
	out, err := r.Run(context.Background(), p, []string{"a", "b"}, Env{CoreLanguage: "csharp", Cwd: cwd})
	require.NoError(t, err)

	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "csharp "+cwd+" a b\n", out.Stdout)
	assert.Equal(t, out.Stdout, stdout.String())
}

func TestRunner_ReportsExitCode(t *testing.T) {
	p := shellPlugin(t, "echo failing >&2\nexit 3\n")

	r := &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Stdin: &bytes.Buffer{}}
	out, err := r.Run(context.Background(), p, nil, Env{Cwd: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "failing\n", out.Stderr)
}

func TestRunner_MissingEntryPoint(t *testing.T) {
	p := &Plugin{Manifest: Manifest{Name: "x", Executable: "missing"}, Dir: t.TempDir()}
	_, err := (&Runner{}).Run(context.Background(), p, nil, Env{})
	assert.Error(t, err)
}

func TestSetEnv(t *testing.T) {
	env := setEnv([]string{"A=1", "B=2"}, "A", "3")
	assert.Equal(t, []string{"A=3", "B=2"}, env)

	env = setEnv(env, "C", "4")
	assert.Equal(t, []string{"A=3", "B=2", "C=4"}, env)
}
