package plugins

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dolittle-tools/common/internal/branding"
)

// Env is the tool state handed to a plugin.
type Env struct {
	CoreLanguage string
	Cwd          string
}

// Output captures the result of a plugin execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes plugins.
type Runner struct {
	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the plugin with args. The core language and working
// directory are passed through DOLITTLE_CORE_LANGUAGE and DOLITTLE_CWD.
// A non-zero exit is reported in Output, not as an error.
func (r *Runner) Run(ctx context.Context, p *Plugin, args []string, env Env) (*Output, error) {
	entry := p.Entry()
	if _, err := os.Stat(entry); err != nil {
		return nil, fmt.Errorf("plugin entry point not found at %s: %w", entry, err)
	}

	name, cmdArgs := entry, args
	if p.Runtime == RuntimeNode {
		nodeBin, err := exec.LookPath("node")
		if err != nil {
			return nil, fmt.Errorf("node runtime requires Node.js: %w", err)
		}
		name, cmdArgs = nodeBin, append([]string{entry}, args...)
	}

	cmd := exec.CommandContext(ctx, name, cmdArgs...)
	cmd.Dir = env.Cwd
	cmd.Env = buildEnv(p, env)
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err := cmd.Run()
	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing plugin %s: %w", p.Name, err)
	}
	return output, nil
}

// buildEnv inherits the process environment and adds the tool variables.
func buildEnv(p *Plugin, env Env) []string {
	vars := os.Environ()
	vars = setEnv(vars, branding.EnvVar("CORE_LANGUAGE"), env.CoreLanguage)
	vars = setEnv(vars, branding.EnvVar("CWD"), env.Cwd)
	vars = setEnv(vars, branding.EnvVar("PLUGIN_PATH"), p.Dir)
	return vars
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
