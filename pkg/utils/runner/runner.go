// Package runner abstracts spawning external processes so installer stages can
// be tested without a live toolchain.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Result holds the captured output of a finished command.
type Result struct {
	// Stdout is the captured standard output of the command.
	Stdout string
	// Stderr is the captured standard error of the command.
	Stderr string
}

// CommandRunner defines methods for running external commands and locating
// binaries on the search path.
type CommandRunner interface {
	// Run executes the named command and waits for it to complete.
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// LookPath searches for an executable named name on the PATH.
	LookPath(name string) (string, error)
}

// ExecCommandRunner runs commands with os/exec. Output is captured into the
// returned Result and, when writers are attached, streamed to them as well.
type ExecCommandRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecCommandRunner creates an ExecCommandRunner streaming to the given
// writers. Either writer may be nil to capture silently.
func NewExecCommandRunner(stdout, stderr io.Writer) *ExecCommandRunner {
	return &ExecCommandRunner{
		stdout: stdout,
		stderr: stderr,
	}
}

// logConfigOnce ensures logrus is configured exactly once to avoid data races.
var logConfigOnce sync.Once //nolint:gochecknoglobals // Required for one-time logrus initialization

// configureLogging sets up logrus for process tracing. Debug-level tracing of
// every spawned command is enabled with ASTROGAIA_SETUP_DEBUG=1.
func configureLogging() {
	logConfigOnce.Do(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})

		if os.Getenv("ASTROGAIA_SETUP_DEBUG") != "" {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	})
}

// Run executes the named command, waiting for completion.
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	configureLogging()

	logrus.WithFields(logrus.Fields{
		"command": name,
		"args":    strings.Join(args, " "),
	}).Debug("running command")

	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if r.stdout != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	}

	if r.stderr != nil {
		cmd.Stderr = io.MultiWriter(&errBuf, r.stderr)
	}

	err := cmd.Run()

	result := Result{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"command": name,
			"stderr":  result.Stderr,
		}).Debug("command failed")

		return result, fmt.Errorf("%s: %w", name, err)
	}

	return result, nil
}

// LookPath searches for an executable named name on the PATH.
func (r *ExecCommandRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", name, err)
	}

	return path, nil
}
