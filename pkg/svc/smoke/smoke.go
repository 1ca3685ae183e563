// Package smoke runs a basic liveness check of the installed program.
package smoke

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/provisioner/venv"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
)

// systemPython is used when the environment holds no interpreter of its own.
const systemPython = "python3"

// Tester invokes the cloned program's help output as a liveness check.
type Tester struct {
	runner runner.CommandRunner
}

// NewTester creates a Tester using the given runner.
func NewTester(cmdRunner runner.CommandRunner) *Tester {
	return &Tester{
		runner: cmdRunner,
	}
}

// Run executes `<python> <repoDir>/<entrypoint> -h` with the environment's
// interpreter and returns the help output. Any failure means the installation
// is not usable as-is.
func (t *Tester) Run(ctx context.Context, envDir, repoDir, entrypoint string) (string, error) {
	python := venv.BinaryPath(envDir, "python", systemPython)
	program := filepath.Join(repoDir, entrypoint)

	res, err := t.runner.Run(ctx, python, program, "-h")
	if err != nil {
		return "", fmt.Errorf("smoke test %s: %w, output: %s", program, err, res.Stderr)
	}

	return res.Stdout, nil
}
