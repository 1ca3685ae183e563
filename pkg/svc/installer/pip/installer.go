// Package pip installs the astrogaia dependency manifest into the virtual
// environment with the environment's own pip.
package pip

import (
	"context"
	"fmt"
	"os"

	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/installer"
	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/provisioner/venv"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
)

// systemPip is used when the environment holds no pip of its own.
const systemPip = "pip3"

// Installer installs a requirements manifest with pip.
type Installer struct {
	runner   runner.CommandRunner
	envDir   string
	manifest string
}

// Compile-time interface compliance verification.
var _ installer.Installer = (*Installer)(nil)

// NewInstaller creates a pip installer targeting the environment in envDir.
// manifest is the requirements file to install.
func NewInstaller(cmdRunner runner.CommandRunner, envDir, manifest string) *Installer {
	return &Installer{
		runner:   cmdRunner,
		envDir:   envDir,
		manifest: manifest,
	}
}

// Install upgrades pip itself, then installs every dependency listed in the
// manifest. Addressing the environment's pip by path keeps the install scoped
// to the environment without sourcing an activate script.
func (i *Installer) Install(ctx context.Context) error {
	pip := venv.BinaryPath(i.envDir, "pip", systemPip)

	res, err := i.runner.Run(ctx, pip, "install", "--upgrade", "pip")
	if err != nil {
		return fmt.Errorf("upgrade pip: %w, output: %s", err, res.Stderr)
	}

	res, err = i.runner.Run(ctx, pip, "install", "-r", i.manifest)
	if err != nil {
		return fmt.Errorf("install requirements from %s: %w, output: %s", i.manifest, err, res.Stderr)
	}

	return nil
}

// Uninstall removes the virtual environment directory entirely.
func (i *Installer) Uninstall(_ context.Context) error {
	err := os.RemoveAll(i.envDir)
	if err != nil {
		return fmt.Errorf("remove environment %s: %w", i.envDir, err)
	}

	return nil
}
