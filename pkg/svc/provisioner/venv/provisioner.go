// Package venv provisions the isolated Python environment the astrogaia
// dependencies are installed into.
package venv

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/notify"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
)

// Strategy names reported in status output.
const (
	// StrategyVirtualenv creates the environment with the virtualenv tool.
	StrategyVirtualenv = "virtualenv"
	// StrategyVenvModule creates the environment with the interpreter's
	// built-in venv module.
	StrategyVenvModule = "venv module"
	// StrategyInstallVirtualenv installs virtualenv with pip and retries
	// StrategyVirtualenv.
	StrategyInstallVirtualenv = "pip-installed virtualenv"
)

// ErrAllStrategiesFailed is returned when every creation strategy failed.
var ErrAllStrategiesFailed = errors.New("no virtualenv strategy succeeded")

// Strategy is one way of creating the environment. Strategies are tried in
// order, exactly once each, until one succeeds.
type Strategy struct {
	// Name identifies the strategy in status output.
	Name string
	// Create attempts to create the environment.
	Create func(ctx context.Context) error
}

// Provisioner creates virtual environments via a first-success-wins fallback
// chain.
type Provisioner struct {
	runner runner.CommandRunner
	python string
	writer io.Writer
}

// NewProvisioner creates a Provisioner. python is the interpreter targeted by
// virtualenv; writer receives warnings for strategies that fail over.
func NewProvisioner(cmdRunner runner.CommandRunner, python string, writer io.Writer) *Provisioner {
	return &Provisioner{
		runner: cmdRunner,
		python: python,
		writer: writer,
	}
}

// Provision tries each strategy once, in order, and returns the name of the
// first one that succeeds. When every strategy fails it returns
// ErrAllStrategiesFailed; no retries, no backoff.
func (p *Provisioner) Provision(ctx context.Context, envName string) (string, error) {
	for _, strategy := range p.strategies(envName) {
		err := strategy.Create(ctx)
		if err == nil {
			return strategy.Name, nil
		}

		notify.Warningf(p.writer, "%s failed: %v", strategy.Name, err)
	}

	return "", ErrAllStrategiesFailed
}

// strategies builds the ordered fallback chain for envName.
func (p *Provisioner) strategies(envName string) []Strategy {
	createWithVirtualenv := func(ctx context.Context) error {
		res, err := p.runner.Run(ctx, "virtualenv", "-p", p.python, envName)
		if err != nil {
			return fmt.Errorf("create %s with virtualenv: %w, output: %s", envName, err, res.Stderr)
		}

		return nil
	}

	createWithVenvModule := func(ctx context.Context) error {
		res, err := p.runner.Run(ctx, p.python, "-m", "venv", envName)
		if err != nil {
			return fmt.Errorf("create %s with venv module: %w, output: %s", envName, err, res.Stderr)
		}

		return nil
	}

	installVirtualenvAndRetry := func(ctx context.Context) error {
		res, err := p.runner.Run(ctx, "pip3", "install", "virtualenv")
		if err != nil {
			return fmt.Errorf("install virtualenv with pip3: %w, output: %s", err, res.Stderr)
		}

		return createWithVirtualenv(ctx)
	}

	return []Strategy{
		{Name: StrategyVirtualenv, Create: createWithVirtualenv},
		{Name: StrategyVenvModule, Create: createWithVenvModule},
		{Name: StrategyInstallVirtualenv, Create: installVirtualenvAndRetry},
	}
}
