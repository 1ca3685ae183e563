package venv_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/provisioner/venv"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnvName = "astrogaia-env"

var errToolFailed = errors.New("exit status 1")

func TestProvision_FirstStrategyWins(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "virtualenv", []string{"-p", "python3", testEnvName}).
		Return(runner.Result{}, nil)

	provisioner := venv.NewProvisioner(mockRunner, "python3", &out)

	strategy, err := provisioner.Provision(context.Background(), testEnvName)
	require.NoError(t, err)
	assert.Equal(t, venv.StrategyVirtualenv, strategy)

	// Later strategies must not run once one has succeeded.
	mockRunner.AssertNumberOfCalls(t, "Run", 1)
}

func TestProvision_FallsBackToVenvModule(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "virtualenv", []string{"-p", "python3", testEnvName}).
		Return(runner.Result{Stderr: "virtualenv: command not found"}, errToolFailed)
	mockRunner.On("Run", context.Background(), "python3", []string{"-m", "venv", testEnvName}).
		Return(runner.Result{}, nil)

	provisioner := venv.NewProvisioner(mockRunner, "python3", &out)

	strategy, err := provisioner.Provision(context.Background(), testEnvName)
	require.NoError(t, err)
	assert.Equal(t, venv.StrategyVenvModule, strategy)

	// The install-and-retry fallback must not be reached.
	mockRunner.AssertNotCalled(t, "Run", context.Background(), "pip3", []string{"install", "virtualenv"})
	assert.Contains(t, out.String(), "virtualenv failed")
}

func TestProvision_InstallsVirtualenvAsLastResort(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "virtualenv", []string{"-p", "python3", testEnvName}).
		Return(runner.Result{}, errToolFailed).Once()
	mockRunner.On("Run", context.Background(), "python3", []string{"-m", "venv", testEnvName}).
		Return(runner.Result{}, errToolFailed)
	mockRunner.On("Run", context.Background(), "pip3", []string{"install", "virtualenv"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", context.Background(), "virtualenv", []string{"-p", "python3", testEnvName}).
		Return(runner.Result{}, nil)

	provisioner := venv.NewProvisioner(mockRunner, "python3", &out)

	strategy, err := provisioner.Provision(context.Background(), testEnvName)
	require.NoError(t, err)
	assert.Equal(t, venv.StrategyInstallVirtualenv, strategy)
}

func TestProvision_AllStrategiesFail(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "virtualenv", []string{"-p", "python3", testEnvName}).
		Return(runner.Result{}, errToolFailed)
	mockRunner.On("Run", context.Background(), "python3", []string{"-m", "venv", testEnvName}).
		Return(runner.Result{}, errToolFailed)
	mockRunner.On("Run", context.Background(), "pip3", []string{"install", "virtualenv"}).
		Return(runner.Result{}, errToolFailed)

	provisioner := venv.NewProvisioner(mockRunner, "python3", &out)

	_, err := provisioner.Provision(context.Background(), testEnvName)
	require.ErrorIs(t, err, venv.ErrAllStrategiesFailed)
}
