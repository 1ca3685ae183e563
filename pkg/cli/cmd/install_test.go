package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	fcolor "github.com/fatih/color"
	"github.com/ffcarrasco/astrogaia-setup/pkg/cli/cmd"
	"github.com/ffcarrasco/astrogaia-setup/pkg/di"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRemoteUnreachable = errors.New("could not resolve host")

func TestMain(m *testing.M) {
	fcolor.NoColor = true

	m.Run()
}

// newInstallCmd wires the install command against a mock runner and a
// clean working directory and HOME.
func newInstallCmd(t *testing.T, mockRunner *runner.MockCommandRunner) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	runtimeContainer := di.New(di.ProvideTimer, di.ProvideCommandRunnerInstance(mockRunner))

	installCmd := cmd.NewInstallCmd(runtimeContainer)

	var out bytes.Buffer

	installCmd.SetOut(&out)
	installCmd.SetErr(&out)

	return installCmd, &out
}

func expectHappyPath(mockRunner *runner.MockCommandRunner) {
	mockRunner.On("Run", mock.Anything, "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "Python 3.11.4\n"}, nil)
	mockRunner.On("LookPath", "git").
		Return("/usr/bin/git", nil)
	mockRunner.On("Run", mock.Anything, "git",
		[]string{"clone", "https://github.com/ffcarrasco/astrogaia-python.git", "astrogaia-python"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "virtualenv",
		[]string{"-p", "python3", "astrogaia-env"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "--upgrade", "pip"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "-r", filepath.Join("astrogaia-python", "requirements.txt")}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "python3",
		[]string{filepath.Join("astrogaia-python", "astrogaia-python.py"), "-h"}).
		Return(runner.Result{Stdout: "usage: astrogaia-python.py [-h]\n"}, nil)
}

func TestInstall_FullPipeline(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	expectHappyPath(mockRunner)

	installCmd, out := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{})

	require.NoError(t, installCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "🐍 Checking Python interpreter")
	assert.Contains(t, output, "[+] python3 3.11.4 satisfies minimum version 3.10")
	assert.Contains(t, output, "[+] git found at /usr/bin/git")
	assert.Contains(t, output, "[+] cloned into astrogaia-python")
	assert.Contains(t, output, "[+] created astrogaia-env via virtualenv")
	assert.Contains(t, output, "[+] dependencies installed")
	assert.Contains(t, output, "[+] astrogaia-python.py responds to -h")
	assert.Contains(t, output, "source astrogaia-env/bin/activate")
	mockRunner.AssertExpectations(t)

	// The pwntools sentinel is derived from the detected interpreter version.
	sentinel := filepath.Join(os.Getenv("HOME"), ".cache", ".pwntools-cache-3.11", "update")
	content, err := os.ReadFile(sentinel)
	require.NoError(t, err)
	assert.Equal(t, "never\n", string(content))
}

func TestInstall_IgnorePythonCheckStillProbesForCachePath(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	expectHappyPath(mockRunner)

	installCmd, out := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{"--ignore-check-python"})

	require.NoError(t, installCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "[!] interpreter version check skipped on request")
	assert.NotContains(t, output, "satisfies minimum version")

	sentinel := filepath.Join(os.Getenv("HOME"), ".cache", ".pwntools-cache-3.11", "update")
	_, err := os.Stat(sentinel)
	require.NoError(t, err)
}

func TestInstall_UnknownFlagsAreIgnored(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	expectHappyPath(mockRunner)

	installCmd, _ := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{"--definitely-not-a-flag"})

	require.NoError(t, installCmd.Execute())
}

func TestInstall_OldPythonReportedButPipelineContinues(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", mock.Anything, "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "Python 3.9.7\n"}, nil)
	mockRunner.On("LookPath", "git").
		Return("/usr/bin/git", nil)
	mockRunner.On("Run", mock.Anything, "git",
		[]string{"clone", "https://github.com/ffcarrasco/astrogaia-python.git", "astrogaia-python"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "virtualenv",
		[]string{"-p", "python3", "astrogaia-env"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "--upgrade", "pip"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "-r", filepath.Join("astrogaia-python", "requirements.txt")}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "python3",
		[]string{filepath.Join("astrogaia-python", "astrogaia-python.py"), "-h"}).
		Return(runner.Result{Stdout: "usage\n"}, nil)

	installCmd, out := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{})

	require.NoError(t, installCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "[-] python check failed")
	assert.Contains(t, output, "[+] cloned into astrogaia-python")

	// The cache path falls back to the re-probed interpreter version.
	sentinel := filepath.Join(os.Getenv("HOME"), ".cache", ".pwntools-cache-3.9", "update")
	_, err := os.Stat(sentinel)
	require.NoError(t, err)
}

func TestInstall_CloneFailureAbortsPipeline(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", mock.Anything, "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "Python 3.11.4\n"}, nil)
	mockRunner.On("LookPath", "git").
		Return("/usr/bin/git", nil)
	mockRunner.On("Run", mock.Anything, "git",
		[]string{"clone", "https://github.com/ffcarrasco/astrogaia-python.git", "astrogaia-python"}).
		Return(runner.Result{Stderr: "fatal: could not resolve host\n"}, errRemoteUnreachable)

	installCmd, _ := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{})

	err := installCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clone failed")
	mockRunner.AssertNotCalled(t, "Run", mock.Anything, "virtualenv", mock.Anything)
}

func TestInstall_CustomFlagsReachTheRunner(t *testing.T) {
	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", mock.Anything, "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "Python 3.12.1\n"}, nil)
	mockRunner.On("LookPath", "git").
		Return("/usr/bin/git", nil)
	mockRunner.On("Run", mock.Anything, "git",
		[]string{"clone", "--branch", "dev", "https://example.com/fork.git", "checkout"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "virtualenv",
		[]string{"-p", "python3", "venv"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "--upgrade", "pip"}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "pip3",
		[]string{"install", "-r", filepath.Join("checkout", "requirements.txt")}).
		Return(runner.Result{}, nil)
	mockRunner.On("Run", mock.Anything, "python3",
		[]string{filepath.Join("checkout", "astrogaia-python.py"), "-h"}).
		Return(runner.Result{Stdout: "usage\n"}, nil)

	installCmd, out := newInstallCmd(t, mockRunner)
	installCmd.SetArgs([]string{
		"--repo", "https://example.com/fork.git",
		"--branch", "dev",
		"--clone-dir", "checkout",
		"--env-name", "venv",
	})

	require.NoError(t, installCmd.Execute())
	assert.Contains(t, out.String(), "[+] created venv via virtualenv")
	mockRunner.AssertExpectations(t)
}
