package detector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ffcarrasco/astrogaia-setup/pkg/svc/detector"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBinaryMissing = errors.New("executable file not found in $PATH")

func TestPythonVersion_ParsesStdoutBanner(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "Python 3.11.2\n"}, nil)

	toolDetector := detector.NewToolDetector(mockRunner)

	version, err := toolDetector.PythonVersion(context.Background(), "python3")
	require.NoError(t, err)

	assert.Equal(t, uint64(3), version.Major())
	assert.Equal(t, uint64(11), version.Minor())
	assert.Equal(t, uint64(2), version.Patch())
}

func TestPythonVersion_ParsesStderrBanner(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "python", []string{"--version"}).
		Return(runner.Result{Stderr: "Python 2.7.18\n"}, nil)

	toolDetector := detector.NewToolDetector(mockRunner)

	version, err := toolDetector.PythonVersion(context.Background(), "python")
	require.NoError(t, err)

	assert.Equal(t, uint64(2), version.Major())
}

func TestPythonVersion_UnrecognizedBanner(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "python3", []string{"--version"}).
		Return(runner.Result{Stdout: "pypy sandbox build\n"}, nil)

	toolDetector := detector.NewToolDetector(mockRunner)

	_, err := toolDetector.PythonVersion(context.Background(), "python3")
	require.ErrorIs(t, err, detector.ErrVersionBannerUnrecognized)
}

func TestPythonVersion_RunnerError(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("Run", context.Background(), "python3", []string{"--version"}).
		Return(runner.Result{}, errBinaryMissing)

	toolDetector := detector.NewToolDetector(mockRunner)

	_, err := toolDetector.PythonVersion(context.Background(), "python3")
	require.ErrorIs(t, err, errBinaryMissing)
}

func TestCheckMinimum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		banner  string
		wantErr bool
	}{
		{name: "minor above minimum", banner: "Python 3.11.2", wantErr: false},
		{name: "exact minimum", banner: "Python 3.10.0", wantErr: false},
		{name: "minor below minimum", banner: "Python 3.9.18", wantErr: true},
		{name: "different major", banner: "Python 4.0.0", wantErr: true},
		{name: "python 2", banner: "Python 2.7.18", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRunner := runner.NewMockCommandRunner()
			mockRunner.On("Run", context.Background(), "python3", []string{"--version"}).
				Return(runner.Result{Stdout: tt.banner}, nil)

			toolDetector := detector.NewToolDetector(mockRunner)

			version, err := toolDetector.PythonVersion(context.Background(), "python3")
			require.NoError(t, err)

			err = detector.CheckMinimum(version, "3.10")
			if tt.wantErr {
				require.ErrorIs(t, err, detector.ErrVersionTooOld)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBinaryPath(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("LookPath", "git").Return("/usr/bin/git", nil)

	toolDetector := detector.NewToolDetector(mockRunner)

	path, err := toolDetector.BinaryPath("git")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/git", path)
}

func TestBinaryPath_Missing(t *testing.T) {
	t.Parallel()

	mockRunner := runner.NewMockCommandRunner()
	mockRunner.On("LookPath", "git").Return("", errBinaryMissing)

	toolDetector := detector.NewToolDetector(mockRunner)

	_, err := toolDetector.BinaryPath("git")
	require.ErrorIs(t, err, errBinaryMissing)
	assert.Contains(t, err.Error(), "not available on PATH")
}
