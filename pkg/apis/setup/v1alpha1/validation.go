package v1alpha1

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Validation errors.
var (
	// ErrRepoURLEmpty is returned when no repository URL is configured.
	ErrRepoURLEmpty = errors.New("repo URL must not be empty")

	// ErrEnvNameEmpty is returned when no environment name is configured.
	ErrEnvNameEmpty = errors.New("env name must not be empty")

	// ErrPythonBinaryEmpty is returned when no interpreter binary is configured.
	ErrPythonBinaryEmpty = errors.New("python binary must not be empty")
)

// Validate checks the Setup for values the pipeline cannot work with.
func (s *Setup) Validate() error {
	if s.Repo.URL == "" {
		return ErrRepoURLEmpty
	}

	if s.Env.Name == "" {
		return ErrEnvNameEmpty
	}

	if s.Python.Binary == "" {
		return ErrPythonBinaryEmpty
	}

	if s.Python.MinVersion != "" {
		_, err := semver.NewVersion(s.Python.MinVersion)
		if err != nil {
			return fmt.Errorf("parse python minVersion %q: %w", s.Python.MinVersion, err)
		}
	}

	return nil
}
