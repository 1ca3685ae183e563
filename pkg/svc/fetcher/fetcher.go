// Package fetcher fetches the astrogaia source tree from its git remote.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
)

// ErrCloneTargetExists is returned when the clone destination already exists.
var ErrCloneTargetExists = errors.New("clone target already exists")

// GitFetcher clones repositories by invoking the git binary, matching what the
// rest of the host tooling expects (credentials helpers, proxies, etc.).
type GitFetcher struct {
	runner runner.CommandRunner
}

// NewGitFetcher creates a GitFetcher using the given runner.
func NewGitFetcher(cmdRunner runner.CommandRunner) *GitFetcher {
	return &GitFetcher{
		runner: cmdRunner,
	}
}

// Clone fetches url into dir. A non-empty branch is checked out on clone.
// Clone failure is the pipeline's only hard stop, so the error carries git's
// own output for diagnosis.
func (f *GitFetcher) Clone(ctx context.Context, url, branch, dir string) error {
	if dir != "" {
		_, statErr := os.Stat(dir)
		if statErr == nil {
			return fmt.Errorf("%w: %s", ErrCloneTargetExists, dir)
		}
	}

	args := []string{"clone"}

	if branch != "" {
		args = append(args, "--branch", branch)
	}

	args = append(args, url)

	if dir != "" {
		args = append(args, dir)
	}

	res, err := f.runner.Run(ctx, "git", args...)
	if err != nil {
		return fmt.Errorf("clone %s: %w, output: %s", url, err, res.Stderr)
	}

	return nil
}
