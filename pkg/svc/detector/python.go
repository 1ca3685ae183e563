package detector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
)

// versionBannerPattern extracts the version from a "Python X.Y.Z" banner.
var versionBannerPattern = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)

// ErrVersionBannerUnrecognized is returned when the interpreter's --version
// output does not look like a Python version banner.
var ErrVersionBannerUnrecognized = errors.New("unrecognized python version banner")

// ToolDetector probes the host toolchain via a command runner.
type ToolDetector struct {
	runner runner.CommandRunner
}

// NewToolDetector creates a detector using the given runner.
func NewToolDetector(cmdRunner runner.CommandRunner) *ToolDetector {
	return &ToolDetector{
		runner: cmdRunner,
	}
}

// PythonVersion runs `<binary> --version` and parses the reported version.
func (d *ToolDetector) PythonVersion(ctx context.Context, binary string) (*semver.Version, error) {
	res, err := d.runner.Run(ctx, binary, "--version")
	if err != nil {
		return nil, fmt.Errorf("query %s version: %w", binary, err)
	}

	// Python 2 printed the banner to stderr; Python 3 prints it to stdout.
	banner := strings.TrimSpace(res.Stdout)
	if banner == "" {
		banner = strings.TrimSpace(res.Stderr)
	}

	match := versionBannerPattern.FindStringSubmatch(banner)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrVersionBannerUnrecognized, banner)
	}

	version, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, fmt.Errorf("parse python version %q: %w", match[1], err)
	}

	return version, nil
}

// CheckMinimum verifies that version is at least minVersion within the same
// major release, e.g. minVersion "3.10" accepts 3.10+ but rejects both 3.9
// and 4.0.
func CheckMinimum(version *semver.Version, minVersion string) error {
	constraint, err := semver.NewConstraint("^" + minVersion)
	if err != nil {
		return fmt.Errorf("parse minimum version %q: %w", minVersion, err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf(
			"python %s does not satisfy required version %s: %w",
			version.String(),
			minVersion,
			ErrVersionTooOld,
		)
	}

	return nil
}

// ErrVersionTooOld is returned when the interpreter does not meet the
// configured minimum version.
var ErrVersionTooOld = errors.New("unsupported python version")
