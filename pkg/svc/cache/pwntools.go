// Package cache suppresses the pwntools background update check by writing a
// sentinel into its version-derived cache directory.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// sentinel tells pwntools to never check for updates.
const sentinel = "never\n"

// PwntoolsUpdateFile returns the path of the update-check file for the given
// interpreter version: ~/.cache/.pwntools-cache-<major>.<minor>/update. The
// cache directory is derived from the interpreter version because pwntools
// keys its cache on the interpreter it runs under.
func PwntoolsUpdateFile(version *semver.Version) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}

	cacheDir := fmt.Sprintf(".pwntools-cache-%d.%d", version.Major(), version.Minor())

	return filepath.Join(home, ".cache", cacheDir, "update"), nil
}

// SuppressPwntoolsUpdateCheck writes the "never" sentinel into the pwntools
// cache for the given interpreter version, creating the cache directory if
// needed. The file is overwritten if it already exists.
func SuppressPwntoolsUpdateCheck(version *semver.Version) (string, error) {
	path, err := PwntoolsUpdateFile(version)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return "", fmt.Errorf("create pwntools cache directory: %w", err)
	}

	err = os.WriteFile(path, []byte(sentinel), 0o644)
	if err != nil {
		return "", fmt.Errorf("write pwntools update sentinel: %w", err)
	}

	return path, nil
}
