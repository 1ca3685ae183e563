package venv

import (
	"os"
	"path/filepath"
)

// BinaryPath resolves the path of a tool inside the environment's bin
// directory. When the environment does not hold the tool (creation failed, or
// the environment was never created) the fallback is returned so the
// system-wide binary is used instead, mirroring how the pipeline proceeds with
// whatever environment state exists.
func BinaryPath(envDir, name, fallback string) string {
	path := filepath.Join(envDir, "bin", name)

	_, err := os.Stat(path)
	if err != nil {
		return fallback
	}

	return path
}
