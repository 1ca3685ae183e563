package detector

import "fmt"

// BinaryPath reports where the named binary resolves on the search path.
func (d *ToolDetector) BinaryPath(name string) (string, error) {
	path, err := d.runner.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s is not available on PATH: %w", name, err)
	}

	return path, nil
}
