// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the astrogaia-setup codebase:
//
//   - envvar: ${VAR} expansion with default values
//   - notify: formatted message display with symbols, colors, and timing
//   - runner: external command execution with output capture
//   - timer: execution time tracking for single and multi-stage operations
package utils
