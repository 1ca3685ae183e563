// Package apis provides versioned configuration types for astrogaia-setup.
//
// The types are designed to be serializable to YAML and merge cleanly from
// config files, environment variables, and command-line flags:
//
//   - setup: installer configuration for one bootstrap run
package apis
