// Package detector probes the host toolchain the installer depends on: the
// Python interpreter's version and the presence of required binaries on the
// search path.
package detector
