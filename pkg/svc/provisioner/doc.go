// Package provisioner provides environment provisioning services.
//
// Subpackages:
//   - venv: Python virtual environment creation with a fallback chain of
//     strategies (virtualenv, the venv module, installing virtualenv)
package provisioner
