// Package svc provides the service layer of astrogaia-setup.
//
// This package contains the business logic that coordinates between the
// CLI commands and the external tools the installer drives.
//
// Subpackages:
//   - cache: pwntools update-check suppression via cache sentinels
//   - detector: Python interpreter and Git detection
//   - fetcher: git clone of the application repository
//   - installer: dependency installation into the virtual environment
//   - provisioner: virtual environment creation with fallback strategies
//   - smoke: post-install liveness check of the cloned program
package svc
