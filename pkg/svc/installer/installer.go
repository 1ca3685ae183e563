// Package installer defines the contract for components that install
// dependencies into the provisioned environment.
package installer

import "context"

// Installer defines methods for installing and uninstalling components.
type Installer interface {
	// Install installs the component.
	Install(ctx context.Context) error

	// Uninstall removes the component.
	Uninstall(ctx context.Context) error
}
