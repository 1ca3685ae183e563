// Package di wires shared dependencies for commands through a samber/do
// injector, so tests can swap implementations without touching command code.
package di

import (
	"fmt"

	"github.com/samber/do/v2"
)

// Injector is the dependency injector commands resolve services from.
type Injector = do.Injector

// Provider registers one dependency with the injector.
type Provider func(Injector) error

// Runtime is the shared dependency container used by the root command and tests.
type Runtime struct {
	injector Injector
}

// New constructs a Runtime from the given providers.
func New(providers ...Provider) *Runtime {
	injector := do.New()

	for _, provider := range providers {
		err := provider(injector)
		if err != nil {
			// Providers only register constructors; registration itself cannot
			// fail at runtime with the providers defined in this package.
			panic(fmt.Sprintf("di: register provider: %v", err))
		}
	}

	return &Runtime{injector: injector}
}

// Invoke runs fn with the runtime's injector.
func (r *Runtime) Invoke(fn func(Injector) error) error {
	return fn(r.injector)
}
