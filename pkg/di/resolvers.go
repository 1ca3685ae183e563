package di

import (
	"fmt"

	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with
// consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveCommandRunner retrieves the command runner dependency from the
// injector with consistent error handling.
func ResolveCommandRunner(injector Injector) (runner.CommandRunner, error) {
	cmdRunner, err := do.Invoke[runner.CommandRunner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve command runner dependency: %w", err)
	}

	return cmdRunner, nil
}
