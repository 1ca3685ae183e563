package di

import (
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/runner"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers default implementations for the timer and the
// command runner.
func NewRuntime() *Runtime {
	return New(
		ProvideTimer,
		ProvideCommandRunner,
	)
}

// ProvideTimer registers the timer dependency with the injector.
func ProvideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// ProvideCommandRunner registers the default command runner dependency.
// Spawned process output is captured silently; stages decide what to surface.
func ProvideCommandRunner(i Injector) error {
	do.Provide(i, func(Injector) (runner.CommandRunner, error) {
		return runner.NewExecCommandRunner(nil, nil), nil
	})

	return nil
}

// ProvideCommandRunnerInstance registers a fixed command runner, letting tests
// inject a mock.
func ProvideCommandRunnerInstance(cmdRunner runner.CommandRunner) Provider {
	return func(i Injector) error {
		do.ProvideValue(i, cmdRunner)

		return nil
	}
}
