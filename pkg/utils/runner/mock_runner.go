package runner

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of the CommandRunner interface for testing.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a new MockCommandRunner instance.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{}
}

// Run mocks running an external command.
func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	callArgs := m.Called(ctx, name, args)

	result, ok := callArgs.Get(0).(Result)
	if !ok {
		return Result{}, callArgs.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, callArgs.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// LookPath mocks locating a binary on the search path.
func (m *MockCommandRunner) LookPath(name string) (string, error) {
	callArgs := m.Called(name)

	return callArgs.String(0), callArgs.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
