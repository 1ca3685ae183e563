// Package errorhandler runs Cobra commands while capturing their error
// stream, so failures reach the user once, through a single writer.
package errorhandler

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
)

// CommandError wraps a Cobra execution failure together with the stderr
// output the command produced while running.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Execute runs the command while intercepting Cobra's error stream. On
// failure it returns a *CommandError carrying the normalized stderr text
// and the original error.
func Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: normalize(errBuf.String()),
		cause:   err,
	}
}

// normalize trims whitespace and strips the "Error: " prefix Cobra prints
// before the message, keeping any usage hint lines that follow.
func normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
