// Package envvar provides utilities for working with environment variables.
package envvar

import (
	"os"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-[^}]*)?\}`)

// Expand replaces ${VAR_NAME} placeholders with their environment variable
// values. A placeholder may carry a shell-style fallback, ${VAR_NAME:-default},
// used when the variable is unset or empty. Without a fallback an unset
// variable expands to the empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		inner := match[2 : len(match)-1]

		name, fallback, hasFallback := strings.Cut(inner, ":-")

		resolved := os.Getenv(name)
		if resolved == "" && hasFallback {
			return fallback
		}

		return resolved
	})
}
