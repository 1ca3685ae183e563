// Package instructions builds and renders the post-install usage guide.
package instructions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

const (
	fallbackWrapWidth = 80
	maxWrapWidth      = 100
)

// Build returns the usage guide as markdown. The guide addresses the
// virtual environment and the cloned checkout by the names they were
// created under.
func Build(envName, repoDir, entrypoint string) string {
	activate := filepath.Join(envName, "bin", "activate")
	script := filepath.Join(repoDir, entrypoint)

	var builder strings.Builder

	builder.WriteString("## Next steps\n\n")
	builder.WriteString("Activate the virtual environment and run the tool:\n\n")
	builder.WriteString("```sh\n")
	fmt.Fprintf(&builder, "source %s\n", activate)
	fmt.Fprintf(&builder, "cd %s\n", repoDir)
	fmt.Fprintf(&builder, "python %s -h\n", entrypoint)
	builder.WriteString("```\n\n")
	fmt.Fprintf(
		&builder,
		"Outside the environment the script is still reachable as `python %s`.\n\n",
		script,
	)
	builder.WriteString("When you are done, leave the environment with `deactivate`.\n")

	return builder.String()
}

// Render writes the markdown guide to the writer. On a terminal it is
// rendered with glamour, otherwise the raw markdown is word-wrapped.
func Render(writer io.Writer, markdown string) error {
	if !isTerminal(writer) {
		_, err := fmt.Fprint(writer, wordwrap.WrapString(markdown, fallbackWrapWidth))
		if err != nil {
			return fmt.Errorf("failed to write instructions: %w", err)
		}

		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWidth(writer)),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render instructions: %w", err)
	}

	_, err = fmt.Fprint(writer, rendered)
	if err != nil {
		return fmt.Errorf("failed to write instructions: %w", err)
	}

	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

func renderWidth(writer io.Writer) int {
	file, ok := writer.(*os.File)
	if !ok {
		return fallbackWrapWidth
	}

	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallbackWrapWidth
	}

	if width > maxWrapWidth {
		return maxWrapWidth
	}

	return width
}
