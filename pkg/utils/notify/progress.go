package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	fcolor "github.com/fatih/color"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// spinner characters for animation.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the delay between spinner frame updates.
const spinnerInterval = 120 * time.Millisecond

// RunWithSpinner executes fn while animating a spinner on the activity line.
// When the writer is not a terminal the spinner is skipped and a plain
// activity message is written instead, keeping CI logs clean.
//
// The pipeline itself stays sequential: fn is the only unit of work, the
// second goroutine only animates the display.
func RunWithSpinner(
	ctx context.Context,
	writer io.Writer,
	label string,
	fn func(ctx context.Context) error,
) error {
	if !writerIsTerminal(writer) {
		Activityf(writer, "%s", label)

		return fn(ctx)
	}

	stopSpinner := make(chan struct{})
	spinnerDone := make(chan struct{})

	go animateSpinner(writer, label, stopSpinner, spinnerDone)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return fn(groupCtx)
	})

	err := group.Wait()

	close(stopSpinner)
	<-spinnerDone

	return err
}

// animateSpinner redraws the activity line with the next spinner frame until
// stopped, then clears the line so the final status message replaces it.
func animateSpinner(writer io.Writer, label string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	activityColor := fcolor.New(fcolor.FgCyan)
	frame := 0

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			// Clear the spinner line.
			_, _ = fmt.Fprintf(writer, "\r\033[K")

			return
		case <-ticker.C:
			_, _ = activityColor.Fprintf(
				writer,
				"\r[*] %s %s",
				label,
				spinnerFrames[frame%len(spinnerFrames)],
			)
			frame++
		}
	}
}

// writerIsTerminal reports whether the writer is backed by a terminal.
func writerIsTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
