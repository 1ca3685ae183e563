// Package setup coordinates the install pipeline stages and their output.
package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/notify"
	"github.com/ffcarrasco/astrogaia-setup/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// TimingFlagName is the persistent flag that enables per-stage timing output.
const TimingFlagName = "timing"

// Stage describes one step of the install pipeline.
type Stage struct {
	// Emoji and Title head the stage's output block.
	Emoji string
	Title string

	// Activity, when set, is shown while the action runs.
	Activity string

	// Success, when set, is printed after the action completes. Stages
	// whose success line carries runtime values print it themselves and
	// leave Success empty.
	Success string

	// FailurePrefix introduces the error message when the action fails.
	FailurePrefix string

	// Fatal aborts the pipeline on failure. Non-fatal stages report the
	// failure and let the pipeline continue.
	Fatal bool
}

// Run executes a single stage. Non-fatal failures are reported to the
// writer and swallowed; fatal failures are returned wrapped with the
// stage's failure prefix.
func Run(
	ctx context.Context,
	writer io.Writer,
	tmr timer.Timer,
	stage Stage,
	action func(ctx context.Context) error,
) error {
	if tmr != nil {
		tmr.NewStage()
	}

	notify.Titlef(writer, stage.Emoji, "%s", stage.Title)

	var err error
	if stage.Activity != "" {
		err = notify.RunWithSpinner(ctx, writer, stage.Activity, action)
	} else {
		err = action(ctx)
	}

	if err != nil {
		if stage.Fatal {
			return fmt.Errorf("%s: %w", stage.FailurePrefix, err)
		}

		notify.Errorf(writer, "%s: %v", stage.FailurePrefix, err)

		return nil
	}

	if stage.Success != "" {
		notify.SuccessWithTimerf(writer, tmr, "%s", stage.Success)
	}

	return nil
}

// MaybeTimer returns tmr when the timing flag is set on the command, and
// nil otherwise. A nil timer suppresses the timing block after success
// messages.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	flag := cmd.Flags().Lookup(TimingFlagName)
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup(TimingFlagName)
	}

	if flag != nil && flag.Value.String() == "true" {
		return tmr
	}

	return nil
}
