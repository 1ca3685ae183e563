// Package timer provides wall-clock timing for CLI stages.
package timer

import "time"

// Timer tracks the total elapsed time of a command and the elapsed time of the
// current stage. Stages are advanced with NewStage; GetTiming reports both
// durations for display in success notifications.
type Timer interface {
	// Start begins timing. Calling Start again resets the timer.
	Start()

	// NewStage marks the beginning of a new stage.
	NewStage()

	// GetTiming returns the total elapsed time and the current stage's elapsed time.
	GetTiming() (time.Duration, time.Duration)
}

// New creates a Timer backed by the system clock.
func New() Timer {
	return &clockTimer{}
}

type clockTimer struct {
	start      time.Time
	stageStart time.Time
}

func (t *clockTimer) Start() {
	now := time.Now()
	t.start = now
	t.stageStart = now
}

func (t *clockTimer) NewStage() {
	if t.start.IsZero() {
		t.Start()

		return
	}

	t.stageStart = time.Now()
}

func (t *clockTimer) GetTiming() (time.Duration, time.Duration) {
	if t.start.IsZero() {
		return 0, 0
	}

	now := time.Now()

	return now.Sub(t.start).Round(time.Millisecond), now.Sub(t.stageStart).Round(time.Millisecond)
}
