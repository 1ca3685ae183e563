package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter wraps an io.Writer and automatically adds blank lines
// between installer stages. It detects title lines (lines starting with an
// emoji) and inserts a leading newline before them once previous output exists.
//
// Usage:
//
//	writer := notify.NewStageSeparatingWriter(cmd.OutOrStdout())
//	cmd.SetOut(writer)
type StageSeparatingWriter struct {
	underlying io.Writer
	hasWritten bool
	mu         sync.Mutex
}

// NewStageSeparatingWriter creates a new StageSeparatingWriter wrapping the given writer.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{
		underlying: underlying,
	}
}

// Write implements io.Writer. A leading newline is added when there has been
// previous output and the current line starts with an emoji (title line).
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && startsWithTitleEmoji(data) {
		_, writeErr := w.underlying.Write([]byte{'\n'})
		if writeErr != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", writeErr)
		}
	}

	bytesWritten, err := w.underlying.Write(data)
	if bytesWritten > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return bytesWritten, fmt.Errorf("failed to write data: %w", err)
	}

	return bytesWritten, nil
}

// Reset clears the hasWritten state so the next title gets no leading newline.
func (w *StageSeparatingWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.hasWritten = false
}

// HasWritten returns whether any content has been written.
func (w *StageSeparatingWriter) HasWritten() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.hasWritten
}

// startsWithTitleEmoji checks if the data starts with a title emoji character.
// Title emojis are pictographic symbols (like 🐍, 📥, 📦) used for stage titles,
// NOT the bracket markers ("[+]", "[-]", "[!]", "[*]") used for message lines.
func startsWithTitleEmoji(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	firstRune, _ := utf8.DecodeRune(data)
	if firstRune == utf8.RuneError {
		return false
	}

	// The timing glyph introduces a detail line, not a stage title.
	if firstRune == '⏲' {
		return false
	}

	// Title emojis are in the "Other Symbol" (So) Unicode category.
	return unicode.Is(unicode.So, firstRune)
}
