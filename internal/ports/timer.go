package ports

import (
	"time"

	"github.com/xvierd/pomodial/internal/domain"
)

// View is the display the controller drives.
// This is a driven port (implemented by the TUI adapter).
type View interface {
	// Render redraws the dial for the given snapshot.
	Render(snap domain.Snapshot)

	// ShowDuration refreshes the editable minute and second fields.
	ShowDuration(minutes, seconds int)

	// ShowSessionKind refreshes the session-kind label.
	ShowSessionKind(kind domain.SessionKind)

	// SetShake turns the completion shake cue on or off.
	SetShake(on bool)

	// ToggleFlip plays the card-flip cue.
	ToggleFlip()

	// ToggleMirror toggles the mirrored orientation of the dial.
	ToggleMirror()

	// ShowHistory replaces the displayed history list.
	ShowHistory(entries []*domain.HistoryEntry)
}

// Handle identifies a scheduled callback.
type Handle interface {
	// Cancel stops the callback from running again. It is idempotent.
	Cancel()
}

// Scheduler runs callbacks later on the same logical flow as user input.
// This is a driven port.
type Scheduler interface {
	// Every runs fn repeatedly, once per interval, until cancelled.
	Every(interval time.Duration, fn func()) Handle

	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Handle
}

// Clock is the time-of-day source for history timestamps.
type Clock interface {
	Now() time.Time
}

// Alerter shows a blocking notice and calls ack once the user dismisses it.
type Alerter interface {
	Alert(message string, ack func())
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
