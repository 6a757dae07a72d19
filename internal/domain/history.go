package domain

import (
	"fmt"
	"time"
)

// HistoryEntry records one naturally completed session. It is display-only.
type HistoryEntry struct {
	ID          string
	Kind        SessionKind
	CompletedAt time.Time
}

// NewHistoryEntry creates an entry for a session of the given kind that
// completed at t.
func NewHistoryEntry(kind SessionKind, t time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:          generateID(),
		Kind:        kind,
		CompletedAt: t,
	}
}

// Label returns the text shown in the history list.
func (e HistoryEntry) Label() string {
	return fmt.Sprintf("%s complete: %s", e.Kind.Label(), e.CompletedAt.Format("15:04:05"))
}
