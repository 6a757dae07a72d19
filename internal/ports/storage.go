// Package ports defines the interfaces (driven and driving ports)
// for the dial timer following hexagonal architecture principles.
// These interfaces define the contracts between the controller and
// the terminal, scheduling and storage infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/pomodial/internal/domain"
)

// HistoryRepository defines the interface for completed-session records.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// Append stores a new entry after all existing ones.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// List returns all entries, oldest first.
	List(ctx context.Context) ([]*domain.HistoryEntry, error)

	// Delete removes an entry by its identifier.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying store.
	Close() error
}
