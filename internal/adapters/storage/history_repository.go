package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomodial/internal/domain"
)

// historyRepository stores completed-session entries in SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new history repository.
func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db}
}

// Append stores a new entry after all existing ones.
func (r *historyRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `INSERT INTO history (id, kind, completed_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Kind),
		entry.CompletedAt.UnixNano(),
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("history entry %s already exists", entry.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// List returns all entries in the order they were appended.
func (r *historyRepository) List(ctx context.Context) ([]*domain.HistoryEntry, error) {
	query := `SELECT id, kind, completed_at FROM history ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			entry       domain.HistoryEntry
			kind        string
			completedAt int64
		)
		if err := rows.Scan(&entry.ID, &kind, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.Kind = domain.SessionKind(kind)
		entry.CompletedAt = time.Unix(0, completedAt)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// Delete removes an entry by its identifier.
func (r *historyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrHistoryEntryNotFound
	}

	return nil
}
