// Package storage provides the SQLite implementation of the history port.
// The database lives in memory, so history lasts exactly as long as the
// process that recorded it.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/pomodial/internal/ports"
	"modernc.org/sqlite"
)

// memoryDSN keeps a private in-memory database per connection; the pool is
// capped at one connection so every query sees the same database.
const memoryDSN = ":memory:"

// sqliteStorage implements ports.HistoryRepository using SQLite.
type sqliteStorage struct {
	*historyRepository
	db *sql.DB
}

// Ensure sqliteStorage implements ports.HistoryRepository.
var _ ports.HistoryRepository = (*sqliteStorage)(nil)

// NewMemory creates an in-memory history store.
func NewMemory() (ports.HistoryRepository, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	storage := &sqliteStorage{
		historyRepository: newHistoryRepository(db),
		db:                db,
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// Close closes the database connection and discards the history.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		completed_at INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// SQLITE_CONSTRAINT_UNIQUE, or the primary code when extended codes are off
	code := sqliteErr.Code()
	return code == 2067 || code == 19
}
