package domain

import "errors"

// Domain errors.
var (
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)
