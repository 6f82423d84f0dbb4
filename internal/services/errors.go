package services

import "errors"

var (
	// ErrUnknownCategory indicates a filter value that is neither "all" nor an existing category.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNotPersisted reports a change that was applied in memory but could
	// not be written to durable storage.
	ErrNotPersisted = errors.New("change not persisted")
)
