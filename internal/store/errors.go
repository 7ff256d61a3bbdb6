package store

import "errors"

var (
	// ErrNotFound is returned when no record matches the identifier
	ErrNotFound = errors.New("not found")

	// ErrProjectMismatch is returned when the identifier exists but belongs
	// to a different project
	ErrProjectMismatch = errors.New("record does not belong to project")

	// ErrInvalidInput is returned when input validation fails at the store
	ErrInvalidInput = errors.New("invalid input")
)
