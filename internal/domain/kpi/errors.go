package kpi

import "errors"

var (
	// ErrInvalidInput indicates a record failed validation before the write.
	ErrInvalidInput = errors.New("invalid record input")
	// ErrRecordNotFound indicates no record matches the identifier.
	ErrRecordNotFound = errors.New("record not found")
)
