package domain

import "errors"

var (
	// ErrValidation marks a missing or malformed request field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrNoData marks an aggregation requested over an empty window.
	ErrNoData = errors.New("no readings available")
	// ErrInvalidCredentials marks a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
