package shortener

import "errors"

var (
	// ErrNotFound is returned when a code has no link.
	ErrNotFound = errors.New("short url not found")
	// ErrAliasTaken is returned when a requested custom code already exists.
	ErrAliasTaken = errors.New("custom code already in use")
	// ErrAllocationExhausted is returned when every generated candidate collided.
	ErrAllocationExhausted = errors.New("could not allocate a unique code")
	// ErrStorageUnavailable wraps failures of the underlying storage medium.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
