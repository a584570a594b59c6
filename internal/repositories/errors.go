package repositories

import "errors"

// Sentinel errors shared by all repository implementations so that callers
// can branch on the error kind instead of matching message strings.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint, e.g. two concurrent follows racing on the same pair.
	ErrDuplicate = errors.New("record already exists")
)
