package tracking

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("tracking record not found")
	// ErrAlreadyExists is returned when a user tracks the same word meaning twice.
	ErrAlreadyExists = errors.New("word meaning already tracked")
	// ErrConflict is returned when a record changed between read and write.
	ErrConflict = errors.New("tracking record was modified concurrently")
	// ErrInvalidArgument is returned for malformed filters, sort keys, or limits.
	ErrInvalidArgument = errors.New("invalid argument")
)
