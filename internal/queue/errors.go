package queue

import "errors"

var (
	// ErrNotFound is returned when a handle is not (or no longer) queued.
	ErrNotFound = errors.New("request not found")
	// ErrMissingFile is returned when an install request names a file that
	// does not exist.
	ErrMissingFile = errors.New("missing file")
	// ErrInvalidRequest is returned for a request whose bucket does not
	// match its type.
	ErrInvalidRequest = errors.New("invalid request")
)
