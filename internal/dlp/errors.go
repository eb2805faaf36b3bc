package dlp

import "errors"

var (
	// ErrNotFound is returned for a missing record, database or the end of
	// an iteration. It is never an I/O failure.
	ErrNotFound = errors.New("dlp: not found")
	ErrExists   = errors.New("dlp: already exists")
	ErrReadOnly = errors.New("dlp: database is read-only")
	ErrClosed   = errors.New("dlp: session is closed")
	// ErrIO wraps a genuine communication failure.
	ErrIO = errors.New("dlp: i/o failure")
)
