package transport

import "errors"

var (
	// ErrUnusable marks a transport whose device could not be opened or
	// bound. Other transports keep working.
	ErrUnusable = errors.New("transport is unusable")
	// ErrBusy is returned by Accept while a live channel exists.
	ErrBusy = errors.New("transport already has a live channel")
	// ErrAcceptTimeout is returned when no connection arrived in time.
	ErrAcceptTimeout = errors.New("accept timed out")
	// ErrNotOpen is returned by Accept before the device was opened.
	ErrNotOpen = errors.New("transport is not open")
	// ErrLocked is returned when another process holds the device lock.
	ErrLocked = errors.New("device is locked by another process")
	// ErrUnsupported is returned for a transport kind this platform lacks.
	ErrUnsupported = errors.New("transport kind not supported on this platform")
)
