package daemon

import "errors"

var (
	// ErrStopped is returned by Do once the reactor has exited.
	ErrStopped = errors.New("daemon is stopped")

	// ErrUnknownDevice is reported when a handheld has no profile.
	ErrUnknownDevice = errors.New("unknown device")
)
