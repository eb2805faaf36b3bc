package orchestrator

import "errors"

var (
	// ErrHandshake is returned when the session-wide exchange handshake
	// fails. Nothing else is attempted in that session.
	ErrHandshake = errors.New("exchange handshake failed")
	// ErrDBList is returned when the database list can not be read.
	ErrDBList = errors.New("read database list")
	// ErrNoCapableConduit is reported when a queued request needs a conduit
	// capability no loaded conduit has.
	ErrNoCapableConduit = errors.New("no conduit can serve the request")
)
