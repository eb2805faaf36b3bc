package server

import "context"

type Server interface {
	// Run blocks until ctx is done or a component fails, then shuts
	// everything down.
	Run(ctx context.Context) error
}

// Daemon is the long running session controller served next to the HTTP
// server.
type Daemon interface {
	Run(ctx context.Context) error
}
