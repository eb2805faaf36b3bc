// Package adapter is the client side of the daemon control API, used by
// gpilotctl.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/events"
)

// ControlAdapter reaches a running daemon over HTTP. It offers the same
// operations as the daemon itself.
type ControlAdapter interface {
	daemon.Control

	// Version returns the daemon version string.
	Version(ctx context.Context) (string, error)

	// Watch streams daemon events to fn until ctx is done, the connection
	// drops or fn returns an error.
	Watch(ctx context.Context, fn func(events.Event) error) error
}
