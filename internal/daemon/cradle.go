package daemon

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pilot/internal/transport"
	"github.com/MKhiriev/go-pilot/models"
)

// Cradle is one watched transport, see transport.Transport.
type Cradle interface {
	Name() string
	Usable() bool
	Initialize(ctx context.Context) error
	Watch(ctx context.Context, out chan<- transport.Activity)
	Watching() bool
	Probe() (bool, error)
	Accept(ctx context.Context, timeout time.Duration) (transport.Channel, error)
	Release()
	Deinit()
	Finalize()
}

// CradleFactory builds the transport of a configured cradle.
type CradleFactory func(dev models.Device) Cradle

type cradle struct {
	Cradle
	dev models.Device
}

func (c *cradle) usb() bool {
	return c.dev.Kind == models.DeviceUSB
}
