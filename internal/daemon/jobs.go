package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pilot/internal/transport"
	"github.com/MKhiriev/go-pilot/internal/workers"
)

const (
	jobUSBRescan   = "usb-rescan"
	jobExpirySweep = "request-expiry"
)

func (d *Daemon) schedule(ctx context.Context) error {
	rescan := workers.WorkerFunc(func() {
		// a tick lost while the reactor is busy is covered by the next one
		d.post(transport.Activity{Kind: transport.ActivityRescan})
	})
	if err := d.workers.Every(jobUSBRescan, d.cfg.USBRescanInterval, rescan); err != nil {
		return err
	}

	sweep := workers.WorkerFunc(func() { d.sweep(ctx, time.Now()) })
	return d.workers.Every(jobExpirySweep, d.cfg.ExpirySweepInterval, sweep)
}

// sweep purges the requests whose timeout elapsed at now.
func (d *Daemon) sweep(parent context.Context, now time.Time) {
	ctx, cancel := context.WithTimeout(parent, sweepTimeout)
	defer cancel()

	expired, err := d.queue.Expire(ctx, now)
	if err != nil {
		d.logger.Err(err).Str("func", "Daemon.sweep").Msg("failed to expire requests")
		return
	}
	for _, req := range expired {
		d.logger.Info().
			Str("func", "Daemon.sweep").
			Int64("handle", req.Handle).
			Str("bucket", req.Bucket.String()).
			Msg("request expired")
		// the system bucket reports pilot 0
		d.emit.DaemonMessage(ctx, req.Bucket.PilotID, fmt.Sprintf("request %d expired", req.Handle))
	}
}
