package daemon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/metrics"
	"github.com/MKhiriev/go-pilot/internal/orchestrator"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/service"
	"github.com/MKhiriev/go-pilot/internal/transport"
	"github.com/MKhiriev/go-pilot/models"
)

// serve accepts the knocking handheld on c and runs one session. The
// channel is released afterwards and the watcher rearmed.
func (d *Daemon) serve(ctx context.Context, c *cradle) {
	d.state.Store(int32(StateSessionActive))
	defer d.refreshState()

	log := d.logger.With().Str("func", "Daemon.serve").Str("device", c.Name()).Logger()

	timeout := c.dev.Timeout
	if timeout <= 0 {
		timeout = d.cfg.AcceptTimeout
	}
	ch, err := c.Accept(ctx, timeout)
	if err != nil {
		if errors.Is(err, transport.ErrAcceptTimeout) {
			log.Debug().Err(err).Msg("no handheld connected")
		} else {
			log.Warn().Err(err).Msg("accept failed")
		}
		c.Release()
		return
	}
	defer c.Release()

	conn, err := d.dialer.Open(ctx, ch)
	if err != nil {
		log.Warn().Err(err).Msg("failed to open protocol session")
		d.emit.DaemonError(ctx, 0, fmt.Sprintf("failed to open session on %s: %v", c.Name(), err))
		d.metrics.IncSession(metrics.OutcomeFailed)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msg("failed to close session")
		}
	}()

	outcome := d.session(ctx, c.Name(), conn, log)
	d.metrics.IncSession(outcome)
}

// session drives an open protocol session: identity, cradle requests,
// profile resolution and the conduit pass.
func (d *Daemon) session(ctx context.Context, cradle string, conn dlp.Session, log zerolog.Logger) metrics.Outcome {
	user, err := conn.ReadUserInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read user info")
		d.emit.DaemonError(ctx, 0, "failed to read user info: "+err.Error())
		d.end(ctx, conn, dlp.EndOther, log)
		return metrics.OutcomeFailed
	}
	sys, err := conn.ReadSysInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read system info")
		d.emit.DaemonError(ctx, user.UserID, "failed to read system info: "+err.Error())
		d.end(ctx, conn, dlp.EndOther, log)
		return metrics.OutcomeFailed
	}

	user, proceed := d.drainCradle(ctx, cradle, conn, user, sys)
	if !proceed {
		log.Info().Msg("session ended after cradle requests")
		d.end(ctx, conn, dlp.EndNormal, log)
		return metrics.OutcomeSkipped
	}

	pilot, ok := d.identify(ctx, cradle, user, sys)
	if !ok {
		d.end(ctx, conn, dlp.EndOther, log)
		return metrics.OutcomeSkipped
	}

	log = log.With().Uint32("pilot_id", pilot.ID).Logger()
	log.Info().Str("pilot", pilot.Name).Msg("handheld connected")
	d.emit.Connected(ctx, cradle, pilot.ID, user)

	res, runErr := d.sessions.Run(ctx, orchestrator.Session{
		Conn:   conn,
		Cradle: cradle,
		Pilot:  pilot,
		User:   user,
	})

	d.stamp(ctx, conn, pilot, user, runErr == nil, log)

	status := dlp.EndNormal
	outcome := metrics.OutcomeSuccess
	switch {
	case ctx.Err() != nil:
		status, outcome = dlp.EndUserCancelled, metrics.OutcomeFailed
	case runErr != nil:
		status, outcome = dlp.EndOther, metrics.OutcomeFailed
		log.Warn().Err(runErr).Msg("conduit pass failed")
	case res != nil && res.Failed > 0:
		outcome = metrics.OutcomeFailed
	}
	d.end(ctx, conn, status, log)

	d.emit.Disconnected(ctx, cradle, pilot.ID)
	if res != nil {
		log.Info().
			Int("databases", res.Databases).
			Int("synced", res.Synced).
			Int("backups", res.Backups).
			Int("installed", res.Installed).
			Int("failed", res.Failed).
			Msg("handheld disconnected")
	}
	return outcome
}

// drainCradle serves every request queued for cradle. It returns the
// possibly rewritten identity and whether the session goes on to sync,
// which requires every drained request to ask for it.
func (d *Daemon) drainCradle(ctx context.Context, cradle string, conn dlp.Session, user models.UserInfo, sys models.SysInfo) (models.UserInfo, bool) {
	reqs, err := d.queue.LoadCradle(ctx, cradle)
	if err != nil {
		d.logger.Err(err).Str("func", "Daemon.drainCradle").Str("device", cradle).Msg("failed to load cradle requests")
		return user, true
	}

	proceed := true
	for _, req := range reqs {
		switch req.Type {
		case models.RequestGetUserInfo:
			d.emit.UserInfoRequested(ctx, cradle, req.Handle, user)

		case models.RequestGetSysInfo:
			d.emit.SysInfoRequested(ctx, cradle, req.Handle, sys)

		case models.RequestSetUserInfo:
			updated, err := d.setUserInfo(ctx, conn, user, req.Params.UserInfo)
			if err != nil {
				d.emit.DaemonError(ctx, user.UserID, fmt.Sprintf("failed to write user info: %v", err))
			} else {
				user = updated
				d.emit.DaemonMessage(ctx, user.UserID, fmt.Sprintf("user info set to %q (id %d)", user.Username, user.UserID))
			}
		}

		proceed = proceed && req.Params.ContinueSync
		d.complete(ctx, req)
	}
	return user, proceed
}

// setUserInfo writes the requested identity fields and re-reads the
// identity from the handheld.
func (d *Daemon) setUserInfo(ctx context.Context, conn dlp.Session, user models.UserInfo, set *models.UserInfo) (models.UserInfo, error) {
	if set == nil {
		return user, errors.New("no user info given")
	}
	user.UserID = set.UserID
	user.Username = set.Username
	if set.ViewerID != 0 {
		user.ViewerID = set.ViewerID
	}
	if set.Password != nil {
		user.Password = set.Password
	}
	if err := conn.WriteUserInfo(ctx, user); err != nil {
		return user, err
	}
	return conn.ReadUserInfo(ctx)
}

// complete purges a served cradle request. A request cancelled meanwhile
// is not reported.
func (d *Daemon) complete(ctx context.Context, req models.Request) {
	err := d.queue.Purge(ctx, req.Handle)
	if errors.Is(err, queue.ErrNotFound) {
		return
	}
	if err != nil {
		d.logger.Err(err).Str("func", "Daemon.complete").Int64("handle", req.Handle).Msg("failed to purge request")
		return
	}
	d.emit.RequestCompleted(ctx, req.Bucket, req.Handle)
}

// identify resolves the profile of the connected handheld. A handheld
// with user id zero was hard reset: the matching profiles are offered to
// the UI, which restores the identity with a SetUserInfo request.
func (d *Daemon) identify(ctx context.Context, cradle string, user models.UserInfo, sys models.SysInfo) (models.Pilot, bool) {
	log := d.logger.With().Str("func", "Daemon.identify").Str("device", cradle).Uint32("user_id", user.UserID).Logger()

	if user.UserID == 0 {
		candidates, err := d.pilots.Candidates(ctx, sys.Fingerprint())
		if err != nil {
			log.Err(err).Msg("failed to look up profiles by fingerprint")
		}

		d.emit.UserInfoRequested(ctx, cradle, 0, user)
		if len(candidates) == 0 {
			d.emit.DaemonError(ctx, 0, fmt.Sprintf("%v: handheld on %s has no user id", ErrUnknownDevice, cradle))
			return models.Pilot{}, false
		}

		names := make([]string, len(candidates))
		for i, p := range candidates {
			names[i] = fmt.Sprintf("%s (id %d)", p.Name, p.ID)
		}
		d.emit.DaemonMessage(ctx, 0, "handheld on "+cradle+" was reset; it matches "+strings.Join(names, ", "))
		log.Info().Int("candidates", len(candidates)).Msg("hard-reset handheld needs its identity restored")
		return models.Pilot{}, false
	}

	pilot, err := d.pilots.Resolve(ctx, user.UserID)
	if errors.Is(err, service.ErrUnknownPilot) {
		log.Info().Str("username", user.Username).Msg("unknown device")
		d.emit.DaemonError(ctx, user.UserID, fmt.Sprintf("%v: user id %d (%s)", ErrUnknownDevice, user.UserID, user.Username))
		return models.Pilot{}, false
	}
	if err != nil {
		log.Err(err).Msg("failed to resolve profile")
		d.emit.DaemonError(ctx, user.UserID, "failed to resolve profile: "+err.Error())
		return models.Pilot{}, false
	}
	return pilot, true
}

// stamp records this desktop as the last one to sync the handheld, on the
// handheld and in the profile.
func (d *Daemon) stamp(ctx context.Context, conn dlp.Session, pilot models.Pilot, user models.UserInfo, success bool, log zerolog.Logger) {
	now := time.Now().UTC()
	user.LastSyncPCID = d.pcID
	user.LastSyncAt = now
	if success {
		user.SuccessfulAt = now
	}
	if err := conn.WriteUserInfo(ctx, user); err != nil {
		log.Warn().Err(err).Msg("failed to write sync stamp to handheld")
	}
	if err := d.pilots.RecordSync(ctx, pilot.ID, models.SyncStamp{PCID: d.pcID, At: now}); err != nil {
		log.Warn().Err(err).Msg("failed to record sync stamp")
	}
}

func (d *Daemon) end(ctx context.Context, conn dlp.Session, status dlp.EndStatus, log zerolog.Logger) {
	if err := conn.EndOfSync(ctx, status); err != nil {
		log.Debug().Err(err).Msg("failed to end sync")
	}
}
