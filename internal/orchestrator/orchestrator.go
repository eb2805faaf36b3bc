// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package orchestrator runs the sync pass of one connected handheld: queued
// restore and conduit requests, the regular pass over every database,
// backups, installs and the closing sync log entry.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/events"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/metrics"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/internal/syncengine"
	"github.com/MKhiriev/go-pilot/models"
)

// Session is the connected handheld the orchestrator works on.
type Session struct {
	Conn   dlp.Session
	Cradle string
	Pilot  models.Pilot
	User   models.UserInfo
}

// Result summarizes one pass.
type Result struct {
	Databases int
	Synced    int
	Backups   int
	Installed int
	Restored  bool
	Failed    int
	Reports   []*syncengine.Report
}

// Orchestrator drives conduits over a connected handheld.
type Orchestrator struct {
	loader  *conduit.Loader
	engine  *syncengine.Engine
	queue   *queue.Queue
	cache   store.DatabaseCacheRepository
	emit    *events.Emitter
	metrics metrics.Recorder
	logger  *logger.Logger
}

// New returns an orchestrator. A nil recorder disables metrics.
func New(
	loader *conduit.Loader,
	engine *syncengine.Engine,
	q *queue.Queue,
	cache store.DatabaseCacheRepository,
	emit *events.Emitter,
	rec metrics.Recorder,
	log *logger.Logger,
) *Orchestrator {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Orchestrator{
		loader:  loader,
		engine:  engine,
		queue:   q,
		cache:   cache,
		emit:    emit,
		metrics: rec,
		logger:  log,
	}
}

// Run performs the pass. Restore requests replace the regular pass, as do
// conduit requests; install requests are processed afterwards in every
// case. Only a failed handshake or database list fails the whole pass;
// conduit and record failures are reported as events and counted.
func (o *Orchestrator) Run(ctx context.Context, s Session) (*Result, error) {
	log := o.logger.With().Str("func", "Orchestrator.Run").Uint32("pilot_id", s.Pilot.ID).Logger()

	if err := s.Conn.OpenConduit(ctx); err != nil {
		o.emit.DaemonError(ctx, s.Pilot.ID, "exchange handshake failed: "+err.Error())
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	loaded, err := o.loader.LoadConduits(ctx, s.Pilot)
	if err != nil {
		o.emit.DaemonError(ctx, s.Pilot.ID, err.Error())
		return nil, err
	}
	defer o.loader.Unload(ctx, loaded)

	res := &Result{}
	bucket := models.PilotBucket(s.Pilot.ID)

	restores, err := o.queue.LoadAll(ctx, bucket, models.RequestRestore, false)
	if err != nil {
		log.Err(err).Msg("failed to load restore requests")
	}
	conduitReqs, err := o.queue.LoadAll(ctx, bucket, models.RequestConduit, false)
	if err != nil {
		log.Err(err).Msg("failed to load conduit requests")
	}

	switch {
	case len(restores) > 0:
		o.restore(ctx, s, loaded, restores, res)
	case len(conduitReqs) > 0:
		if err := o.runRequested(ctx, s, conduitReqs, res); err != nil {
			return res, err
		}
	default:
		if err := o.syncAll(ctx, s, loaded, res); err != nil {
			return res, err
		}
	}

	o.install(ctx, s, loaded, res)
	o.writeSyncLog(ctx, s, res)

	if n, err := o.queue.Pending(ctx, bucket); err == nil {
		o.metrics.SetQueueDepth(bucket.String(), n)
	}

	log.Info().
		Int("databases", res.Databases).
		Int("synced", res.Synced).
		Int("backups", res.Backups).
		Int("installed", res.Installed).
		Int("failed", res.Failed).
		Bool("restored", res.Restored).
		Msg("sync pass finished")
	return res, nil
}

// complete purges a processed request. A request cancelled meanwhile is
// gone already and gets no completion event.
func (o *Orchestrator) complete(ctx context.Context, req models.Request) {
	err := o.queue.Purge(ctx, req.Handle)
	if errors.Is(err, queue.ErrNotFound) {
		o.logger.Debug().Str("func", "Orchestrator.complete").Int64("handle", req.Handle).Msg("request cancelled while running")
		return
	}
	if err != nil {
		o.logger.Err(err).Str("func", "Orchestrator.complete").Int64("handle", req.Handle).Msg("failed to purge request")
		return
	}
	o.emit.RequestCompleted(ctx, req.Bucket, req.Handle)
}

func (o *Orchestrator) restore(ctx context.Context, s Session, loaded *conduit.Loaded, reqs []models.Request, res *Result) {
	if len(loaded.Backup) == 0 {
		o.emit.DaemonError(ctx, s.Pilot.ID, fmt.Sprintf("%s: restore", ErrNoCapableConduit))
		return
	}

	for _, req := range reqs {
		for _, st := range loaded.Backup {
			o.emit.ConduitStart(ctx, s.Pilot.ID, st.Name, "")
			started := time.Now()

			err := st.Backup().Restore(ctx, s.Conn, req.Params.Directory, func(cur, total int) {
				o.emit.ConduitProgress(ctx, s.Pilot.ID, st.Name, "", cur, total)
			})
			if err != nil {
				res.Failed++
				o.emit.ConduitError(ctx, s.Pilot.ID, st.Name, "restore: "+err.Error())
				o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeFailed)
			} else {
				o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeSuccess)
			}
			o.emit.ConduitEnd(ctx, s.Pilot.ID, st.Name, "")
		}
		res.Restored = true
		o.complete(ctx, req)
	}
}

// runRequested runs the conduits named by conduit requests with the
// requested sync type, regardless of their enabled flag.
func (o *Orchestrator) runRequested(ctx context.Context, s Session, reqs []models.Request, res *Result) error {
	dbs, err := listDatabases(ctx, s.Conn)
	if err != nil {
		o.emit.DaemonError(ctx, s.Pilot.ID, err.Error())
		return err
	}
	res.Databases = len(dbs)

	for _, req := range reqs {
		st, err := o.loader.Load(ctx, req.Params.Conduit, s.Pilot, req.Params.SyncType)
		if err != nil {
			res.Failed++
			o.emit.ConduitError(ctx, s.Pilot.ID, req.Params.Conduit, err.Error())
			o.complete(ctx, req)
			continue
		}

		switch st.Info.Capability {
		case conduit.CapabilityRecord:
			for _, db := range dbs {
				if db.ExcludedFromSync() || !st.Info.Matches(db) {
					continue
				}
				o.syncDB(ctx, s, st, db, res)
			}
		case conduit.CapabilityBackup:
			for _, db := range dbs {
				if db.ExcludedFromSync() {
					continue
				}
				o.backupDB(ctx, s, st, db, res)
			}
		case conduit.CapabilityFile:
			o.emit.ConduitMessage(ctx, s.Pilot.ID, st.Name, "nothing to run without an install request")
		}

		o.loader.UnloadConduits(ctx, []*conduit.State{st})
		o.complete(ctx, req)
	}
	return nil
}

// syncAll is the regular pass over every database of the handheld.
func (o *Orchestrator) syncAll(ctx context.Context, s Session, loaded *conduit.Loaded, res *Result) error {
	dbs, err := listDatabases(ctx, s.Conn)
	if err != nil {
		o.emit.DaemonError(ctx, s.Pilot.ID, err.Error())
		return err
	}
	res.Databases = len(dbs)

	ran := make(map[*conduit.State]bool)
	for i, db := range dbs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !db.ExcludedFromSync() {
			if st := loaded.Match(db); st != nil {
				o.syncDB(ctx, s, st, db, res)
				ran[st] = true
			}
			for _, st := range loaded.Backup {
				if st.Backup().ShouldBackup(db) {
					o.backupDB(ctx, s, st, db, res)
				}
			}
		}
		o.emit.OverallProgress(ctx, s.Pilot.ID, i+1, len(dbs))
	}

	for _, st := range loaded.Standard {
		if !ran[st] {
			continue
		}
		if err := o.loader.ConsumeFirstSync(ctx, s.Pilot.ID, st); err != nil {
			o.logger.Warn().Err(err).Str("func", "Orchestrator.syncAll").Str("conduit", st.Name).Msg("failed to clear first sync override")
		}
	}

	if o.cache != nil {
		if err := o.cache.Replace(ctx, s.Pilot.ID, dbs); err != nil {
			o.logger.Warn().Err(err).Str("func", "Orchestrator.syncAll").Msg("failed to persist database cache")
		}
	}
	return nil
}

func (o *Orchestrator) syncDB(ctx context.Context, s Session, st *conduit.State, db models.DBInfo, res *Result) {
	o.emit.ConduitStart(ctx, s.Pilot.ID, st.Name, db.Name)
	defer o.emit.ConduitEnd(ctx, s.Pilot.ID, st.Name, db.Name)

	started := time.Now()
	report, err := o.engine.Sync(ctx, s.Conn, syncengine.Job{
		Pilot:     s.Pilot,
		User:      s.User,
		DB:        db,
		Conduit:   st.Record(),
		Config:    st.Config,
		SyncType:  st.SyncType,
		ForceSlow: st.Slow,
		Progress: func(cur, total int) {
			o.emit.ConduitProgress(ctx, s.Pilot.ID, st.Name, db.Name, cur, total)
		},
		Message: func(msg string) {
			o.emit.ConduitMessage(ctx, s.Pilot.ID, st.Name, msg)
		},
	})
	if report != nil {
		res.Reports = append(res.Reports, report)
		for action, n := range report.Actions {
			o.metrics.AddRecords(st.Name, action.String(), n)
		}
		o.metrics.AddConflicts(st.Name, report.Conflicts)
	}
	if err != nil {
		res.Failed++
		o.emit.ConduitError(ctx, s.Pilot.ID, st.Name, fmt.Sprintf("%s: %s", db.Name, err))
		o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeFailed)
		return
	}
	res.Synced++
	o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeSuccess)
}

func (o *Orchestrator) backupDB(ctx context.Context, s Session, st *conduit.State, db models.DBInfo, res *Result) {
	started := time.Now()
	if err := st.Backup().Backup(ctx, s.Conn, db); err != nil {
		res.Failed++
		o.emit.ConduitError(ctx, s.Pilot.ID, st.Name, fmt.Sprintf("backup %s: %s", db.Name, err))
		o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeFailed)
		return
	}
	res.Backups++
	o.metrics.ObserveConduitDuration(st.Name, time.Since(started), metrics.OutcomeSuccess)
}

// install hands queued install requests to the first file conduit. They stay
// queued when no file conduit is loaded.
func (o *Orchestrator) install(ctx context.Context, s Session, loaded *conduit.Loaded, res *Result) {
	reqs, err := o.queue.LoadAll(ctx, models.PilotBucket(s.Pilot.ID), models.RequestInstall, false)
	if err != nil {
		o.logger.Err(err).Str("func", "Orchestrator.install").Msg("failed to load install requests")
		return
	}
	if len(reqs) == 0 {
		return
	}
	if len(loaded.File) == 0 {
		o.emit.DaemonError(ctx, s.Pilot.ID, fmt.Sprintf("%s: install", ErrNoCapableConduit))
		return
	}

	st := loaded.File[0]
	for i, req := range reqs {
		o.emit.ConduitStart(ctx, s.Pilot.ID, st.Name, req.Params.Description)
		if err := st.File().Install(ctx, s.Conn, req.Params.Filename); err != nil {
			res.Failed++
			o.emit.ConduitError(ctx, s.Pilot.ID, st.Name, err.Error())
		} else {
			res.Installed++
		}
		o.emit.ConduitProgress(ctx, s.Pilot.ID, st.Name, req.Params.Description, i+1, len(reqs))
		o.emit.ConduitEnd(ctx, s.Pilot.ID, st.Name, req.Params.Description)
		o.complete(ctx, req)
	}
}

func (o *Orchestrator) writeSyncLog(ctx context.Context, s Session, res *Result) {
	var entry string
	switch {
	case res.Restored:
		entry = "gpilotd: restore finished"
	default:
		entry = fmt.Sprintf("gpilotd: %d databases synced, %d backed up, %d installed", res.Synced, res.Backups, res.Installed)
	}
	if res.Failed > 0 {
		entry += fmt.Sprintf(", %d failed", res.Failed)
	}
	if err := s.Conn.AddSyncLogEntry(ctx, entry+"\n"); err != nil {
		o.logger.Warn().Err(err).Str("func", "Orchestrator.writeSyncLog").Msg("failed to write sync log")
	}
}

// listDatabases reads every page of the database list.
func listDatabases(ctx context.Context, sess dlp.Session) ([]models.DBInfo, error) {
	var out []models.DBInfo
	start := 0
	for {
		page, err := sess.ReadDBList(ctx, start)
		if errors.Is(err, dlp.ErrNotFound) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w: %w", ErrDBList, err)
		}
		if len(page) == 0 {
			return out, nil
		}
		out = append(out, page...)
		start = page[len(page)-1].Index + 1
	}
}
