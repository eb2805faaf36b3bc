// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncengine synchronizes one handheld database with the desktop
// copy kept by a record conduit.
package syncengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

// Job describes one database sync.
type Job struct {
	Pilot    models.Pilot
	User     models.UserInfo
	DB       models.DBInfo
	Conduit  conduit.RecordConduit
	Config   models.ConduitConfig
	SyncType models.SyncType
	// ForceSlow requests a full rescan regardless of the sync stamp.
	ForceSlow bool

	// Progress and Message are optional.
	Progress func(current, total int)
	Message  func(msg string)
}

// Engine runs database syncs.
type Engine struct {
	logger *logger.Logger
}

// New returns an engine logging to log.
func New(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// NeedsSlowSync reports whether incremental state can not be trusted: the
// desktop holds no id mapping yet, the handheld last synced with another
// desktop, or a rescan was requested.
func NeedsSlowSync(mapped int, stampPCID, deviceLastPCID uint32, forced bool) bool {
	return forced || mapped == 0 || stampPCID != deviceLastPCID
}

// Sync runs job against sess. Record failures are counted in the report and
// do not fail the sync; an error means the database could not be synced.
func (e *Engine) Sync(ctx context.Context, sess dlp.Session, job Job) (*Report, error) {
	if job.Conduit == nil {
		return nil, ErrNoConduit
	}
	if !job.SyncType.Enabled() {
		return nil, fmt.Errorf("%w: %s", ErrSyncTypeDisabled, job.DB.Name)
	}

	log := e.logger.With().
		Str("func", "Engine.Sync").
		Uint32("pilot_id", job.Pilot.ID).
		Str("conduit", job.Conduit.Info().Name).
		Str("db", job.DB.Name).
		Str("sync_type", job.SyncType.String()).
		Logger()

	sc := &conduit.SyncContext{
		Pilot:    job.Pilot,
		DB:       job.DB,
		Config:   job.Config,
		SyncType: job.SyncType,
		Slow:     job.ForceSlow,
	}

	if job.SyncType.TwoWay() {
		mapped, err := job.Conduit.MappedCount(ctx, job.DB.Name)
		if err != nil {
			return nil, fmt.Errorf("count mapped records: %w", err)
		}
		sc.Slow = NeedsSlowSync(mapped, job.Pilot.SyncPCID, job.User.LastSyncPCID, job.ForceSlow)
	}

	if err := job.Conduit.PreSync(ctx, sc); err != nil {
		return nil, fmt.Errorf("pre sync: %w", err)
	}

	db, err := sess.OpenDB(ctx, job.DB.Name, dlp.ModeReadWrite|dlp.ModeSecret)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", job.DB.Name, err)
	}
	defer db.Close(ctx)

	p := &pass{
		job:     job,
		conduit: job.Conduit,
		db:      db,
		report:  newReport(job.DB.Name, job.SyncType),
		visited: make(map[uint32]struct{}),
		logger:  &logger.Logger{Logger: log},
	}
	p.report.Slow = sc.Slow

	log.Info().Bool("slow", sc.Slow).Msg("database sync started")

	switch job.SyncType {
	case models.SyncTypeSynchronize, models.SyncTypeCustom:
		err = p.synchronize(ctx, sc.Slow)
	case models.SyncTypeCopyFromPilot:
		err = p.copyFromPilot(ctx)
	case models.SyncTypeCopyToPilot:
		err = p.copyToPilot(ctx)
	case models.SyncTypeMergeFromPilot:
		err = p.mergeFromPilot(ctx)
	case models.SyncTypeMergeToPilot:
		err = p.mergeToPilot(ctx)
	}
	if err != nil {
		return p.report, err
	}

	if err := p.finish(ctx); err != nil {
		return p.report, err
	}
	if err := job.Conduit.PostSync(ctx, sc); err != nil {
		return p.report, fmt.Errorf("post sync: %w", err)
	}

	log.Info().
		Int("records", p.report.Total()).
		Int("conflicts", p.report.Conflicts).
		Int("failed", p.report.Failed).
		Msg("database sync finished")
	return p.report, nil
}

// pass is the state of one database sync. visited holds every device id
// processed so far; a later sweep never touches them again.
//
// While the device records are walked, deletes are only collected in
// pendingDeletes: removing a record shifts the index and the modified
// cursor, so the record after it would never be read.
type pass struct {
	job     Job
	conduit conduit.RecordConduit
	db      dlp.Database
	report  *Report
	visited map[uint32]struct{}
	logger  *logger.Logger

	deferDeletes   bool
	pendingDeletes []uint32
}

func (p *pass) seen(id uint32) bool {
	if id == 0 {
		return false
	}
	_, ok := p.visited[id]
	return ok
}

func (p *pass) visit(ids ...uint32) {
	for _, id := range ids {
		if id != 0 {
			p.visited[id] = struct{}{}
		}
	}
}

func (p *pass) progress(current, total int) {
	if p.job.Progress != nil {
		p.job.Progress(current, total)
	}
}

func (p *pass) message(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Warn().Msg(msg)
	if p.job.Message != nil {
		p.job.Message(msg)
	}
}

// fail records a failure confined to one record.
func (p *pass) fail(id uint32, err error) {
	p.report.Failed++
	p.logger.Error().Err(err).Uint32("record_id", id).Msg("record sync failed")
}

// synchronize runs the two-way pass followed by the merge sweep.
func (p *pass) synchronize(ctx context.Context, slow bool) error {
	total, err := p.db.RecordCount(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	next := func(i int) (*models.Record, error) { return p.db.ReadNextModified(ctx) }
	if slow {
		next = func(i int) (*models.Record, error) { return p.db.ReadRecordByIndex(ctx, i) }
	}

	p.deferDeletes = true
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			p.deferDeletes = false
			return err
		}
		remote, err := next(i)
		if errors.Is(err, dlp.ErrNotFound) {
			break
		}
		if err != nil {
			p.deferDeletes = false
			return fmt.Errorf("read record: %w", err)
		}
		p.progress(i+1, total)

		if p.seen(remote.ID) {
			continue
		}

		local, err := p.conduit.Match(ctx, remote.ID)
		if err != nil {
			p.visit(remote.ID)
			p.fail(remote.ID, err)
			continue
		}
		if err := p.reconcile(ctx, local, remote); err != nil {
			p.fail(remote.ID, err)
		}
	}
	p.flushDeletes(ctx)

	return p.mergeSweep(ctx)
}

// flushDeletes issues the device deletes collected during the walk.
func (p *pass) flushDeletes(ctx context.Context) {
	p.deferDeletes = false
	pending := p.pendingDeletes
	p.pendingDeletes = nil

	for _, id := range pending {
		if err := p.deleteRemote(ctx, id); err != nil {
			p.fail(id, fmt.Errorf("%w: delete device record %d: %w", ErrRecord, id, err))
		}
	}
}

// mergeSweep handles desktop records the device pass did not reach: new
// records first, then modified and archived ones, then deleted ones.
func (p *pass) mergeSweep(ctx context.Context) error {
	records, err := p.conduit.Records(ctx)
	if err != nil {
		return fmt.Errorf("list desktop records: %w", err)
	}

	phases := []func(*models.LocalRecord) bool{
		func(l *models.LocalRecord) bool { return l.DesktopOnly() && !l.Deleted() && !l.Archived },
		func(l *models.LocalRecord) bool { return !l.DesktopOnly() && (l.Modified() || l.Archived) },
		func(l *models.LocalRecord) bool { return l.Deleted() && !l.Archived },
		func(l *models.LocalRecord) bool { return l.DesktopOnly() && l.Archived },
	}

	for _, pick := range phases {
		for _, local := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !pick(local) || p.seen(local.ID) {
				continue
			}
			if err := p.reconcile(ctx, local, nil); err != nil {
				p.fail(local.ID, err)
			}
		}
	}
	return nil
}

// reconcile decides and applies one record pair. A nil side is fetched by id
// first; not finding it means the side is absent.
func (p *pass) reconcile(ctx context.Context, local *models.LocalRecord, remote *models.Record) error {
	var err error
	switch {
	case local == nil && remote == nil:
		return nil
	case remote == nil && !local.DesktopOnly():
		remote, err = p.db.ReadRecordByID(ctx, local.ID)
		if errors.Is(err, dlp.ErrNotFound) {
			remote, err = nil, nil
		}
		if err != nil {
			p.visit(local.ID)
			return fmt.Errorf("%w: fetch device record %d: %w", ErrRecord, local.ID, err)
		}
	}

	if remote != nil {
		p.visit(remote.ID)
	} else {
		p.visit(local.ID)
	}

	identical := false
	if local != nil && remote != nil && local.Modified() && remote.Modified() {
		identical, err = p.conduit.Compare(ctx, local, remote)
		if err != nil {
			return fmt.Errorf("%w: compare: %w", ErrRecord, err)
		}
	}

	d := Decide(local, remote, identical)
	p.report.record(d)
	if d.Conflict {
		p.message("%s: record %d, case %d: %s", p.job.DB.Name, recordID(local, remote), d.Case, d.Action)
	}
	if err := p.apply(ctx, d, local, remote); err != nil {
		return fmt.Errorf("%w: case %d: %w", ErrRecord, d.Case, err)
	}
	return nil
}

// finish purges what the pass left deleted or archived on both sides and
// clears the device dirty flags.
func (p *pass) finish(ctx context.Context) error {
	merge := p.job.SyncType == models.SyncTypeMergeFromPilot || p.job.SyncType == models.SyncTypeMergeToPilot
	if !merge {
		if err := p.db.CleanUpDatabase(ctx); err != nil {
			return fmt.Errorf("clean up %s: %w", p.job.DB.Name, err)
		}
	}
	if err := p.db.ResetSyncFlags(ctx); err != nil {
		return fmt.Errorf("reset sync flags of %s: %w", p.job.DB.Name, err)
	}
	if !merge {
		if err := p.conduit.Purge(ctx); err != nil {
			return fmt.Errorf("purge desktop records: %w", err)
		}
	}
	return nil
}

func recordID(local *models.LocalRecord, remote *models.Record) uint32 {
	if remote != nil {
		return remote.ID
	}
	if local != nil {
		return local.ID
	}
	return 0
}
