// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package daemon is the session controller.
//
// A single reactor goroutine owns the cradles, the paused flag and every
// session. Transport watchers, the hotplug watcher and the scheduled jobs
// only post activities into the reactor; control operations that change
// state are marshalled into it with Do. Sessions run inside the reactor, so
// at most one handheld is served at a time.
package daemon

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/events"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/metrics"
	"github.com/MKhiriev/go-pilot/internal/orchestrator"
	"github.com/MKhiriev/go-pilot/internal/service"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/internal/transport"
	"github.com/MKhiriev/go-pilot/internal/workers"
	"github.com/MKhiriev/go-pilot/models"
)

const (
	activityBuffer = 16
	sweepTimeout   = 30 * time.Second
)

// SessionRunner runs the conduit pass over a connected handheld.
type SessionRunner interface {
	Run(ctx context.Context, s orchestrator.Session) (*orchestrator.Result, error)
}

// RequestQueue is the part of the request queue the controller consumes.
type RequestQueue interface {
	LoadCradle(ctx context.Context, cradle string) ([]models.Request, error)
	Purge(ctx context.Context, handle int64) error
	Expire(ctx context.Context, now time.Time) ([]models.Request, error)
}

// Deps are the collaborators of the daemon. Hotplug, Workers and Recorder
// are optional.
type Deps struct {
	Config   config.Daemon
	PCID     uint32
	Devices  store.DeviceRepository
	Pilots   service.PilotService
	Requests service.RequestService
	Queue    RequestQueue
	Sessions SessionRunner
	Dialer   dlp.Dialer
	Emitter  *events.Emitter
	Recorder metrics.Recorder
	Hotplug  *transport.Hotplug
	Workers  *workers.Workers

	// NewCradle defaults to transport.New.
	NewCradle CradleFactory
	Logger    *logger.Logger
}

type call struct {
	fn   func(ctx context.Context) error
	done chan error
}

// Daemon watches the configured cradles and serves every handheld that
// connects.
type Daemon struct {
	cfg       config.Daemon
	pcID      uint32
	devices   store.DeviceRepository
	pilots    service.PilotService
	requests  service.RequestService
	queue     RequestQueue
	sessions  SessionRunner
	dialer    dlp.Dialer
	emit      *events.Emitter
	metrics   metrics.Recorder
	hotplug   *transport.Hotplug
	workers   *workers.Workers
	newCradle CradleFactory
	logger    *logger.Logger

	calls    chan call
	activity chan transport.Activity
	stopped  chan struct{}
	state    atomic.Int32

	// owned by the reactor
	cradles []*cradle
	paused  bool
	backlog []transport.Activity
}

func New(deps Deps) *Daemon {
	d := &Daemon{
		cfg:       deps.Config,
		pcID:      deps.PCID,
		devices:   deps.Devices,
		pilots:    deps.Pilots,
		requests:  deps.Requests,
		queue:     deps.Queue,
		sessions:  deps.Sessions,
		dialer:    deps.Dialer,
		emit:      deps.Emitter,
		metrics:   deps.Recorder,
		hotplug:   deps.Hotplug,
		workers:   deps.Workers,
		newCradle: deps.NewCradle,
		logger:    deps.Logger,
		calls:     make(chan call),
		activity:  make(chan transport.Activity, activityBuffer),
		stopped:   make(chan struct{}),
	}
	if d.metrics == nil {
		d.metrics = metrics.NoopRecorder{}
	}
	if d.newCradle == nil {
		lockDir, log := deps.Config.LockDir, deps.Logger
		d.newCradle = func(dev models.Device) Cradle {
			return transport.New(dev, lockDir, log)
		}
	}
	return d
}

// State returns the current controller state. Safe for concurrent use.
func (d *Daemon) State() State {
	return State(d.state.Load())
}

// Run loads the cradles, starts watching and serves activity until ctx is
// done. Every transport is finalized on return.
func (d *Daemon) Run(ctx context.Context) error {
	defer close(d.stopped)

	if err := d.load(ctx); err != nil {
		return err
	}
	d.attach(ctx)
	defer d.shutdown()

	if d.hotplug != nil {
		go d.hotplug.Run(ctx, d.activity)
	}
	if d.workers != nil {
		if err := d.schedule(ctx); err != nil {
			return err
		}
		d.workers.Start()
	}

	d.logger.Info().Str("func", "Daemon.Run").Int("cradles", len(d.cradles)).Msg("daemon started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Str("func", "Daemon.Run").Msg("daemon stopping")
			return nil
		case c := <-d.calls:
			c.done <- c.fn(ctx)
		case a := <-d.activity:
			d.handle(ctx, a)
		}

		for len(d.backlog) > 0 && !d.paused && ctx.Err() == nil {
			a := d.backlog[0]
			d.backlog = d.backlog[1:]
			d.handle(ctx, a)
		}
	}
}

// Do runs fn inside the reactor and returns its error. It blocks while a
// session is active.
func (d *Daemon) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	c := call{fn: fn, done: make(chan error, 1)}
	select {
	case d.calls <- c:
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post delivers an activity from outside the reactor without blocking. It
// reports whether the activity was queued.
func (d *Daemon) post(a transport.Activity) bool {
	select {
	case d.activity <- a:
		return true
	default:
		return false
	}
}

func (d *Daemon) handle(ctx context.Context, a transport.Activity) {
	if d.paused {
		d.park(a)
		return
	}

	switch a.Kind {
	case transport.ActivityReadable:
		if c := d.cradle(a.Device); c != nil {
			d.serve(ctx, c)
		}
	case transport.ActivityHotplug, transport.ActivityRescan:
		d.recheck(ctx, a.Device)
	}
	d.refreshState()
}

// park keeps one activity per cradle and kind until unpause.
func (d *Daemon) park(a transport.Activity) {
	for _, p := range d.backlog {
		if p == a {
			return
		}
	}
	d.backlog = append(d.backlog, a)
	d.logger.Debug().Str("func", "Daemon.park").Str("device", a.Device).Int("kind", int(a.Kind)).Msg("activity parked while paused")
}

func (d *Daemon) cradle(name string) *cradle {
	for _, c := range d.cradles {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// load replaces the cradle list with the persisted configuration.
func (d *Daemon) load(ctx context.Context) error {
	devices, err := d.devices.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cradles: %w", err)
	}

	d.cradles = d.cradles[:0]
	if d.hotplug != nil {
		d.hotplug.Untrack()
	}
	for _, dev := range devices {
		c := &cradle{Cradle: d.newCradle(dev), dev: dev}
		d.cradles = append(d.cradles, c)

		if c.usb() && d.hotplug != nil {
			if err := d.hotplug.Track(dev.Name, dev.Port); err != nil {
				d.logger.Warn().Err(err).Str("func", "Daemon.load").Str("device", dev.Name).Msg("failed to watch for usb hotplug")
			}
		}
	}
	return nil
}

// attach initializes and watches every cradle. A cradle that fails stays
// unwatched; the others are unaffected.
func (d *Daemon) attach(ctx context.Context) {
	for _, c := range d.cradles {
		if err := c.Initialize(ctx); err != nil {
			d.logger.Warn().Err(err).Str("func", "Daemon.attach").Str("device", c.Name()).Msg("cradle is unusable")
			d.emit.DaemonError(ctx, 0, fmt.Sprintf("cradle %s is unusable: %v", c.Name(), err))
			continue
		}
		c.Watch(ctx, d.activity)
	}
	d.refreshState()
}

func (d *Daemon) detach() {
	for _, c := range d.cradles {
		c.Deinit()
	}
}

// recheck probes the usb cradle named device, or every usb cradle when
// device is empty, and watches the ones whose node appeared.
func (d *Daemon) recheck(ctx context.Context, device string) {
	for _, c := range d.cradles {
		if device != "" && c.Name() != device {
			continue
		}
		if !c.usb() || !c.Usable() || c.Watching() {
			continue
		}
		open, err := c.Probe()
		if err != nil {
			d.logger.Warn().Err(err).Str("func", "Daemon.recheck").Str("device", c.Name()).Msg("failed to open usb cradle")
			continue
		}
		if open {
			c.Watch(ctx, d.activity)
		}
	}
}

func (d *Daemon) refreshState() {
	switch {
	case d.paused:
		d.state.Store(int32(StatePaused))
	case d.anyWatching():
		d.state.Store(int32(StateWatching))
	default:
		d.state.Store(int32(StateIdle))
	}
}

func (d *Daemon) anyWatching() bool {
	for _, c := range d.cradles {
		if c.Watching() {
			return true
		}
	}
	return false
}

func (d *Daemon) shutdown() {
	if d.workers != nil {
		if err := d.workers.Stop(); err != nil {
			d.logger.Warn().Err(err).Str("func", "Daemon.shutdown").Msg("failed to stop scheduler")
		}
	}
	if d.hotplug != nil {
		_ = d.hotplug.Close()
	}
	for _, c := range d.cradles {
		c.Finalize()
	}
	d.state.Store(int32(StateIdle))
}

// pause detaches every transport, or reattaches them and queues a recheck
// of every cradle.
func (d *Daemon) pause(ctx context.Context, on bool) error {
	if on == d.paused {
		return nil
	}

	d.paused = on
	if on {
		d.detach()
	} else {
		d.attach(ctx)
		d.park(transport.Activity{Kind: transport.ActivityRescan})
	}
	d.refreshState()

	d.logger.Info().Str("func", "Daemon.pause").Bool("on", on).Int("parked", len(d.backlog)).Msg("pause toggled")
	d.emit.Paused(ctx, on)
	return nil
}

// reread finalizes every transport and rebuilds them from the persisted
// cradle list.
func (d *Daemon) reread(ctx context.Context) error {
	for _, c := range d.cradles {
		c.Finalize()
	}
	d.backlog = nil

	if err := d.load(ctx); err != nil {
		d.refreshState()
		return err
	}
	if !d.paused {
		d.attach(ctx)
	}
	d.refreshState()

	d.emit.DaemonMessage(ctx, 0, fmt.Sprintf("configuration reloaded, %d cradles", len(d.cradles)))
	return nil
}
