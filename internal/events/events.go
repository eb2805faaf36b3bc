// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events carries the notifications the daemon emits to front-ends:
// session lifecycle, conduit progress, completed requests and every warning
// or error raised while a handheld is connected.
//
// Emitters only see the Sink interface. A Broker fans events out to
// websocket subscribers, a NATSSink forwards them to a NATS subject tree and
// LogSink writes them to the daemon log; Multi combines any of them.
package events

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pilot/models"
)

// Type names an event.
type Type string

const (
	Connected         Type = "connected"
	Disconnected      Type = "disconnected"
	RequestCompleted  Type = "request_completed"
	UserInfoRequested Type = "user_info_requested"
	SysInfoRequested  Type = "sys_info_requested"
	ConduitStart      Type = "conduit_start"
	ConduitProgress   Type = "conduit_progress"
	ConduitEnd        Type = "conduit_end"
	OverallProgress   Type = "overall_progress"
	DaemonMessage     Type = "daemon_message"
	DaemonError       Type = "daemon_error"
	ConduitMessage    Type = "conduit_message"
	ConduitError      Type = "conduit_error"
	Paused            Type = "paused"
)

// Error reports whether the event carries an error text.
func (t Type) Error() bool {
	return t == DaemonError || t == ConduitError
}

// Event is one notification. Only the fields relevant to Type are set.
type Event struct {
	Type Type      `json:"type"`
	Time time.Time `json:"time"`

	Cradle   string `json:"cradle,omitempty"`
	PilotID  uint32 `json:"pilot_id,omitempty"`
	UserID   uint32 `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Conduit  string `json:"conduit,omitempty"`
	DB       string `json:"db,omitempty"`

	Bucket string `json:"bucket,omitempty"`
	Handle int64  `json:"handle,omitempty"`

	Current int `json:"current,omitempty"`
	Total   int `json:"total,omitempty"`

	Message string `json:"message,omitempty"`
	On      bool   `json:"on,omitempty"`

	UserInfo *models.UserInfo `json:"user_info,omitempty"`
	SysInfo  *models.SysInfo  `json:"sys_info,omitempty"`
}

// Sink receives events. Publish never blocks the emitter for long and never
// fails; sinks log their own delivery problems.
type Sink interface {
	Publish(ctx context.Context, ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event)

func (f SinkFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) {})

// Multi publishes to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multi []Sink

func (m multi) Publish(ctx context.Context, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	for _, s := range m {
		s.Publish(ctx, ev)
	}
}

// Emitter stamps and publishes events on behalf of one component.
type Emitter struct {
	sink Sink
	now  func() time.Time
}

// NewEmitter returns an emitter publishing to sink. A nil sink discards.
func NewEmitter(sink Sink) *Emitter {
	if sink == nil {
		sink = Discard
	}
	return &Emitter{sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// Emit publishes ev, setting its time when unset.
func (e *Emitter) Emit(ctx context.Context, ev Event) {
	if e == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = e.now()
	}
	e.sink.Publish(ctx, ev)
}

func (e *Emitter) Connected(ctx context.Context, cradle string, pilotID uint32, info models.UserInfo) {
	e.Emit(ctx, Event{Type: Connected, Cradle: cradle, PilotID: pilotID, UserID: info.UserID, UserName: info.Username})
}

func (e *Emitter) Disconnected(ctx context.Context, cradle string, pilotID uint32) {
	e.Emit(ctx, Event{Type: Disconnected, Cradle: cradle, PilotID: pilotID})
}

func (e *Emitter) RequestCompleted(ctx context.Context, bucket models.Bucket, handle int64) {
	e.Emit(ctx, Event{Type: RequestCompleted, Bucket: bucket.String(), PilotID: bucket.PilotID, Handle: handle})
}

func (e *Emitter) UserInfoRequested(ctx context.Context, cradle string, handle int64, info models.UserInfo) {
	e.Emit(ctx, Event{Type: UserInfoRequested, Cradle: cradle, Handle: handle, UserInfo: &info})
}

func (e *Emitter) SysInfoRequested(ctx context.Context, cradle string, handle int64, info models.SysInfo) {
	e.Emit(ctx, Event{Type: SysInfoRequested, Cradle: cradle, Handle: handle, SysInfo: &info})
}

func (e *Emitter) ConduitStart(ctx context.Context, pilotID uint32, conduit, db string) {
	e.Emit(ctx, Event{Type: ConduitStart, PilotID: pilotID, Conduit: conduit, DB: db})
}

func (e *Emitter) ConduitProgress(ctx context.Context, pilotID uint32, conduit, db string, current, total int) {
	e.Emit(ctx, Event{Type: ConduitProgress, PilotID: pilotID, Conduit: conduit, DB: db, Current: current, Total: total})
}

func (e *Emitter) ConduitEnd(ctx context.Context, pilotID uint32, conduit, db string) {
	e.Emit(ctx, Event{Type: ConduitEnd, PilotID: pilotID, Conduit: conduit, DB: db})
}

func (e *Emitter) OverallProgress(ctx context.Context, pilotID uint32, current, total int) {
	e.Emit(ctx, Event{Type: OverallProgress, PilotID: pilotID, Current: current, Total: total})
}

func (e *Emitter) DaemonMessage(ctx context.Context, pilotID uint32, msg string) {
	e.Emit(ctx, Event{Type: DaemonMessage, PilotID: pilotID, Message: msg})
}

func (e *Emitter) DaemonError(ctx context.Context, pilotID uint32, msg string) {
	e.Emit(ctx, Event{Type: DaemonError, PilotID: pilotID, Message: msg})
}

func (e *Emitter) ConduitMessage(ctx context.Context, pilotID uint32, conduit, msg string) {
	e.Emit(ctx, Event{Type: ConduitMessage, PilotID: pilotID, Conduit: conduit, Message: msg})
}

func (e *Emitter) ConduitError(ctx context.Context, pilotID uint32, conduit, msg string) {
	e.Emit(ctx, Event{Type: ConduitError, PilotID: pilotID, Conduit: conduit, Message: msg})
}

func (e *Emitter) Paused(ctx context.Context, on bool) {
	e.Emit(ctx, Event{Type: Paused, On: on})
}
