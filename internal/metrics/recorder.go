// Package metrics exposes daemon counters to prometheus.
//
// Components depend on the Recorder interface; NoopRecorder is used when
// metrics are disabled, PrometheusRecorder when they are enabled.
package metrics

import "time"

// Outcome labels a finished session or conduit run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Recorder receives daemon observations.
type Recorder interface {
	IncSession(outcome Outcome)
	ObserveConduitDuration(conduit string, d time.Duration, outcome Outcome)
	AddRecords(conduit, action string, n int)
	AddConflicts(conduit string, n int)
	SetQueueDepth(bucket string, n int64)
}

// NoopRecorder drops every observation.
type NoopRecorder struct{}

func (NoopRecorder) IncSession(Outcome) {}
func (NoopRecorder) ObserveConduitDuration(string, time.Duration, Outcome) {}
func (NoopRecorder) AddRecords(string, string, int) {}
func (NoopRecorder) AddConflicts(string, int) {}
func (NoopRecorder) SetQueueDepth(string, int64) {}
