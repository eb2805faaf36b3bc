package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

// LogSink writes events to the daemon log. Errors log at error level,
// progress at debug and everything else at info.
type LogSink struct {
	logger *logger.Logger
}

// NewLogSink returns a sink logging through log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

func (s *LogSink) Publish(_ context.Context, ev Event) {
	var e *zerolog.Event
	switch {
	case ev.Type.Error():
		e = s.logger.Error()
	case ev.Type == ConduitProgress || ev.Type == OverallProgress:
		e = s.logger.Debug()
	default:
		e = s.logger.Info()
	}

	e = e.Str("func", "LogSink.Publish").Str("event", string(ev.Type))
	if ev.Cradle != "" {
		e = e.Str("cradle", ev.Cradle)
	}
	if ev.PilotID != 0 {
		e = e.Uint32("pilot_id", ev.PilotID)
	}
	if ev.Conduit != "" {
		e = e.Str("conduit", ev.Conduit)
	}
	if ev.DB != "" {
		e = e.Str("db", ev.DB)
	}
	if ev.Handle != 0 {
		e = e.Int64("handle", ev.Handle)
	}
	if ev.Total != 0 {
		e = e.Int("current", ev.Current).Int("total", ev.Total)
	}
	if ev.Type == Paused {
		e = e.Bool("on", ev.On)
	}
	e.Msg(ev.Message)
}
