package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

// DefaultSubjectPrefix is the subject root events are published under.
const DefaultSubjectPrefix = "gpilot.events"

type publisher interface {
	Publish(subject string, data []byte) error
	Close()
}

// NATSSink publishes every event as JSON on <prefix>.<type>.
type NATSSink struct {
	conn   publisher
	prefix string
	logger *logger.Logger
}

// NewNATSSink connects to the NATS server at url.
func NewNATSSink(url, prefix string, log *logger.Logger) (*NATSSink, error) {
	conn, err := nats.Connect(url, nats.Name("gpilotd"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info().Str("func", "NewNATSSink").Str("url", url).Msg("NATS event sink connected")
	return newNATSSink(conn, prefix, log), nil
}

func newNATSSink(conn publisher, prefix string, log *logger.Logger) *NATSSink {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSSink{conn: conn, prefix: prefix, logger: log}
}

// Subject returns the subject an event of type t is published on.
func (s *NATSSink) Subject(t Type) string {
	return s.prefix + "." + string(t)
}

func (s *NATSSink) Publish(_ context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Err(err).Str("func", "NATSSink.Publish").Msg("failed to marshal event")
		return
	}
	if err := s.conn.Publish(s.Subject(ev.Type), data); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "NATSSink.Publish").
			Str("event", string(ev.Type)).
			Msg("failed to publish event")
	}
}

// Close drops the connection.
func (s *NATSSink) Close() error {
	s.conn.Close()
	return nil
}
