package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func TestEmitter(t *testing.T) {
	rec := &recorder{}
	e := NewEmitter(rec)
	ctx := context.Background()

	e.Connected(ctx, "usb0", 7, models.UserInfo{UserID: 7, Username: "Ann"})
	e.ConduitStart(ctx, 7, "memo", "MemoDB")
	e.ConduitProgress(ctx, 7, "memo", "MemoDB", 1, 3)
	e.ConduitEnd(ctx, 7, "memo", "MemoDB")
	e.OverallProgress(ctx, 7, 1, 1)
	e.RequestCompleted(ctx, models.PilotBucket(7), 7*models.HandleBase+1)
	e.ConduitError(ctx, 7, "memo", "boom")
	e.Disconnected(ctx, "usb0", 7)
	e.Paused(ctx, true)

	assert.Equal(t, []Type{
		Connected, ConduitStart, ConduitProgress, ConduitEnd, OverallProgress,
		RequestCompleted, ConduitError, Disconnected, Paused,
	}, rec.types())

	first := rec.events[0]
	assert.Equal(t, "usb0", first.Cradle)
	assert.Equal(t, uint32(7), first.UserID)
	assert.Equal(t, "Ann", first.UserName)
	assert.False(t, first.Time.IsZero())

	done := rec.events[5]
	assert.Equal(t, "7", done.Bucket)
	assert.Equal(t, 7*models.HandleBase+1, done.Handle)

	assert.True(t, rec.events[8].On)
}

func TestEmitter_NilSafe(t *testing.T) {
	var e *Emitter
	assert.NotPanics(t, func() { e.DaemonMessage(context.Background(), 1, "hi") })
	assert.NotPanics(t, func() { NewEmitter(nil).DaemonMessage(context.Background(), 1, "hi") })
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi(a, nil, b)

	m.Publish(context.Background(), Event{Type: DaemonMessage, Message: "x"})

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.False(t, a.events[0].Time.IsZero())
}

func TestType_Error(t *testing.T) {
	assert.True(t, DaemonError.Error())
	assert.True(t, ConduitError.Error())
	assert.False(t, ConduitMessage.Error())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(&logger.Logger{Logger: zerolog.New(&buf)})

	s.Publish(context.Background(), Event{Type: ConduitError, PilotID: 3, Conduit: "memo", Message: "broken"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "conduit_error", line["event"])
	assert.Equal(t, "memo", line["conduit"])
	assert.Equal(t, float64(3), line["pilot_id"])
	assert.Equal(t, "broken", line["message"])
}

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
	closed   bool
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func (p *fakePublisher) Close() { p.closed = true }

func TestNATSSink(t *testing.T) {
	pub := &fakePublisher{}
	s := newNATSSink(pub, "", logger.Nop())

	s.Publish(context.Background(), Event{Type: Connected, PilotID: 9})
	s.Publish(context.Background(), Event{Type: RequestCompleted, Handle: 4})

	assert.Equal(t, []string{"gpilot.events.connected", "gpilot.events.request_completed"}, pub.subjects)

	var ev Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &ev))
	assert.Equal(t, Connected, ev.Type)
	assert.Equal(t, uint32(9), ev.PilotID)

	require.NoError(t, s.Close())
	assert.True(t, pub.closed)
}

func TestNATSSink_CustomPrefixAndFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("no responders")}
	s := newNATSSink(pub, "desk.a", logger.Nop())

	assert.Equal(t, "desk.a.paused", s.Subject(Paused))
	assert.NotPanics(t, func() { s.Publish(context.Background(), Event{Type: Paused}) })
	assert.Empty(t, pub.subjects)
}

func TestBroker_Broadcast(t *testing.T) {
	b := NewBroker(logger.Nop())
	srv := httptest.NewServer(b)
	defer srv.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conns := make([]*websocket.Conn, 2)
	for i := range conns {
		conn, _, err := websocket.Dial(ctx, url, nil)
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")
		conns[i] = conn
	}
	require.Eventually(t, func() bool { return b.Subscribers() == 2 }, 2*time.Second, 10*time.Millisecond)

	b.Publish(ctx, Event{Type: OverallProgress, PilotID: 5, Current: 2, Total: 4})

	for _, conn := range conns {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)

		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, OverallProgress, ev.Type)
		assert.Equal(t, 2, ev.Current)
		assert.Equal(t, 4, ev.Total)
	}
}

func TestBroker_ClientLeaves(t *testing.T) {
	b := NewBroker(logger.Nop())
	srv := httptest.NewServer(b)
	defer srv.Close()
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	_ = conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
