package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/events"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	t.Run("header is kept", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(traceIDHeader, "trace-1")
		rec := httptest.NewRecorder()

		h.withTraceID(next).ServeHTTP(rec, req)

		assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
		assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
	})

	t.Run("generated when missing", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()

		h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(traceIDHeader)
		assert.Len(t, id, 36)
		assert.Contains(t, buf.String(), id)
	})
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"handle":1}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/requests/install?x=1", nil)
	h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/requests/install?x=1", line["uri"])
	assert.Equal(t, float64(http.StatusAccepted), line["status"])
	assert.Equal(t, float64(12), line["size"])
	assert.NotEmpty(t, line["trace_id"])
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("gone"))

	assert.Equal(t, http.StatusNotFound, w.status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 4, w.size)
	assert.Same(t, rec, w.Unwrap())

	_, _, err := w.Hijack()
	assert.ErrorIs(t, err, errHijackUnsupported)
}

func TestEventsThroughMiddleware(t *testing.T) {
	broker := events.NewBroker(logger.Nop())
	defer broker.Close()

	srv := httptest.NewServer(newTestRouter(t, &fakeControl{}, Options{Events: broker}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/api/events", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return broker.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	broker.Publish(ctx, events.Event{Type: events.Paused, On: true})

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var ev events.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, events.Paused, ev.Type)
	assert.True(t, ev.On)
}
