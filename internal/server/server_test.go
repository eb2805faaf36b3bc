package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/handler"
	handlerhttp "github.com/MKhiriev/go-pilot/internal/handler/http"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

type appInfo struct{}

func (appInfo) GetAppVersion(context.Context) string { return "test" }
func (appInfo) GetPCID(context.Context) uint32 { return 1 }

type fakeDaemon struct {
	started chan struct{}
	err     error
}

func (d *fakeDaemon) Run(ctx context.Context) error {
	close(d.started)
	if d.err != nil {
		return d.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func newTestServer(t *testing.T, d Daemon) (*server, string) {
	t.Helper()
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(nil, appInfo{}, handlerhttp.Options{}, logger.Nop())}

	srv, err := NewServer(handlers, d, cfg, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s.listen = func(string, string) (net.Listener, error) { return ln, nil }
	return s, "http://" + ln.Addr().String()
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunAndShutdown(t *testing.T) {
	d := &fakeDaemon{started: make(chan struct{})}
	s, url := newTestServer(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-d.started
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/api/version")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_DaemonFailureStopsServer(t *testing.T) {
	boom := errors.New("storage gone")
	d := &fakeDaemon{started: make(chan struct{}), err: boom}
	s, _ := newTestServer(t, d)

	err := s.Run(context.Background())

	assert.ErrorIs(t, err, boom)
}
