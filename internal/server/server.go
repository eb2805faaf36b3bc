// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/handler"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

type server struct {
	httpServer *httpServer
	daemon     Daemon
	listen     func(network, address string) (net.Listener, error)
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, daemon Daemon, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		daemon:     daemon,
		listen:     net.Listen,
		logger:     logger,
	}, nil
}

// Run starts the daemon and the HTTP server. The first one to fail cancels
// the other; a clean shutdown of ctx returns nil.
func (s *server) Run(ctx context.Context) error {
	ln, err := s.listen("tcp", s.httpServer.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on control address: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	daemonDone := make(chan error, 1)
	if s.daemon != nil {
		s.logger.Info().Str("func", "server.Run").Msg("launching daemon")
		go func() {
			daemonDone <- s.daemon.Run(ctx)
			cancel()
		}()
	} else {
		daemonDone <- nil
	}

	httpDone := make(chan error, 1)
	go func() {
		httpDone <- s.httpServer.serve(ln)
		cancel()
	}()

	<-ctx.Done()
	s.httpServer.shutdown()

	err = errors.Join(<-httpDone, ignoreCanceled(<-daemonDone))
	if err != nil {
		s.logger.Err(err).Str("func", "server.Run").Msg("server stopped with error")
		return err
	}
	s.logger.Info().Str("func", "server.Run").Msg("server shutdown gracefully")
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
