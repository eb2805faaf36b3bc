// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/service"
)

// Options carries the optional parts of the control API.
type Options struct {
	// Events serves the websocket event stream at /api/events.
	Events http.Handler
	// Metrics serves /metrics.
	Metrics http.Handler
	// TokenKey enables bearer token authentication of /api routes.
	TokenKey    string
	TokenIssuer string
}

type Handler struct {
	control daemon.Control
	appInfo service.AppInfoService

	events  http.Handler
	metrics http.Handler

	tokenKey    string
	tokenIssuer string

	logger *logger.Logger
}

func NewHandler(control daemon.Control, appInfo service.AppInfoService, opts Options, logger *logger.Logger) *Handler {
	logger.Info().
		Bool("auth", opts.TokenKey != "").
		Bool("events", opts.Events != nil).
		Bool("metrics", opts.Metrics != nil).
		Msg("http handler created")
	return &Handler{
		control:     control,
		appInfo:     appInfo,
		events:      opts.Events,
		metrics:     opts.Metrics,
		tokenKey:    opts.TokenKey,
		tokenIssuer: opts.TokenIssuer,
		logger:      logger,
	}
}
