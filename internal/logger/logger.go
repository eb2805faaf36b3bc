// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger with the constructors used by the
// gpilotd daemon and the gpilotctl control tool.
//
// Logger embeds zerolog.Logger, so the full zerolog API is available on
// *Logger. Components receive a *Logger by pointer and derive request or
// session scoped loggers through GetChildLogger, FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options selects the level and destination of a logger built by New.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means debug.
	Level string
	// File, when set, sends output to a rotating log file instead of stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger constructs a JSON logger writing to stdout for the given role
// label (e.g. "daemon", "ctl").
//
// Every entry carries a "role" field, a timestamp and a "func" caller field
// holding the fully-qualified function name.
func NewLogger(role string) *Logger {
	return New(role, Options{})
}

// New constructs a logger for role using opts. A file destination is rotated
// by lumberjack; if its directory cannot be created the logger falls back to
// stdout.
func New(role string, opts Options) *Logger {
	setupGlobals(opts.Level)

	var out io.Writer = os.Stdout
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err == nil {
			out = &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAgeDays,
			}
		}
	}

	logger := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

func setupGlobals(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// Nop returns a *Logger that discards all output. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting every field of the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithSession returns a child logger tagged with the device and pilot of an
// active sync session.
func (l *Logger) WithSession(device string, pilotID uint32) *Logger {
	return &Logger{l.With().Str("device", device).Uint32("pilot_id", pilotID).Logger()}
}

// FromRequest extracts the logger attached to the request context by the
// logging middleware.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the logger stored in ctx. If none is attached,
// zerolog's default logger is returned, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// NewFileLogger constructs a logger writing to a rotating file at path.
func NewFileLogger(role, path string) *Logger {
	return New(role, Options{File: path, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28})
}
