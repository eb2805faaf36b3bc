// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the daemon.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name of a scalar field.
type StructuredConfig struct {
	// App holds the desktop identity and control token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database and on-disk directories.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the control HTTP server settings.
	Server Server `envPrefix:"SERVER_"`

	// Daemon holds the cradle list and the session controller timers.
	Daemon Daemon `envPrefix:"DAEMON_"`

	// Events configures the optional NATS notification sink.
	Events Events `envPrefix:"EVENTS_"`

	// Metrics toggles the prometheus endpoint.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Log selects the log level and an optional rotating log file.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds desktop-level settings.
type App struct {
	// Version is reported by the version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// PCID is the sync stamp written to every handheld this desktop syncs.
	// Zero derives a stable id from the host name.
	// Env: APP_PC_ID
	PCID uint32 `env:"PC_ID"`

	// ControlTokenKey signs and verifies bearer tokens of the control API.
	// Empty disables authentication.
	// Env: APP_CONTROL_TOKEN_KEY
	ControlTokenKey string `env:"CONTROL_TOKEN_KEY"`

	// ControlTokenIssuer is the "iss" claim of control tokens.
	// Env: APP_CONTROL_TOKEN_ISSUER
	ControlTokenIssuer string `env:"CONTROL_TOKEN_ISSUER"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// QueueDir receives copies of files queued for install.
	// Env: STORAGE_QUEUE_DIR
	QueueDir string `env:"QUEUE_DIR"`

	// BaseDir is the parent of per-handheld base directories.
	// Env: STORAGE_BASE_DIR
	BaseDir string `env:"BASE_DIR"`
}

// DB holds connection settings for the relational backend.
type DB struct {
	// Driver is "sqlite" or "postgres".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is a file path for sqlite or a connection URL for postgres.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the control HTTP server settings.
type Server struct {
	// HTTPAddress is the host:port the control API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single control request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Daemon holds the session controller settings.
type Daemon struct {
	// Devices lists the configured cradles, see [ParseDeviceSpec].
	// Env: DAEMON_DEVICES (comma separated)
	Devices []string `env:"DEVICES" envSeparator:","`

	// AcceptTimeout bounds the wait for a handheld after a cradle becomes
	// readable.
	// Env: DAEMON_ACCEPT_TIMEOUT
	AcceptTimeout time.Duration `env:"ACCEPT_TIMEOUT"`

	// USBRescanInterval is the period of the USB hotplug rescan timer.
	// Env: DAEMON_USB_RESCAN_INTERVAL
	USBRescanInterval time.Duration `env:"USB_RESCAN_INTERVAL"`

	// ExpirySweepInterval is the period of the request expiry sweep.
	// Env: DAEMON_EXPIRY_SWEEP_INTERVAL
	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL"`

	// LockDir holds the UUCP-style LCK.. files of serial cradles.
	// Env: DAEMON_LOCK_DIR
	LockDir string `env:"LOCK_DIR"`

	// USBWatchDir is watched for hotplugged USB cradles.
	// Env: DAEMON_USB_WATCH_DIR
	USBWatchDir string `env:"USB_WATCH_DIR"`
}

// Events configures the NATS notification sink.
type Events struct {
	// NATSURL enables the NATS sink when set.
	// Env: EVENTS_NATS_URL
	NATSURL string `env:"NATS_URL"`

	// SubjectPrefix is prepended to the event type to form the subject.
	// Env: EVENTS_SUBJECT_PREFIX
	SubjectPrefix string `env:"SUBJECT_PREFIX"`
}

// Metrics toggles the prometheus endpoint.
type Metrics struct {
	// Env: METRICS_ENABLED
	Enabled bool `env:"ENABLED"`
}

// Log selects the log level and destination.
type Log struct {
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File enables a rotating log file.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges and validates the daemon configuration
// from environment variables, command-line flags, an optional JSON file and
// defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}
