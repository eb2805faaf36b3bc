// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION":              "1.2.3",
		"APP_PC_ID":                "77",
		"APP_CONTROL_TOKEN_KEY":    "secret",
		"APP_CONTROL_TOKEN_ISSUER": "desk",

		"STORAGE_DB_DRIVER":       "sqlite",
		"STORAGE_DB_DATABASE_URI": "/tmp/gpilot.db",
		"STORAGE_QUEUE_DIR":       "/tmp/queue",
		"STORAGE_BASE_DIR":        "/tmp/base",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "30s",

		"DAEMON_DEVICES":               "serial:/dev/ttyS0@57600",
		"DAEMON_ACCEPT_TIMEOUT":        "5s",
		"DAEMON_USB_RESCAN_INTERVAL":   "1s",
		"DAEMON_EXPIRY_SWEEP_INTERVAL": "2m",
		"DAEMON_LOCK_DIR":              "/run/lock",
		"DAEMON_USB_WATCH_DIR":         "/dev/usb",

		"EVENTS_NATS_URL":       "nats://localhost:4222",
		"EVENTS_SUBJECT_PREFIX": "desk.events",

		"METRICS_ENABLED": "true",

		"LOG_LEVEL": "warn",
		"LOG_FILE":  "/tmp/gpilotd.log",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, uint32(77), cfg.App.PCID)
	assert.Equal(t, "secret", cfg.App.ControlTokenKey)
	assert.Equal(t, "desk", cfg.App.ControlTokenIssuer)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "/tmp/gpilot.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/queue", cfg.Storage.QueueDir)
	assert.Equal(t, "/tmp/base", cfg.Storage.BaseDir)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, []string{"serial:/dev/ttyS0@57600"}, cfg.Daemon.Devices)
	assert.Equal(t, 5*time.Second, cfg.Daemon.AcceptTimeout)
	assert.Equal(t, time.Second, cfg.Daemon.USBRescanInterval)
	assert.Equal(t, 2*time.Minute, cfg.Daemon.ExpirySweepInterval)
	assert.Equal(t, "/run/lock", cfg.Daemon.LockDir)
	assert.Equal(t, "/dev/usb", cfg.Daemon.USBWatchDir)

	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	assert.Equal(t, "desk.events", cfg.Events.SubjectPrefix)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/gpilotd.log", cfg.Log.File)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "not-a-duration")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnv_PrefixedWins(t *testing.T) {
	setEnvVars(t, map[string]string{
		"LOG_LEVEL":             "warn",
		"GPILOT_LOG_LEVEL":      "debug",
		"SERVER_ADDRESS":        "localhost:1",
		"GPILOT_DAEMON_DEVICES": "usb:/dev/pilot,network:any:14238",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:1", cfg.Server.HTTPAddress)
	assert.Equal(t, []string{"usb:/dev/pilot", "network:any:14238"}, cfg.Daemon.Devices)
}
