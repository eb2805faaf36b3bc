// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConduitConfig is the per-pilot configuration of one conduit.
// FirstSyncType is a one-time override consumed by the next session.
type ConduitConfig struct {
	PilotID       uint32            `json:"pilot_id"`
	Conduit       string            `json:"conduit"`
	Enabled       bool              `json:"enabled"`
	SyncType      SyncType          `json:"sync_type"`
	FirstSyncType SyncType          `json:"first_sync_type"`
	FirstSlow     bool              `json:"first_slow"`
	Settings      map[string]string `json:"settings,omitempty"`
}

// HasFirstSync reports whether a pending one-time override exists.
func (c ConduitConfig) HasFirstSync() bool {
	return c.FirstSyncType.Enabled()
}

// Setting returns a conduit setting or def when it is absent.
func (c ConduitConfig) Setting(key, def string) string {
	if v, ok := c.Settings[key]; ok && v != "" {
		return v
	}
	return def
}
