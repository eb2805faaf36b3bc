// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Pilot is the desktop-side profile of one handheld.
//
// The handheld identifies itself with UserID; Creation and ROMVersion form
// the fingerprint used to offer a restore when a hard-reset device comes in
// with UserID zero.
type Pilot struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name"`
	UserName   string `json:"user_name"`
	UserLogin  string `json:"user_login"`
	Password   string `json:"password,omitempty"`
	Creation   uint32 `json:"creation"`
	ROMVersion uint32 `json:"rom_version"`
	BaseDir    string `json:"base_dir"`
	Charset    string `json:"charset"`
	Number     int    `json:"number"`

	// SyncPCID is the sync stamp: the PC id of the desktop that last
	// completed a session with this handheld.
	SyncPCID   uint32     `json:"sync_pc_id"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// Fingerprint identifies a device independently of its user id.
type Fingerprint struct {
	Creation   uint32 `json:"creation"`
	ROMVersion uint32 `json:"rom_version"`
}

// Fingerprint returns the profile's device fingerprint.
func (p Pilot) Fingerprint() Fingerprint {
	return Fingerprint{Creation: p.Creation, ROMVersion: p.ROMVersion}
}

// SyncStamp is the persisted marker of the desktop that last synced a handheld.
type SyncStamp struct {
	PCID uint32    `json:"pc_id"`
	At   time.Time `json:"at"`
}

// User is an owner name as listed by GetUsers.
type User struct {
	Name  string `json:"name"`
	Login string `json:"login"`
}
