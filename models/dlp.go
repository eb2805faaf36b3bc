// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// UserInfo is the identity block a handheld reports when it connects.
type UserInfo struct {
	UserID       uint32    `json:"user_id"`
	ViewerID     uint32    `json:"viewer_id"`
	LastSyncPCID uint32    `json:"last_sync_pc_id"`
	SuccessfulAt time.Time `json:"successful_sync_at"`
	LastSyncAt   time.Time `json:"last_sync_at"`
	Username     string    `json:"username"`
	Password     []byte    `json:"password,omitempty"`
}

// SysInfo describes the connected handheld.
type SysInfo struct {
	ROMVersion uint32 `json:"rom_version"`
	Locale     uint32 `json:"locale"`
	ProductID  string `json:"product_id"`
	Creation   uint32 `json:"creation"`
}

// Fingerprint returns the device fingerprint carried by the system block.
func (s SysInfo) Fingerprint() Fingerprint {
	return Fingerprint{Creation: s.Creation, ROMVersion: s.ROMVersion}
}

// Database flag bits as reported by the handheld.
const (
	DBFlagResource          uint16 = 0x0001
	DBFlagReadOnly          uint16 = 0x0002
	DBFlagBackup            uint16 = 0x0008
	DBFlagOKToInstallNewer  uint16 = 0x0010
	DBFlagResetAfterInstall uint16 = 0x0020
	DBFlagExcludeFromSync   uint16 = 0x0080
)

// DBInfo is one entry of the handheld database list.
type DBInfo struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Creator    string    `json:"creator"`
	Flags      uint16    `json:"flags"`
	Version    uint16    `json:"version"`
	ModNum     uint32    `json:"mod_num"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	BackupAt   time.Time `json:"backup_at"`
	Index      int       `json:"index"`
}

// Resource reports whether the database is a resource database (.prc).
func (d DBInfo) Resource() bool { return d.Flags&DBFlagResource != 0 }

// ExcludedFromSync reports whether the handheld asked to skip the database.
func (d DBInfo) ExcludedFromSync() bool { return d.Flags&DBFlagExcludeFromSync != 0 }

// Resource is one entry of a resource database.
type Resource struct {
	Type  string `json:"type"`
	ID    uint16 `json:"id"`
	Index int    `json:"index"`
	Data  []byte `json:"data"`
}
