// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package conduit defines the capability interfaces conduits implement, the
// static registry mapping conduit names to factories, and the loader that
// instantiates the conduits configured for one handheld.
package conduit

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

// Capability selects the bucket a conduit is loaded into.
type Capability int

const (
	// CapabilityRecord conduits reconcile records through the sync engine.
	CapabilityRecord Capability = iota + 1
	// CapabilityBackup conduits copy whole databases to the desktop.
	CapabilityBackup
	// CapabilityFile conduits install files onto the handheld.
	CapabilityFile
)

func (c Capability) String() string {
	switch c {
	case CapabilityRecord:
		return "record"
	case CapabilityBackup:
		return "backup"
	case CapabilityFile:
		return "file"
	}
	return "unknown"
}

// Info is the management metadata of a conduit.
type Info struct {
	Name        string
	Description string
	// Creator is the four character creator id of the databases served.
	Creator string
	// Databases restricts matching to these names; empty matches any
	// database of Creator.
	Databases        []string
	ValidSyncTypes   []models.SyncType
	DefaultSyncType  models.SyncType
	HasSettings      bool
	Capability       Capability
	EnabledByDefault bool
}

// Valid reports whether the metadata is complete enough to load.
func (i Info) Valid() bool {
	return i.Name != "" && i.Capability >= CapabilityRecord && i.Capability <= CapabilityFile
}

// AllowsSyncType reports whether t is among the valid sync types. An empty
// set allows every type.
func (i Info) AllowsSyncType(t models.SyncType) bool {
	return len(i.ValidSyncTypes) == 0 || slices.Contains(i.ValidSyncTypes, t)
}

// Matches reports whether the conduit serves db.
func (i Info) Matches(db models.DBInfo) bool {
	if i.Creator != "" && i.Creator != db.Creator {
		return false
	}
	if len(i.Databases) == 0 {
		return i.Creator != ""
	}
	return slices.Contains(i.Databases, db.Name)
}

// Conduit is implemented by every conduit.
type Conduit interface {
	Info() Info
	// Destroy releases the instance at session end.
	Destroy(ctx context.Context) error
}

// SyncContext describes the database a record conduit is about to sync.
type SyncContext struct {
	Pilot    models.Pilot
	DB       models.DBInfo
	Config   models.ConduitConfig
	SyncType models.SyncType
	Slow     bool
}

// RecordConduit is the capability interface the sync engine drives. Every
// local record passed in was returned by the same conduit.
type RecordConduit interface {
	Conduit

	PreSync(ctx context.Context, sc *SyncContext) error
	PostSync(ctx context.Context, sc *SyncContext) error

	// Match returns the desktop record mapped to the device id, or nil.
	Match(ctx context.Context, remoteID uint32) (*models.LocalRecord, error)
	// Records returns every desktop record.
	Records(ctx context.Context) ([]*models.LocalRecord, error)
	// MappedCount returns the size of the device id map of database db.
	// It is called before PreSync.
	MappedCount(ctx context.Context, db string) (int, error)

	// Store saves remote on the desktop, replacing local when it is not
	// nil, and returns the stored record with a clear flag.
	Store(ctx context.Context, local *models.LocalRecord, remote *models.Record) (*models.LocalRecord, error)
	// ArchiveRemote hands a device record, and its local copy if any, to the
	// archive.
	ArchiveRemote(ctx context.Context, local *models.LocalRecord, remote *models.Record) error
	ArchiveLocal(ctx context.Context, local *models.LocalRecord) error
	SetStatus(ctx context.Context, local *models.LocalRecord, attr models.RecordAttr) error
	// SetPilotID records the device id assigned to a pushed record.
	SetPilotID(ctx context.Context, local *models.LocalRecord, id uint32) error
	SetArchived(ctx context.Context, local *models.LocalRecord, archived bool) error
	Delete(ctx context.Context, local *models.LocalRecord) error
	// Compare reports whether local and remote carry the same content.
	Compare(ctx context.Context, local *models.LocalRecord, remote *models.Record) (bool, error)
	// Prepare converts local into the record transmitted to the device.
	Prepare(ctx context.Context, local *models.LocalRecord) (models.Record, error)
	// DeleteAll empties the desktop copy.
	DeleteAll(ctx context.Context) error
	// Purge drops desktop records left deleted or archived by a pass.
	Purge(ctx context.Context) error
}

// BackupConduit copies whole databases to the desktop and back.
type BackupConduit interface {
	Conduit
	// ShouldBackup reports whether db needs a backup pass this session.
	ShouldBackup(db models.DBInfo) bool
	Backup(ctx context.Context, sess dlp.Session, db models.DBInfo) error
	// Restore installs every backed up database from dir, or from the
	// default backup directory when dir is empty.
	Restore(ctx context.Context, sess dlp.Session, dir string, progress func(current, total int)) error
}

// FileConduit installs files onto the handheld.
type FileConduit interface {
	Conduit
	Install(ctx context.Context, sess dlp.Session, file string) error
}

// Deps are the collaborators handed to conduit factories.
type Deps struct {
	Records store.DesktopRecordRepository
	Cache   store.DatabaseCacheRepository
	Logger  *logger.Logger
}
