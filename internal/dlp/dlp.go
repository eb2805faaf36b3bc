// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dlp defines the record-level device protocol the daemon speaks to
// a connected handheld. The wire bytes are implemented elsewhere: see
// package bridge for the client of an external protocol helper and package
// memdevice for an in-memory handheld.
package dlp

import (
	"context"
	"io"

	"github.com/MKhiriev/go-pilot/models"
)

// OpenMode selects how a database is opened.
type OpenMode int

const (
	ModeRead OpenMode = 1 << iota
	ModeWrite
	ModeSecret

	ModeReadWrite = ModeRead | ModeWrite
)

// EndStatus is reported to the handheld when a session ends.
type EndStatus int

const (
	EndNormal EndStatus = iota
	EndOutOfMemory
	EndUserCancelled
	EndOther
)

// Session is one open protocol session with a handheld.
type Session interface {
	ReadUserInfo(ctx context.Context) (models.UserInfo, error)
	WriteUserInfo(ctx context.Context, info models.UserInfo) error
	ReadSysInfo(ctx context.Context) (models.SysInfo, error)
	// ReadDBList returns the page of databases starting at index start.
	// ErrNotFound marks the end of the list.
	ReadDBList(ctx context.Context, start int) ([]models.DBInfo, error)
	// OpenConduit performs the session-wide exchange handshake that must
	// precede any database access.
	OpenConduit(ctx context.Context) error
	OpenDB(ctx context.Context, name string, mode OpenMode) (Database, error)
	CreateDB(ctx context.Context, info models.DBInfo) (Database, error)
	DeleteDB(ctx context.Context, name string) error
	AddSyncLogEntry(ctx context.Context, entry string) error
	EndOfSync(ctx context.Context, status EndStatus) error
	Close() error
}

// Database is one open handheld database.
type Database interface {
	Name() string
	RecordCount(ctx context.Context) (int, error)
	// ReadRecordByID returns ErrNotFound for an unknown id.
	ReadRecordByID(ctx context.Context, id uint32) (*models.Record, error)
	// ReadRecordByIndex returns ErrNotFound past the last record.
	ReadRecordByIndex(ctx context.Context, index int) (*models.Record, error)
	// ReadNextModified returns the next record the handheld flagged as
	// changed since the last sync. ErrNotFound ends the iteration.
	ReadNextModified(ctx context.Context) (*models.Record, error)
	// WriteRecord stores rec and returns its id; a zero id asks the
	// handheld to assign one.
	WriteRecord(ctx context.Context, rec models.Record) (uint32, error)
	DeleteRecord(ctx context.Context, id uint32) error
	DeleteAllRecords(ctx context.Context) error
	// ResetSyncFlags clears the dirty flag of every record.
	ResetSyncFlags(ctx context.Context) error
	// CleanUpDatabase purges records flagged deleted or archived.
	CleanUpDatabase(ctx context.Context) error
	ReadAppBlock(ctx context.Context) ([]byte, error)
	WriteAppBlock(ctx context.Context, data []byte) error
	ReadResourceByIndex(ctx context.Context, index int) (models.Resource, error)
	WriteResource(ctx context.Context, res models.Resource) error
	Close(ctx context.Context) error
}

// Dialer starts a protocol session over an accepted transport channel.
type Dialer interface {
	Open(ctx context.Context, ch io.ReadWriteCloser) (Session, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, ch io.ReadWriteCloser) (Session, error)

func (f DialerFunc) Open(ctx context.Context, ch io.ReadWriteCloser) (Session, error) {
	return f(ctx, ch)
}
