// Package memdevice is an in-memory handheld implementing dlp.Session. It
// backs engine, orchestrator and daemon tests and the bridge test helper.
package memdevice

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

// PageSize is the number of entries ReadDBList returns at most.
const PageSize = 16

// Device is an in-memory handheld. The zero value is not usable; call New.
type Device struct {
	mu sync.Mutex

	User models.UserInfo
	Sys  models.SysInfo

	dbs    []*DB
	nextID uint32

	// SyncLog holds every entry written with AddSyncLogEntry.
	SyncLog []string
	// Ended is set by EndOfSync.
	Ended     bool
	EndStatus dlp.EndStatus
	Closed    bool

	// FailOpenConduit, when set, is returned by OpenConduit.
	FailOpenConduit error
	// FailReadUserInfo, when set, is returned by ReadUserInfo.
	FailReadUserInfo error
}

// DB is one in-memory database.
type DB struct {
	dev  *Device
	Info models.DBInfo

	records   []*models.Record
	resources []models.Resource
	appBlock  []byte

	// Calls made through an open handle, for assertions.
	Writes  []models.Record
	Deletes []uint32

	// FailReadID injects an I/O failure when reading the given ids.
	FailReadID map[uint32]error

	cursor int
	open   bool
}

// New returns an empty device with the given identity.
func New(user models.UserInfo, sys models.SysInfo) *Device {
	return &Device{User: user, Sys: sys, nextID: 0x100000}
}

// AddDB adds a database and returns it for seeding.
func (d *Device) AddDB(info models.DBInfo) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()

	info.Index = len(d.dbs)
	db := &DB{dev: d, Info: info}
	d.dbs = append(d.dbs, db)
	return db
}

// DB returns a database by name, or nil.
func (d *Device) DB(name string) *DB {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(name)
}

func (d *Device) find(name string) *DB {
	for _, db := range d.dbs {
		if db.Info.Name == name {
			return db
		}
	}
	return nil
}

// Put seeds a record exactly as given, preserving flags.
func (db *DB) Put(rec models.Record) {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()

	if rec.Attr == "" {
		rec.Attr = models.AttrNothing
	}

	if existing := db.byID(rec.ID); existing != nil {
		*existing = *rec.Clone()
		return
	}
	db.records = append(db.records, rec.Clone())
}

// Record returns a copy of the stored record with id, or nil.
func (db *DB) Record(id uint32) *models.Record {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()
	return db.byID(id).Clone()
}

// Records returns a copy of every stored record in index order.
func (db *DB) Records() []models.Record {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()

	out := make([]models.Record, 0, len(db.records))
	for _, r := range db.records {
		out = append(out, *r.Clone())
	}
	return out
}

// PutResource seeds a resource.
func (db *DB) PutResource(res models.Resource) {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()
	res.Index = len(db.resources)
	db.resources = append(db.resources, res)
}

// Resources returns every stored resource.
func (db *DB) Resources() []models.Resource {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()
	return append([]models.Resource(nil), db.resources...)
}

// SetAppBlock seeds the application info block.
func (db *DB) SetAppBlock(data []byte) {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()
	db.appBlock = append([]byte(nil), data...)
}

func (db *DB) byID(id uint32) *models.Record {
	for _, r := range db.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Open implements dlp.Dialer; the channel is ignored.
func (d *Device) Open(_ context.Context, _ io.ReadWriteCloser) (dlp.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = false
	d.Ended = false
	return d, nil
}

func (d *Device) ReadUserInfo(context.Context) (models.UserInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailReadUserInfo != nil {
		return models.UserInfo{}, d.FailReadUserInfo
	}
	return d.User, nil
}

func (d *Device) WriteUserInfo(_ context.Context, info models.UserInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.User = info
	return nil
}

func (d *Device) ReadSysInfo(context.Context) (models.SysInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Sys, nil
}

func (d *Device) ReadDBList(_ context.Context, start int) ([]models.DBInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if start >= len(d.dbs) {
		return nil, dlp.ErrNotFound
	}
	end := min(start+PageSize, len(d.dbs))
	out := make([]models.DBInfo, 0, end-start)
	for i := start; i < end; i++ {
		info := d.dbs[i].Info
		info.Index = i
		out = append(out, info)
	}
	return out, nil
}

func (d *Device) OpenConduit(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.FailOpenConduit
}

func (d *Device) OpenDB(_ context.Context, name string, mode dlp.OpenMode) (dlp.Database, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	db := d.find(name)
	if db == nil {
		return nil, fmt.Errorf("%w: database %q", dlp.ErrNotFound, name)
	}
	if mode&dlp.ModeWrite != 0 && db.Info.Flags&models.DBFlagReadOnly != 0 {
		return nil, dlp.ErrReadOnly
	}
	db.open = true
	db.cursor = 0
	return &handle{db: db}, nil
}

func (d *Device) CreateDB(_ context.Context, info models.DBInfo) (dlp.Database, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.find(info.Name) != nil {
		return nil, fmt.Errorf("%w: database %q", dlp.ErrExists, info.Name)
	}
	info.Index = len(d.dbs)
	db := &DB{dev: d, Info: info, open: true}
	d.dbs = append(d.dbs, db)
	return &handle{db: db}, nil
}

func (d *Device) DeleteDB(_ context.Context, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, db := range d.dbs {
		if db.Info.Name == name {
			d.dbs = append(d.dbs[:i], d.dbs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: database %q", dlp.ErrNotFound, name)
}

func (d *Device) AddSyncLogEntry(_ context.Context, entry string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.SyncLog = append(d.SyncLog, entry)
	return nil
}

func (d *Device) EndOfSync(_ context.Context, status dlp.EndStatus) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Ended = true
	d.EndStatus = status
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}

// handle is an open database.
type handle struct {
	db *DB
}

func (h *handle) lock() func() {
	h.db.dev.mu.Lock()
	return h.db.dev.mu.Unlock
}

func (h *handle) Name() string { return h.db.Info.Name }

func (h *handle) RecordCount(context.Context) (int, error) {
	defer h.lock()()
	return len(h.db.records), nil
}

func (h *handle) ReadRecordByID(_ context.Context, id uint32) (*models.Record, error) {
	defer h.lock()()

	if err, ok := h.db.FailReadID[id]; ok {
		return nil, err
	}
	r := h.db.byID(id)
	if r == nil {
		return nil, dlp.ErrNotFound
	}
	return r.Clone(), nil
}

func (h *handle) ReadRecordByIndex(_ context.Context, index int) (*models.Record, error) {
	defer h.lock()()

	if index < 0 || index >= len(h.db.records) {
		return nil, dlp.ErrNotFound
	}
	return h.db.records[index].Clone(), nil
}

func (h *handle) ReadNextModified(context.Context) (*models.Record, error) {
	defer h.lock()()

	for h.db.cursor < len(h.db.records) {
		r := h.db.records[h.db.cursor]
		h.db.cursor++
		if r.Attr != models.AttrNothing || r.Archived {
			return r.Clone(), nil
		}
	}
	return nil, dlp.ErrNotFound
}

func (h *handle) WriteRecord(_ context.Context, rec models.Record) (uint32, error) {
	defer h.lock()()

	if h.db.Info.Flags&models.DBFlagReadOnly != 0 {
		return 0, dlp.ErrReadOnly
	}
	stored := rec.Clone()
	stored.Attr = models.AttrNothing
	stored.Archived = false

	if stored.ID == 0 {
		h.db.dev.nextID++
		stored.ID = h.db.dev.nextID
	}
	h.db.Writes = append(h.db.Writes, *stored.Clone())

	if existing := h.db.byID(stored.ID); existing != nil {
		*existing = *stored
	} else {
		h.db.records = append(h.db.records, stored)
	}
	return stored.ID, nil
}

func (h *handle) DeleteRecord(_ context.Context, id uint32) error {
	defer h.lock()()

	h.db.Deletes = append(h.db.Deletes, id)
	for i, r := range h.db.records {
		if r.ID == id {
			h.db.records = append(h.db.records[:i], h.db.records[i+1:]...)
			return nil
		}
	}
	return dlp.ErrNotFound
}

func (h *handle) DeleteAllRecords(context.Context) error {
	defer h.lock()()
	h.db.records = nil
	h.db.cursor = 0
	return nil
}

func (h *handle) ResetSyncFlags(context.Context) error {
	defer h.lock()()
	for _, r := range h.db.records {
		if r.Attr == models.AttrModified {
			r.Attr = models.AttrNothing
		}
	}
	return nil
}

func (h *handle) CleanUpDatabase(context.Context) error {
	defer h.lock()()

	kept := h.db.records[:0]
	for _, r := range h.db.records {
		if r.Attr == models.AttrDeleted || r.Archived {
			continue
		}
		kept = append(kept, r)
	}
	h.db.records = kept
	return nil
}

func (h *handle) ReadAppBlock(context.Context) ([]byte, error) {
	defer h.lock()()
	if h.db.appBlock == nil {
		return nil, dlp.ErrNotFound
	}
	return append([]byte(nil), h.db.appBlock...), nil
}

func (h *handle) WriteAppBlock(_ context.Context, data []byte) error {
	defer h.lock()()
	h.db.appBlock = append([]byte(nil), data...)
	return nil
}

func (h *handle) ReadResourceByIndex(_ context.Context, index int) (models.Resource, error) {
	defer h.lock()()
	if index < 0 || index >= len(h.db.resources) {
		return models.Resource{}, dlp.ErrNotFound
	}
	res := h.db.resources[index]
	res.Data = append([]byte(nil), res.Data...)
	return res, nil
}

func (h *handle) WriteResource(_ context.Context, res models.Resource) error {
	defer h.lock()()
	for i, r := range h.db.resources {
		if r.Type == res.Type && r.ID == res.ID {
			res.Index = i
			h.db.resources[i] = res
			return nil
		}
	}
	res.Index = len(h.db.resources)
	h.db.resources = append(h.db.resources, res)
	return nil
}

func (h *handle) Close(context.Context) error {
	defer h.lock()()
	h.db.open = false
	return nil
}

// Names returns the database names in index order.
func (d *Device) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, 0, len(d.dbs))
	for _, db := range d.dbs {
		out = append(out, db.Info.Name)
	}
	return out
}

// SortedIDs returns the record ids of db in ascending order.
func (db *DB) SortedIDs() []uint32 {
	db.dev.mu.Lock()
	defer db.dev.mu.Unlock()

	ids := make([]uint32, 0, len(db.records))
	for _, r := range db.records {
		ids = append(ids, r.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
