package syncengine

import (
	"context"
	"sort"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/models"
)

type archiveCall struct {
	local  *models.LocalRecord
	remote models.Record
}

// fakeConduit keeps the desktop records of database db in memory and
// records archive calls.
type fakeConduit struct {
	db      string
	next    int64
	records map[int64]*models.LocalRecord
	counted []string

	archivedRemote []archiveCall
	archivedLocal  []models.LocalRecord
	matchErr       map[uint32]error
	preSync        *conduit.SyncContext
	postSynced     bool
}

func newFakeConduit() *fakeConduit {
	return &fakeConduit{db: dbName, records: make(map[int64]*models.LocalRecord)}
}

func (f *fakeConduit) add(rec models.Record) *models.LocalRecord {
	if rec.Attr == "" {
		rec.Attr = models.AttrNothing
	}
	f.next++
	l := &models.LocalRecord{LocalID: f.next, Record: *rec.Clone()}
	f.records[l.LocalID] = l
	return f.clone(l)
}

func (f *fakeConduit) clone(l *models.LocalRecord) *models.LocalRecord {
	c := *l
	c.Record = *l.Record.Clone()
	return &c
}

func (f *fakeConduit) byRemote(id uint32) *models.LocalRecord {
	for _, l := range f.records {
		if l.ID == id {
			return f.clone(l)
		}
	}
	return nil
}

func (f *fakeConduit) sorted() []*models.LocalRecord {
	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*models.LocalRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.clone(f.records[id]))
	}
	return out
}

func (f *fakeConduit) update(l *models.LocalRecord) {
	if _, ok := f.records[l.LocalID]; ok {
		f.records[l.LocalID] = f.clone(l)
	}
}

func (f *fakeConduit) Info() conduit.Info {
	return conduit.Info{Name: "fake", Creator: "fake", Capability: conduit.CapabilityRecord}
}

func (f *fakeConduit) Destroy(context.Context) error { return nil }

func (f *fakeConduit) PreSync(_ context.Context, sc *conduit.SyncContext) error {
	f.preSync = sc
	return nil
}

func (f *fakeConduit) PostSync(context.Context, *conduit.SyncContext) error {
	f.postSynced = true
	return nil
}

func (f *fakeConduit) Match(_ context.Context, remoteID uint32) (*models.LocalRecord, error) {
	if err, ok := f.matchErr[remoteID]; ok {
		return nil, err
	}
	return f.byRemote(remoteID), nil
}

func (f *fakeConduit) Records(context.Context) ([]*models.LocalRecord, error) {
	return f.sorted(), nil
}

func (f *fakeConduit) MappedCount(_ context.Context, db string) (int, error) {
	f.counted = append(f.counted, db)
	if db != f.db {
		return 0, nil
	}
	n := 0
	for _, l := range f.records {
		if l.ID != 0 {
			n++
		}
	}
	return n, nil
}

func (f *fakeConduit) Store(_ context.Context, local *models.LocalRecord, remote *models.Record) (*models.LocalRecord, error) {
	rec := *remote.Clone()
	rec.Attr = models.AttrNothing
	rec.Archived = false
	if local != nil {
		stored := &models.LocalRecord{LocalID: local.LocalID, Record: rec}
		f.records[local.LocalID] = f.clone(stored)
		return stored, nil
	}
	return f.add(rec), nil
}

func (f *fakeConduit) ArchiveRemote(_ context.Context, local *models.LocalRecord, remote *models.Record) error {
	call := archiveCall{remote: *remote.Clone()}
	if local != nil {
		call.local = f.clone(local)
		delete(f.records, local.LocalID)
	}
	f.archivedRemote = append(f.archivedRemote, call)
	return nil
}

func (f *fakeConduit) ArchiveLocal(_ context.Context, local *models.LocalRecord) error {
	f.archivedLocal = append(f.archivedLocal, *f.clone(local))
	delete(f.records, local.LocalID)
	return nil
}

func (f *fakeConduit) SetStatus(_ context.Context, local *models.LocalRecord, attr models.RecordAttr) error {
	local.Attr = attr
	f.update(local)
	return nil
}

func (f *fakeConduit) SetPilotID(_ context.Context, local *models.LocalRecord, id uint32) error {
	local.ID = id
	f.update(local)
	return nil
}

func (f *fakeConduit) SetArchived(_ context.Context, local *models.LocalRecord, archived bool) error {
	local.Archived = archived
	f.update(local)
	return nil
}

func (f *fakeConduit) Delete(_ context.Context, local *models.LocalRecord) error {
	delete(f.records, local.LocalID)
	return nil
}

func (f *fakeConduit) Compare(_ context.Context, local *models.LocalRecord, remote *models.Record) (bool, error) {
	return local.Record.SameContent(remote), nil
}

func (f *fakeConduit) Prepare(_ context.Context, local *models.LocalRecord) (models.Record, error) {
	rec := *local.Record.Clone()
	rec.Attr = models.AttrNothing
	rec.Archived = false
	return rec, nil
}

func (f *fakeConduit) DeleteAll(context.Context) error {
	f.records = make(map[int64]*models.LocalRecord)
	return nil
}

func (f *fakeConduit) Purge(context.Context) error {
	for id, l := range f.records {
		if l.Deleted() || l.Archived {
			delete(f.records, id)
		}
	}
	return nil
}
