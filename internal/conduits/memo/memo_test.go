package memo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/storetest"
	"github.com/MKhiriev/go-pilot/models"
)

func newMemo(t *testing.T) (*Conduit, context.Context) {
	t.Helper()
	s := storetest.New(t)
	c, err := New(context.Background(), conduit.Deps{Records: s.DesktopRecordRepository, Logger: logger.Nop()},
		models.Pilot{ID: 7, Charset: "cp1252"}, models.ConduitConfig{})
	require.NoError(t, err)

	m := c.(*Conduit)
	ctx := context.Background()
	require.NoError(t, m.PreSync(ctx, &conduit.SyncContext{DB: models.DBInfo{Name: DBName}}))
	return m, ctx
}

func TestMemo_StoreMatchCompare(t *testing.T) {
	m, ctx := newMemo(t)

	remote := &models.Record{ID: 0x100, Category: 3, Payload: []byte("caf\xe9\x00"), Attr: models.AttrModified}
	stored, err := m.Store(ctx, nil, remote)
	require.NoError(t, err)
	assert.NotZero(t, stored.LocalID)
	assert.Equal(t, "café", string(stored.Payload))
	assert.Equal(t, models.AttrNothing, stored.Attr)

	got, err := m.Match(ctx, 0x100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.LocalID, got.LocalID)

	missing, err := m.Match(ctx, 0x999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	same, err := m.Compare(ctx, got, remote)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = m.Compare(ctx, got, &models.Record{ID: 0x100, Category: 3, Payload: []byte("cafe\x00")})
	require.NoError(t, err)
	assert.False(t, same)

	n, err := m.MappedCount(ctx, DBName)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	updated, err := m.Store(ctx, got, &models.Record{ID: 0x100, Payload: []byte("tea\x00")})
	require.NoError(t, err)
	assert.Equal(t, got.LocalID, updated.LocalID)

	all, err := m.Records(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "tea", string(all[0].Payload))
}

func TestMemo_Prepare(t *testing.T) {
	m, ctx := newMemo(t)

	rec, err := m.Prepare(ctx, &models.LocalRecord{
		LocalID: 5,
		Record:  models.Record{ID: 9, Category: 1, Payload: []byte("€"), Attr: models.AttrModified, Secret: true},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Record{ID: 9, Category: 1, Payload: []byte{0x80, 0}, Attr: models.AttrNothing, Secret: true}, rec)
}

func TestMemo_FlagsAndPurge(t *testing.T) {
	m, ctx := newMemo(t)

	a, err := m.Store(ctx, nil, &models.Record{ID: 1, Payload: []byte("a\x00")})
	require.NoError(t, err)
	b, err := m.Store(ctx, nil, &models.Record{ID: 2, Payload: []byte("b\x00")})
	require.NoError(t, err)
	c, err := m.Store(ctx, nil, &models.Record{ID: 3, Payload: []byte("c\x00")})
	require.NoError(t, err)

	require.NoError(t, m.SetStatus(ctx, a, models.AttrDeleted))
	require.NoError(t, m.SetArchived(ctx, b, true))
	require.NoError(t, m.SetPilotID(ctx, c, 30))

	require.NoError(t, m.Purge(ctx))

	all, err := m.Records(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, uint32(30), all[0].ID)

	require.NoError(t, m.Delete(ctx, a), "deleting a purged record is not an error")

	require.NoError(t, m.DeleteAll(ctx))
	all, err = m.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemo_Archive(t *testing.T) {
	m, ctx := newMemo(t)

	local, err := m.Store(ctx, nil, &models.Record{ID: 1, Payload: []byte("keep me\x00")})
	require.NoError(t, err)
	require.NoError(t, m.ArchiveRemote(ctx, local, &models.Record{ID: 1, Payload: []byte("keep me\x00"), Archived: true}))

	other, err := m.Store(ctx, nil, &models.Record{ID: 2, Payload: []byte("me too\x00")})
	require.NoError(t, err)
	require.NoError(t, m.ArchiveLocal(ctx, other))

	all, err := m.Records(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	archived, err := m.Archived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 2)
	assert.Equal(t, "keep me", string(archived[0].Payload))
	assert.True(t, archived[0].Archived)
	assert.Equal(t, "me too", string(archived[1].Payload))
}

func TestNew_UnknownCharset(t *testing.T) {
	s := storetest.New(t)
	_, err := New(context.Background(), conduit.Deps{Records: s.DesktopRecordRepository},
		models.Pilot{ID: 1}, models.ConduitConfig{Settings: map[string]string{"charset": "klingon"}})
	assert.Error(t, err)
}
