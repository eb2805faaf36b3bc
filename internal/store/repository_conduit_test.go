package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

func TestConduitConfigRepository_SQLite(t *testing.T) {
	ctx := testContext()
	repo := NewConduitConfigRepository(newSQLiteDB(t), logger.Nop())

	_, err := repo.Get(ctx, 1, "memo")
	assert.ErrorIs(t, err, ErrConduitConfigNotFound)

	cfg := models.ConduitConfig{
		PilotID:       1,
		Conduit:       "memo",
		Enabled:       true,
		SyncType:      models.SyncTypeSynchronize,
		FirstSyncType: models.SyncTypeCopyFromPilot,
		FirstSlow:     true,
		Settings:      map[string]string{"charset": "cp1252"},
	}
	require.NoError(t, repo.Save(ctx, cfg))

	got, err := repo.Get(ctx, 1, "memo")
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.True(t, got.HasFirstSync())

	require.NoError(t, repo.ClearFirstSync(ctx, 1, "memo"))
	got, err = repo.Get(ctx, 1, "memo")
	require.NoError(t, err)
	assert.Equal(t, models.SyncTypeNotSet, got.FirstSyncType)
	assert.False(t, got.FirstSlow)

	require.NoError(t, repo.Save(ctx, models.ConduitConfig{PilotID: 1, Conduit: "backup", Enabled: true, SyncType: models.SyncTypeSynchronize}))
	list, err := repo.ListByPilot(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "backup", list[0].Conduit)
}

func TestDatabaseCacheRepository_SQLite(t *testing.T) {
	ctx := testContext()
	repo := NewDatabaseCacheRepository(newSQLiteDB(t), logger.Nop())
	backup := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Replace(ctx, 5, []models.DBInfo{
		{Name: "MemoDB", Type: "DATA", Creator: "memo"},
		{Name: "AddressDB", Type: "DATA", Creator: "addr"},
	}))
	require.NoError(t, repo.MarkBackedUp(ctx, 5, "MemoDB", backup))

	require.NoError(t, repo.Replace(ctx, 5, []models.DBInfo{
		{Name: "MemoDB", Type: "DATA", Creator: "memo", ModNum: 3},
	}))

	list, err := repo.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MemoDB", list[0].Name)
	assert.Equal(t, uint32(3), list[0].ModNum)
	assert.True(t, backup.Equal(list[0].BackupAt), "backup time survives the swap")

	other, err := repo.List(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDesktopRecordRepository_SQLite(t *testing.T) {
	ctx := testContext()
	repo := NewDesktopRecordRepository(newSQLiteDB(t), logger.Nop())

	id, err := repo.Insert(ctx, 1, "MemoDB", models.Record{ID: 7, Category: 2, Payload: []byte("hello"), Attr: models.AttrNothing})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, 1, "MemoDB", models.Record{Payload: []byte("desktop only"), Attr: models.AttrModified})
	require.NoError(t, err)

	n, err := repo.CountMapped(ctx, 1, "MemoDB")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := repo.GetByRemoteID(ctx, 1, "MemoDB", 7)
	require.NoError(t, err)
	assert.Equal(t, id, rec.LocalID)
	assert.Equal(t, []byte("hello"), rec.Payload)

	rec.Attr = models.AttrModified
	rec.Archived = true
	require.NoError(t, repo.Update(ctx, rec))
	got, err := repo.GetByLocalID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	assert.Equal(t, models.AttrModified, got.Attr)

	list, err := repo.List(ctx, 1, "MemoDB")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrRecordNotFound)
	_, err = repo.GetByRemoteID(ctx, 1, "MemoDB", 7)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, repo.DeleteAll(ctx, 1, "MemoDB"))
	list, err = repo.List(ctx, 1, "MemoDB")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewConnect_UnknownDriver(t *testing.T) {
	_, err := NewConnect(testContext(), configDB("oracle"), logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()
	assert.Equal(t, NonRetryable, c.Classify(assert.AnError))
	assert.Equal(t, NonRetryable, c.Classify(nil))
}
