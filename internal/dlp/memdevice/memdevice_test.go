package memdevice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

func TestDevice_DBListPaging(t *testing.T) {
	ctx := context.Background()
	dev := New(models.UserInfo{}, models.SysInfo{})
	for i := 0; i < PageSize+3; i++ {
		dev.AddDB(models.DBInfo{Name: string(rune('A' + i))})
	}

	first, err := dev.ReadDBList(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, first, PageSize)

	second, err := dev.ReadDBList(ctx, PageSize)
	require.NoError(t, err)
	assert.Len(t, second, 3)
	assert.Equal(t, PageSize, second[0].Index)

	_, err = dev.ReadDBList(ctx, PageSize+3)
	assert.ErrorIs(t, err, dlp.ErrNotFound)
}

func TestDevice_FlagsAndCleanup(t *testing.T) {
	ctx := context.Background()
	dev := New(models.UserInfo{}, models.SysInfo{})
	mem := dev.AddDB(models.DBInfo{Name: "MemoDB"})
	mem.Put(models.Record{ID: 1, Attr: models.AttrModified})
	mem.Put(models.Record{ID: 2, Attr: models.AttrDeleted})
	mem.Put(models.Record{ID: 3, Archived: true})
	mem.Put(models.Record{ID: 4})

	db, err := dev.OpenDB(ctx, "MemoDB", dlp.ModeReadWrite)
	require.NoError(t, err)

	var changed []uint32
	for {
		rec, err := db.ReadNextModified(ctx)
		if err != nil {
			assert.ErrorIs(t, err, dlp.ErrNotFound)
			break
		}
		changed = append(changed, rec.ID)
	}
	assert.Equal(t, []uint32{1, 2, 3}, changed)

	require.NoError(t, db.CleanUpDatabase(ctx))
	require.NoError(t, db.ResetSyncFlags(ctx))
	assert.Equal(t, []uint32{1, 4}, mem.SortedIDs())
	assert.Equal(t, models.AttrNothing, mem.Record(1).Attr)
}

func TestDevice_WriteAssignsIDs(t *testing.T) {
	ctx := context.Background()
	dev := New(models.UserInfo{}, models.SysInfo{})
	dev.AddDB(models.DBInfo{Name: "MemoDB"})
	dev.AddDB(models.DBInfo{Name: "ROM", Flags: models.DBFlagReadOnly})

	db, err := dev.OpenDB(ctx, "MemoDB", dlp.ModeReadWrite)
	require.NoError(t, err)

	a, err := db.WriteRecord(ctx, models.Record{Payload: []byte("a"), Attr: models.AttrModified})
	require.NoError(t, err)
	b, err := db.WriteRecord(ctx, models.Record{Payload: []byte("b")})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	got, err := db.ReadRecordByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, models.AttrNothing, got.Attr, "written records are clean")

	_, err = dev.OpenDB(ctx, "ROM", dlp.ModeReadWrite)
	assert.ErrorIs(t, err, dlp.ErrReadOnly)

	_, err = dev.CreateDB(ctx, models.DBInfo{Name: "MemoDB"})
	assert.ErrorIs(t, err, dlp.ErrExists)
	require.NoError(t, dev.DeleteDB(ctx, "ROM"))
	assert.Equal(t, []string{"MemoDB"}, dev.Names())
}
