package pdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/dlp/memdevice"
	"github.com/MKhiriev/go-pilot/models"
)

func TestFetchInstall_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := memdevice.New(models.UserInfo{UserID: 1}, models.SysInfo{})
	db := src.AddDB(models.DBInfo{Name: "ToDoDB", Type: "DATA", Creator: "todo"})
	db.Put(models.Record{ID: 0x20, Payload: []byte("buy milk")})
	db.Put(models.Record{ID: 0x21, Payload: []byte("call home"), Category: 1})
	db.Put(models.Record{ID: 0x22, Payload: []byte("gone"), Attr: models.AttrDeleted})
	db.SetAppBlock([]byte("cats"))

	f, err := Fetch(ctx, src, db.Info)
	require.NoError(t, err)
	assert.Len(t, f.Records, 3)
	assert.Equal(t, []byte("cats"), f.AppBlock)

	dst := memdevice.New(models.UserInfo{UserID: 1}, models.SysInfo{})
	stale := dst.AddDB(models.DBInfo{Name: "ToDoDB", Type: "DATA", Creator: "todo"})
	stale.Put(models.Record{ID: 0x99, Payload: []byte("stale")})

	require.NoError(t, Install(ctx, dst, f))

	installed := dst.DB("ToDoDB")
	require.NotNil(t, installed)
	assert.Equal(t, []uint32{0x20, 0x21}, installed.SortedIDs())
	assert.Equal(t, []byte("call home"), installed.Record(0x21).Payload)
}

func TestFetchInstall_Resources(t *testing.T) {
	ctx := context.Background()
	src := memdevice.New(models.UserInfo{}, models.SysInfo{})
	app := src.AddDB(models.DBInfo{Name: "Clock", Type: "appl", Creator: "CLK1", Flags: models.DBFlagResource})
	app.PutResource(models.Resource{Type: "code", ID: 1, Data: []byte{0xCA, 0xFE}})

	f, err := Fetch(ctx, src, app.Info)
	require.NoError(t, err)
	require.Len(t, f.Resources, 1)
	assert.Nil(t, f.AppBlock)

	dst := memdevice.New(models.UserInfo{}, models.SysInfo{})
	require.NoError(t, Install(ctx, dst, f))
	assert.Equal(t, []byte{0xCA, 0xFE}, dst.DB("Clock").Resources()[0].Data)
}

func TestFetch_UnknownDatabase(t *testing.T) {
	dev := memdevice.New(models.UserInfo{}, models.SysInfo{})
	_, err := Fetch(context.Background(), dev, models.DBInfo{Name: "Nope"})
	assert.Error(t, err)
}
