package pdb

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/models"
)

func TestEncodeDecode_RecordDatabase(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &File{
		Info: models.DBInfo{
			Name:      "MemoDB",
			Type:      "DATA",
			Creator:   "memo",
			Flags:     models.DBFlagBackup,
			Version:   3,
			ModNum:    42,
			CreatedAt: created,
		},
		AppBlock: []byte("categories"),
		Records: []models.Record{
			{ID: 0x10, Category: 2, Payload: []byte("first"), Attr: models.AttrNothing},
			{ID: 0xABCDEF, Payload: []byte("second"), Attr: models.AttrModified, Secret: true},
			{ID: 0x11, Payload: []byte{}, Attr: models.AttrDeleted},
			{ID: 0x12, Payload: []byte("old"), Attr: models.AttrNothing, Archived: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, "MemoDB", out.Info.Name)
	assert.Equal(t, "DATA", out.Info.Type)
	assert.Equal(t, "memo", out.Info.Creator)
	assert.Equal(t, uint16(3), out.Info.Version)
	assert.Equal(t, uint32(42), out.Info.ModNum)
	assert.True(t, created.Equal(out.Info.CreatedAt))
	assert.True(t, out.Info.ModifiedAt.IsZero())
	assert.Equal(t, []byte("categories"), out.AppBlock)

	require.Len(t, out.Records, 4)
	assert.Equal(t, models.Record{ID: 0x10, Category: 2, Payload: []byte("first"), Attr: models.AttrNothing}, out.Records[0])
	assert.Equal(t, models.Record{ID: 0xABCDEF, Payload: []byte("second"), Attr: models.AttrModified, Secret: true}, out.Records[1])
	assert.Equal(t, models.AttrDeleted, out.Records[2].Attr)
	assert.Empty(t, out.Records[2].Payload)
	assert.True(t, out.Records[3].Archived)
	assert.Equal(t, []byte("old"), out.Records[3].Payload)
}

func TestEncodeDecode_ResourceDatabase(t *testing.T) {
	in := &File{
		Info: models.DBInfo{Name: "Game", Type: "appl", Creator: "GAME", Flags: models.DBFlagResource},
		Resources: []models.Resource{
			{Type: "code", ID: 0, Data: []byte{1, 2, 3}},
			{Type: "tAIN", ID: 1000, Data: []byte("Game\x00")},
		},
	}

	path := filepath.Join(t.TempDir(), FileName(in.Info))
	require.NoError(t, WriteFile(path, in))
	assert.Equal(t, ExtResource, filepath.Ext(path))
	assert.True(t, IsImage(path))

	out, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, out.Info.Resource())
	assert.Nil(t, out.AppBlock)
	require.Len(t, out.Resources, 2)
	assert.Equal(t, models.Resource{Type: "code", ID: 0, Index: 0, Data: []byte{1, 2, 3}}, out.Resources[0])
	assert.Equal(t, models.Resource{Type: "tAIN", ID: 1000, Index: 1, Data: []byte("Game\x00")}, out.Resources[1])
}

func TestEncode_NameTooLong(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, &File{Info: models.DBInfo{Name: "a database name that is far too long"}})
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 10)))
	assert.ErrorIs(t, err, ErrShortFile)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &File{
		Info:    models.DBInfo{Name: "x"},
		Records: []models.Record{{ID: 1, Payload: []byte("abc")}},
	}))
	data := buf.Bytes()

	truncated := data[:headerSize+4]
	_, err = Decode(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrShortFile)

	corrupt := append([]byte(nil), data...)
	corrupt[headerSize] = 0xFF
	_, err = Decode(bytes.NewReader(corrupt))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "MemoDB.pdb", FileName(models.DBInfo{Name: "MemoDB"}))
	assert.Equal(t, "a%2Fb%25.prc", FileName(models.DBInfo{Name: "a/b%", Flags: models.DBFlagResource}))
	assert.False(t, IsImage("notes.txt"))
	assert.True(t, IsImage("CLOCK.PRC"))
}
