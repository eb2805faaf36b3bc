package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/dlp/memdevice"
	"github.com/MKhiriev/go-pilot/internal/storetest"
	"github.com/MKhiriev/go-pilot/models"
)

func seedDevice() *memdevice.Device {
	dev := memdevice.New(models.UserInfo{UserID: 1}, models.SysInfo{})
	memo := dev.AddDB(models.DBInfo{Name: "MemoDB", Type: "DATA", Creator: "memo", ModNum: 4})
	memo.Put(models.Record{ID: 1, Payload: []byte("one\x00")})
	memo.Put(models.Record{ID: 2, Payload: []byte("two\x00")})
	app := dev.AddDB(models.DBInfo{Name: "Clock", Type: "appl", Creator: "CLK1", Flags: models.DBFlagResource, ModNum: 1})
	app.PutResource(models.Resource{Type: "code", ID: 1, Data: []byte{1}})
	return dev
}

func newBackup(t *testing.T, pilot models.Pilot, settings map[string]string, deps conduit.Deps) *Conduit {
	t.Helper()
	c, err := New(context.Background(), deps, pilot, models.ConduitConfig{Settings: settings})
	require.NoError(t, err)
	return c.(*Conduit)
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()
	pilot := models.Pilot{ID: 3, BaseDir: t.TempDir()}
	dev := seedDevice()
	c := newBackup(t, pilot, nil, conduit.Deps{})

	assert.Equal(t, filepath.Join(pilot.BaseDir, "backup"), c.Dir())
	for _, name := range []string{"MemoDB", "Clock"} {
		db := dev.DB(name)
		require.True(t, c.ShouldBackup(db.Info))
		require.NoError(t, c.Backup(ctx, dev, db.Info))
	}

	files, err := Images(c.Dir())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(c.Dir(), "Clock.prc"),
		filepath.Join(c.Dir(), "MemoDB.pdb"),
	}, files)

	fresh := memdevice.New(models.UserInfo{}, models.SysInfo{})
	var calls [][2]int
	require.NoError(t, c.Restore(ctx, fresh, "", func(cur, total int) {
		calls = append(calls, [2]int{cur, total})
	}))

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
	assert.ElementsMatch(t, []string{"Clock", "MemoDB"}, fresh.Names())
	assert.Equal(t, []uint32{1, 2}, fresh.DB("MemoDB").SortedIDs())
	assert.Len(t, fresh.DB("Clock").Resources(), 1)
}

func TestRestore_ContinuesPastBadFile(t *testing.T) {
	ctx := context.Background()
	pilot := models.Pilot{ID: 3, BaseDir: t.TempDir()}
	dev := seedDevice()
	c := newBackup(t, pilot, nil, conduit.Deps{})
	require.NoError(t, c.Backup(ctx, dev, dev.DB("MemoDB").Info))
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir(), "Broken.pdb"), []byte("junk"), 0o600))

	fresh := memdevice.New(models.UserInfo{}, models.SysInfo{})
	err := c.Restore(ctx, fresh, c.Dir(), nil)
	assert.ErrorContains(t, err, "Broken.pdb")
	assert.Equal(t, []string{"MemoDB"}, fresh.Names())
}

func TestRestore_MissingDir(t *testing.T) {
	c := newBackup(t, models.Pilot{BaseDir: t.TempDir()}, nil, conduit.Deps{})
	err := c.Restore(context.Background(), memdevice.New(models.UserInfo{}, models.SysInfo{}), "", nil)
	assert.Error(t, err)
}

func TestShouldBackup_Settings(t *testing.T) {
	ctx := context.Background()
	s := storetest.New(t)
	pilot := models.Pilot{ID: 5, BaseDir: t.TempDir()}
	dev := seedDevice()

	memo := dev.DB("MemoDB").Info
	clock := dev.DB("Clock").Info
	require.NoError(t, s.DatabaseCacheRepository.Replace(ctx, pilot.ID, []models.DBInfo{memo, clock}))

	deps := conduit.Deps{Cache: s.DatabaseCacheRepository}
	first := newBackup(t, pilot, map[string]string{SettingOnlyChanged: "true"}, deps)
	assert.True(t, first.ShouldBackup(memo), "no backup file yet")
	require.NoError(t, first.Backup(ctx, dev, memo))

	cached, err := s.DatabaseCacheRepository.List(ctx, pilot.ID)
	require.NoError(t, err)
	assert.False(t, cached[0].BackupAt.IsZero())

	second := newBackup(t, pilot, map[string]string{SettingOnlyChanged: "true", SettingExclude: "Clock, Graffiti"}, deps)
	assert.False(t, second.ShouldBackup(memo), "unchanged since last session")
	memo.ModNum++
	assert.True(t, second.ShouldBackup(memo))
	assert.False(t, second.ShouldBackup(clock), "excluded")
}
