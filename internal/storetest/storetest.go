// Package storetest opens throwaway sqlite storages for tests of packages
// that sit on top of internal/store.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
)

// New returns migrated storages backed by a sqlite file in t.TempDir().
// The connection is closed on test cleanup.
func New(t testing.TB) *store.Storages {
	t.Helper()

	log := logger.Nop()
	db, err := store.NewConnectSQLite(context.Background(), config.DB{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "gpilot.db"),
	}, log)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	s := store.NewStorages(db, log)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
