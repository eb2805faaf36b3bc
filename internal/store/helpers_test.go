package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &DB{DB: db, errorClassificator: NewPostgresErrorClassifier(), logger: logger.Nop()}, mock
}

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnectSQLite(testContext(), config.DB{DSN: filepath.Join(t.TempDir(), "gpilot.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return db
}

func configDB(driver string) config.DB {
	return config.DB{Driver: driver}
}

func sqlmockResult() driver.Result {
	return sqlmock.NewResult(0, 1)
}
