// Package migrations embeds the goose schema migrations of the sqlite and
// postgres backends.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// Dialects understood by Migrate.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// ErrNilDB is returned when Migrate is called without a connection.
var ErrNilDB = errors.New("db is nil")

// ErrUnknownDialect is returned for a dialect outside the supported set.
var ErrUnknownDialect = errors.New("unknown migration dialect")

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return ErrNilDB
	}

	var gooseDialect string
	switch dialect {
	case DialectSQLite:
		gooseDialect = "sqlite3"
	case DialectPostgres:
		gooseDialect = "postgres"
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
