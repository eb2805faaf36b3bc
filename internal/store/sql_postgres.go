package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/migrations"
)

const (
	// pgMaxConns covers the sync workers plus the control handlers.
	pgMaxConns     = 10
	pgMaxIdleConns = 4
	pgConnLifetime = 30 * time.Minute
)

// NewConnectPostgres opens a pool over pgx for a desktop store shared by
// several daemons.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	pgCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("invalid postgres DSN")
		return nil, fmt.Errorf("invalid postgres DSN: %w", err)
	}
	if _, ok := pgCfg.RuntimeParams["application_name"]; !ok {
		pgCfg.RuntimeParams["application_name"] = "gpilotd"
	}

	conn := stdlib.OpenDB(*pgCfg)
	conn.SetMaxOpenConns(pgMaxConns)
	conn.SetMaxIdleConns(pgMaxIdleConns)
	conn.SetConnMaxLifetime(pgConnLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).
			Str("func", "NewConnectPostgres").
			Str("host", pgCfg.Host).
			Msg("postgres is unreachable")
		return nil, fmt.Errorf("postgres is unreachable: %w", err)
	}
	log.Info().
		Str("func", "NewConnectPostgres").
		Str("host", pgCfg.Host).
		Str("database", pgCfg.Database).
		Msg("connected to postgres")

	return newDB(conn, NewPostgresErrorClassifier(), migrations.DialectPostgres, log), nil
}

// postgresError returns the SQLSTATE carried by err, or "".
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func newDB(conn *sql.DB, classifier ErrorClassificator, dialect string, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		errorClassificator: classifier,
		logger:             log,
		dialect:            dialect,
	}
}
