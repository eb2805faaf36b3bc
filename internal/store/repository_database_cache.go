package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type databaseCacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewDatabaseCacheRepository constructs a [DatabaseCacheRepository].
func NewDatabaseCacheRepository(db *DB, logger *logger.Logger) DatabaseCacheRepository {
	return &databaseCacheRepository{
		DB:     db,
		logger: logger,
	}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// Replace keeps backup times of databases that survive the swap.
func (r *databaseCacheRepository) Replace(ctx context.Context, pilotID uint32, dbs []models.DBInfo) error {
	previous, err := r.List(ctx, pilotID)
	if err != nil {
		return err
	}
	backups := make(map[string]time.Time, len(previous))
	for _, p := range previous {
		backups[p.Name] = p.BackupAt
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteDatabaseCache, pilotID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		for i, db := range dbs {
			backupAt := db.BackupAt
			if backupAt.IsZero() {
				backupAt = backups[db.Name]
			}
			_, err := tx.ExecContext(ctx, insertDatabaseCache,
				pilotID,
				db.Name,
				db.Type,
				db.Creator,
				int64(db.Flags),
				int64(db.Version),
				int64(db.ModNum),
				nullTime(db.CreatedAt),
				nullTime(db.ModifiedAt),
				nullTime(backupAt),
				i,
			)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "databaseCacheRepository.Replace").
			Uint32("pilot_id", pilotID).
			Int("count", len(dbs)).
			Msg("failed to replace database cache")
		return err
	}
	return nil
}

func (r *databaseCacheRepository) List(ctx context.Context, pilotID uint32) ([]models.DBInfo, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDatabaseCache, pilotID)
	if err != nil {
		log.Err(err).Str("func", "databaseCacheRepository.List").Uint32("pilot_id", pilotID).Msg("failed to query database cache")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.DBInfo
	for rows.Next() {
		var (
			db                   models.DBInfo
			owner                uint32
			created, mod, backup sql.NullTime
		)
		err := rows.Scan(&owner, &db.Name, &db.Type, &db.Creator, &db.Flags, &db.Version, &db.ModNum,
			&created, &mod, &backup, &db.Index)
		if err != nil {
			log.Err(err).Str("func", "databaseCacheRepository.List").Msg("failed to scan database cache row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		db.CreatedAt, db.ModifiedAt, db.BackupAt = created.Time, mod.Time, backup.Time
		out = append(out, db)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *databaseCacheRepository) MarkBackedUp(ctx context.Context, pilotID uint32, name string, at time.Time) error {
	if _, err := r.DB.ExecContext(ctx, markDatabaseBackedUp, at, pilotID, name); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "databaseCacheRepository.MarkBackedUp").
			Uint32("pilot_id", pilotID).
			Str("db", name).
			Msg("failed to mark database backed up")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
