package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type desktopRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewDesktopRecordRepository constructs a [DesktopRecordRepository].
func NewDesktopRecordRepository(db *DB, logger *logger.Logger) DesktopRecordRepository {
	return &desktopRecordRepository{
		DB:     db,
		logger: logger,
	}
}

func scanDesktopRecord(row rowScanner) (models.LocalRecord, error) {
	var r models.LocalRecord
	var attr string
	err := row.Scan(&r.LocalID, &r.ID, &r.Category, &r.Payload, &attr, &r.Secret, &r.Archived)
	r.Attr = models.RecordAttr(attr)
	return r, err
}

func (r *desktopRecordRepository) List(ctx context.Context, pilotID uint32, db string) ([]models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDesktopRecords, pilotID, db)
	if err != nil {
		log.Err(err).
			Str("func", "desktopRecordRepository.List").
			Uint32("pilot_id", pilotID).
			Str("db", db).
			Msg("failed to query desktop records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]models.LocalRecord, 0, 16)
	for rows.Next() {
		rec, err := scanDesktopRecord(rows)
		if err != nil {
			log.Err(err).Str("func", "desktopRecordRepository.List").Msg("failed to scan desktop record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *desktopRecordRepository) GetByLocalID(ctx context.Context, localID int64) (models.LocalRecord, error) {
	return r.getOne(ctx, getDesktopRecordByLocalID, localID)
}

func (r *desktopRecordRepository) GetByRemoteID(ctx context.Context, pilotID uint32, db string, remoteID uint32) (models.LocalRecord, error) {
	return r.getOne(ctx, getDesktopRecordByRemoteID, pilotID, db, remoteID)
}

func (r *desktopRecordRepository) getOne(ctx context.Context, query string, args ...any) (models.LocalRecord, error) {
	rec, err := scanDesktopRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "desktopRecordRepository.getOne").Msg("failed to get desktop record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return rec, nil
}

func (r *desktopRecordRepository) Insert(ctx context.Context, pilotID uint32, db string, rec models.Record) (int64, error) {
	var localID int64
	err := r.DB.QueryRowContext(ctx, insertDesktopRecord,
		pilotID, db, rec.ID, rec.Category, rec.Payload, string(rec.Attr), rec.Secret, rec.Archived,
	).Scan(&localID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "desktopRecordRepository.Insert").
			Uint32("pilot_id", pilotID).
			Str("db", db).
			Uint32("remote_id", rec.ID).
			Msg("failed to insert desktop record")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return localID, nil
}

func (r *desktopRecordRepository) Update(ctx context.Context, rec models.LocalRecord) error {
	res, err := r.DB.ExecContext(ctx, updateDesktopRecord,
		rec.ID, rec.Category, rec.Payload, string(rec.Attr), rec.Secret, rec.Archived, rec.LocalID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "desktopRecordRepository.Update").
			Int64("local_id", rec.LocalID).
			Msg("failed to update desktop record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *desktopRecordRepository) Delete(ctx context.Context, localID int64) error {
	res, err := r.DB.ExecContext(ctx, deleteDesktopRecord, localID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "desktopRecordRepository.Delete").Int64("local_id", localID).Msg("failed to delete desktop record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *desktopRecordRepository) DeleteAll(ctx context.Context, pilotID uint32, db string) error {
	if _, err := r.DB.ExecContext(ctx, deleteAllDesktopRecords, pilotID, db); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "desktopRecordRepository.DeleteAll").Uint32("pilot_id", pilotID).Str("db", db).Msg("failed to clear desktop records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *desktopRecordRepository) CountMapped(ctx context.Context, pilotID uint32, db string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, countMappedDesktopRecords, pilotID, db).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return n, nil
}
