package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

// pilotRepository is the SQL implementation of [PilotRepository].
type pilotRepository struct {
	*DB
	logger *logger.Logger
}

// NewPilotRepository constructs a [PilotRepository] backed by db.
func NewPilotRepository(db *DB, logger *logger.Logger) PilotRepository {
	logger.Debug().Msg("creating pilot repository")
	return &pilotRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPilot(row rowScanner) (models.Pilot, error) {
	var p models.Pilot
	var lastSync sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.UserName,
		&p.UserLogin,
		&p.Password,
		&p.Creation,
		&p.ROMVersion,
		&p.BaseDir,
		&p.Charset,
		&p.Number,
		&p.SyncPCID,
		&lastSync,
	)
	if lastSync.Valid {
		t := lastSync.Time
		p.LastSyncAt = &t
	}
	return p, err
}

func (r *pilotRepository) List(ctx context.Context) ([]models.Pilot, error) {
	return r.query(ctx, "pilotRepository.List", listPilots)
}

func (r *pilotRepository) FindByFingerprint(ctx context.Context, fp models.Fingerprint) ([]models.Pilot, error) {
	return r.query(ctx, "pilotRepository.FindByFingerprint", findPilotsByFingerprint, fp.Creation, fp.ROMVersion)
}

func (r *pilotRepository) query(ctx context.Context, fn, query string, args ...any) ([]models.Pilot, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query for pilots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	pilots := make([]models.Pilot, 0, 4)
	for rows.Next() {
		p, scanErr := scanPilot(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan pilot row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		pilots = append(pilots, p)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pilots, nil
}

func (r *pilotRepository) Get(ctx context.Context, id uint32) (models.Pilot, error) {
	return r.getOne(ctx, "pilotRepository.Get", getPilot, id)
}

func (r *pilotRepository) GetByName(ctx context.Context, name string) (models.Pilot, error) {
	return r.getOne(ctx, "pilotRepository.GetByName", getPilotByName, name)
}

func (r *pilotRepository) getOne(ctx context.Context, fn, query string, arg any) (models.Pilot, error) {
	p, err := scanPilot(r.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pilot{}, ErrPilotNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Any("key", arg).Msg("failed to get pilot")
		return models.Pilot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return p, nil
}

// Save inserts or replaces the profile with pilot.ID.
//
// Returns [ErrPilotNameTaken] when another profile already uses the name.
func (r *pilotRepository) Save(ctx context.Context, pilot models.Pilot) error {
	_, err := r.DB.ExecContext(ctx, savePilot,
		pilot.ID,
		pilot.Name,
		pilot.UserName,
		pilot.UserLogin,
		pilot.Password,
		pilot.Creation,
		pilot.ROMVersion,
		pilot.BaseDir,
		pilot.Charset,
		pilot.Number,
		pilot.SyncPCID,
		pilot.LastSyncAt,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "pilotRepository.Save").
			Uint32("pilot_id", pilot.ID).
			Msg("failed to save pilot")
		if isUniqueViolation(err) {
			return ErrPilotNameTaken
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *pilotRepository) Delete(ctx context.Context, id uint32) error {
	res, err := r.DB.ExecContext(ctx, deletePilot, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "pilotRepository.Delete").Uint32("pilot_id", id).Msg("failed to delete pilot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPilotNotFound
	}
	return nil
}

// SetSyncStamp writes the sync stamp after a session.
func (r *pilotRepository) SetSyncStamp(ctx context.Context, id uint32, stamp models.SyncStamp) error {
	res, err := r.DB.ExecContext(ctx, setPilotSyncStamp, stamp.PCID, stamp.At, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "pilotRepository.SetSyncStamp").
			Uint32("pilot_id", id).
			Msg("failed to write sync stamp")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPilotNotFound
	}
	return nil
}
