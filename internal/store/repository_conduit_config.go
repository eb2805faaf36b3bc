package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type conduitConfigRepository struct {
	*DB
	logger *logger.Logger
}

// NewConduitConfigRepository constructs a [ConduitConfigRepository].
func NewConduitConfigRepository(db *DB, logger *logger.Logger) ConduitConfigRepository {
	return &conduitConfigRepository{
		DB:     db,
		logger: logger,
	}
}

func scanConduitConfig(row rowScanner) (models.ConduitConfig, error) {
	var c models.ConduitConfig
	var settings []byte
	if err := row.Scan(&c.PilotID, &c.Conduit, &c.Enabled, &c.SyncType, &c.FirstSyncType, &c.FirstSlow, &settings); err != nil {
		return c, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &c.Settings); err != nil {
			return c, fmt.Errorf("decode conduit settings: %w", err)
		}
	}
	return c, nil
}

func (r *conduitConfigRepository) Get(ctx context.Context, pilotID uint32, conduit string) (models.ConduitConfig, error) {
	c, err := scanConduitConfig(r.DB.QueryRowContext(ctx, getConduitConfig, pilotID, conduit))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConduitConfig{}, ErrConduitConfigNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conduitConfigRepository.Get").
			Uint32("pilot_id", pilotID).
			Str("conduit", conduit).
			Msg("failed to get conduit config")
		return models.ConduitConfig{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return c, nil
}

func (r *conduitConfigRepository) ListByPilot(ctx context.Context, pilotID uint32) ([]models.ConduitConfig, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listConduitConfigs, pilotID)
	if err != nil {
		log.Err(err).Str("func", "conduitConfigRepository.ListByPilot").Uint32("pilot_id", pilotID).Msg("failed to query conduit configs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.ConduitConfig
	for rows.Next() {
		c, err := scanConduitConfig(rows)
		if err != nil {
			log.Err(err).Str("func", "conduitConfigRepository.ListByPilot").Msg("failed to scan conduit config row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *conduitConfigRepository) Save(ctx context.Context, c models.ConduitConfig) error {
	settings, err := json.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("encode conduit settings: %w", err)
	}
	if c.Settings == nil {
		settings = []byte("{}")
	}
	if c.FirstSyncType == "" {
		c.FirstSyncType = models.SyncTypeNotSet
	}

	_, err = r.DB.ExecContext(ctx, saveConduitConfig,
		c.PilotID, c.Conduit, c.Enabled, string(c.SyncType), string(c.FirstSyncType), c.FirstSlow, string(settings))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conduitConfigRepository.Save").
			Uint32("pilot_id", c.PilotID).
			Str("conduit", c.Conduit).
			Msg("failed to save conduit config")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *conduitConfigRepository) ClearFirstSync(ctx context.Context, pilotID uint32, conduit string) error {
	if _, err := r.DB.ExecContext(ctx, clearConduitFirstSync, pilotID, conduit); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conduitConfigRepository.ClearFirstSync").
			Uint32("pilot_id", pilotID).
			Str("conduit", conduit).
			Msg("failed to clear first sync override")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
