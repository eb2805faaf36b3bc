package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type deviceRepository struct {
	*DB
	logger *logger.Logger
}

// NewDeviceRepository constructs a [DeviceRepository] backed by db.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	return &deviceRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *deviceRepository) List(ctx context.Context) ([]models.Device, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDevices)
	if err != nil {
		log.Err(err).Str("func", "deviceRepository.List").Msg("failed to execute query for devices")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	devices := make([]models.Device, 0, 4)
	for rows.Next() {
		var d models.Device
		var timeoutMS int64
		if err := rows.Scan(&d.Name, &d.Kind, &d.Port, &d.Host, &d.NetPort, &d.Speed, &timeoutMS, &d.Position); err != nil {
			log.Err(err).Str("func", "deviceRepository.List").Msg("failed to scan device row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		d.Timeout = time.Duration(timeoutMS) * time.Millisecond
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return devices, nil
}

func (r *deviceRepository) Save(ctx context.Context, d models.Device) error {
	_, err := r.DB.ExecContext(ctx, saveDevice,
		d.Name, string(d.Kind), d.Port, d.Host, d.NetPort, d.Speed, d.Timeout.Milliseconds(), d.Position)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "deviceRepository.Save").Str("device", d.Name).Msg("failed to save device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *deviceRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.DB.ExecContext(ctx, deleteDevice, name); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "deviceRepository.Delete").Str("device", name).Msg("failed to delete device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
