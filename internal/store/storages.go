package store

import "github.com/MKhiriev/go-pilot/internal/logger"

// Storages aggregates every repository of one database.
type Storages struct {
	DB                      *DB
	PilotRepository         PilotRepository
	DeviceRepository        DeviceRepository
	RequestRepository       RequestRepository
	ConduitConfigRepository ConduitConfigRepository
	DatabaseCacheRepository DatabaseCacheRepository
	DesktopRecordRepository DesktopRecordRepository
}

// NewStorages builds every repository on db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                      db,
		PilotRepository:         NewPilotRepository(db, log),
		DeviceRepository:        NewDeviceRepository(db, log),
		RequestRepository:       NewRequestRepository(db, log),
		ConduitConfigRepository: NewConduitConfigRepository(db, log),
		DatabaseCacheRepository: NewDatabaseCacheRepository(db, log),
		DesktopRecordRepository: NewDesktopRecordRepository(db, log),
	}
}

// Close closes the underlying connection.
func (s *Storages) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
