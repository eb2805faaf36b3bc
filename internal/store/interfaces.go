package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pilot/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PilotRepository persists handheld profiles.
type PilotRepository interface {
	// List returns every profile ordered by number, then name.
	List(ctx context.Context) ([]models.Pilot, error)
	Get(ctx context.Context, id uint32) (models.Pilot, error)
	GetByName(ctx context.Context, name string) (models.Pilot, error)
	// FindByFingerprint returns the profiles whose creation and rom version
	// match fp, used to restore the identity of a hard-reset handheld.
	FindByFingerprint(ctx context.Context, fp models.Fingerprint) ([]models.Pilot, error)
	Save(ctx context.Context, pilot models.Pilot) error
	Delete(ctx context.Context, id uint32) error
	SetSyncStamp(ctx context.Context, id uint32, stamp models.SyncStamp) error
}

// DeviceRepository persists cradle configurations.
type DeviceRepository interface {
	// List returns every cradle ordered by position.
	List(ctx context.Context) ([]models.Device, error)
	Save(ctx context.Context, device models.Device) error
	Delete(ctx context.Context, name string) error
}

// RequestRepository persists the request queue. Rows are stored undecoded so
// that a malformed entry can be skipped by the caller.
type RequestRepository interface {
	// Insert allocates the next sequence of row.Bucket, stores the row under
	// handle handleBase+seq and returns it with Seq and Handle set.
	Insert(ctx context.Context, row RequestRow, handleBase int64) (RequestRow, error)
	Get(ctx context.Context, handle int64) (RequestRow, error)
	// List returns rows matching filter in FIFO order (bucket, seq).
	List(ctx context.Context, filter RequestFilter) ([]RequestRow, error)
	// Delete removes a row and decrements its bucket count.
	Delete(ctx context.Context, handle int64) (RequestRow, error)
	// ListExpired returns the handles whose expiry is at or before now.
	ListExpired(ctx context.Context, now time.Time) ([]int64, error)
	Bucket(ctx context.Context, bucket string) (BucketState, error)
}

// ConduitConfigRepository persists per-pilot conduit configuration.
type ConduitConfigRepository interface {
	Get(ctx context.Context, pilotID uint32, conduit string) (models.ConduitConfig, error)
	ListByPilot(ctx context.Context, pilotID uint32) ([]models.ConduitConfig, error)
	Save(ctx context.Context, cfg models.ConduitConfig) error
	// ClearFirstSync consumes the one-time first sync override.
	ClearFirstSync(ctx context.Context, pilotID uint32, conduit string) error
}

// DatabaseCacheRepository persists the per-pilot database list seen during
// the last session.
type DatabaseCacheRepository interface {
	// Replace atomically swaps the cached list of pilotID for dbs.
	Replace(ctx context.Context, pilotID uint32, dbs []models.DBInfo) error
	List(ctx context.Context, pilotID uint32) ([]models.DBInfo, error)
	// MarkBackedUp records the time a database was last backed up.
	MarkBackedUp(ctx context.Context, pilotID uint32, name string, at time.Time) error
}

// DesktopRecordRepository persists desktop-side records of the memo conduit
// and of any other conduit that keeps its copy in the database.
type DesktopRecordRepository interface {
	List(ctx context.Context, pilotID uint32, db string) ([]models.LocalRecord, error)
	GetByLocalID(ctx context.Context, localID int64) (models.LocalRecord, error)
	GetByRemoteID(ctx context.Context, pilotID uint32, db string, remoteID uint32) (models.LocalRecord, error)
	// Insert stores a new record and returns its local id.
	Insert(ctx context.Context, pilotID uint32, db string, rec models.Record) (int64, error)
	Update(ctx context.Context, rec models.LocalRecord) error
	Delete(ctx context.Context, localID int64) error
	DeleteAll(ctx context.Context, pilotID uint32, db string) error
	// CountMapped returns the number of records carrying a device id.
	CountMapped(ctx context.Context, pilotID uint32, db string) (int, error)
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
