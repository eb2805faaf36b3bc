package service

import (
	"context"

	"github.com/MKhiriev/go-pilot/models"
)

// PilotService answers the read-only queries about handhelds and cradles.
type PilotService interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetCradles(ctx context.Context) ([]models.Device, error)
	GetPilots(ctx context.Context) ([]models.Pilot, error)
	GetPilotIDs(ctx context.Context) ([]uint32, error)
	GetPilotsByUserName(ctx context.Context, name string) ([]models.Pilot, error)
	GetPilotsByUserLogin(ctx context.Context, login string) ([]models.Pilot, error)
	GetPilotBaseDir(ctx context.Context, pilot string) (string, error)
	GetPilotIDFromName(ctx context.Context, name string) (uint32, error)
	GetPilotNameFromID(ctx context.Context, id uint32) (string, error)
	GetDatabasesFromCache(ctx context.Context, pilot string) ([]models.DBInfo, error)

	// Resolve returns the profile of a connected handheld with its base
	// directory filled in.
	Resolve(ctx context.Context, id uint32) (models.Pilot, error)
	// Candidates returns the profiles a hard-reset handheld may belong to.
	Candidates(ctx context.Context, fp models.Fingerprint) ([]models.Pilot, error)
	// RecordSync persists the sync stamp written to a handheld.
	RecordSync(ctx context.Context, id uint32, stamp models.SyncStamp) error
}

// RequestService turns control requests into queued requests. Every
// operation returns the handle later reported by RequestCompleted.
type RequestService interface {
	RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error)
	RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error)
	RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error)

	GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error)
	GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error)
	SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error)

	RemoveRequest(ctx context.Context, handle int64) error
	ListRequests(ctx context.Context) ([]models.Request, error)
}

// RequestServiceWrapper defines middleware composition for RequestService.
// Implementations wrap an existing RequestService to add behavior such as
// validating.
type RequestServiceWrapper interface {
	Wrap(RequestService) RequestService
}

// AppInfoService reports the daemon version and the PC id it stamps on
// handhelds.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetPCID(ctx context.Context) uint32
}

// RequestQueue is the part of the request queue used to enqueue and cancel.
type RequestQueue interface {
	Store(ctx context.Context, req models.Request) (models.Request, error)
	Remove(ctx context.Context, handle int64) error
	List(ctx context.Context) ([]models.Request, error)
}
