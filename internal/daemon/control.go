package daemon

import (
	"context"

	"github.com/MKhiriev/go-pilot/models"
)

// Control is the operation surface of a running daemon.
type Control interface {
	Pause(ctx context.Context, on bool) error
	RereadConfig(ctx context.Context) error
	Noop(ctx context.Context) error
	Status(ctx context.Context) (Status, error)

	RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error)
	RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error)
	RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error)
	RemoveRequest(ctx context.Context, handle int64) error
	ListRequests(ctx context.Context) ([]models.Request, error)

	GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error)
	GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error)
	SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error)

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
}

// Status is the reply of Status.
type Status struct {
	State   State    `json:"state"`
	Paused  bool     `json:"paused"`
	Cradles []string `json:"cradles"`
	Parked  int      `json:"parked"`
}

var _ Control = (*Daemon)(nil)

// Pause detaches every transport. Activity arriving meanwhile is kept and
// served right after unpause.
func (d *Daemon) Pause(ctx context.Context, on bool) error {
	return d.Do(ctx, func(ctx context.Context) error { return d.pause(ctx, on) })
}

// RereadConfig rebuilds the transports from the persisted cradle list.
func (d *Daemon) RereadConfig(ctx context.Context) error {
	return d.Do(ctx, d.reread)
}

// Noop round-trips through the reactor; it returns once any running
// session is over.
func (d *Daemon) Noop(ctx context.Context) error {
	return d.Do(ctx, func(context.Context) error { return nil })
}

func (d *Daemon) Status(ctx context.Context) (Status, error) {
	var st Status
	err := d.Do(ctx, func(context.Context) error {
		st = Status{
			State:   d.State(),
			Paused:  d.paused,
			Cradles: make([]string, 0, len(d.cradles)),
			Parked:  len(d.backlog),
		}
		for _, c := range d.cradles {
			st.Cradles = append(st.Cradles, c.Name())
		}
		return nil
	})
	return st, err
}

// Request operations go straight to the queue; it is safe for concurrent
// use and a session in progress picks changes up on its next read.

func (d *Daemon) RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error) {
	return d.requests.RequestInstall(ctx, req)
}

func (d *Daemon) RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error) {
	return d.requests.RequestRestore(ctx, req)
}

func (d *Daemon) RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error) {
	return d.requests.RequestConduit(ctx, req)
}

func (d *Daemon) RemoveRequest(ctx context.Context, handle int64) error {
	return d.requests.RemoveRequest(ctx, handle)
}

func (d *Daemon) ListRequests(ctx context.Context) ([]models.Request, error) {
	return d.requests.ListRequests(ctx)
}

func (d *Daemon) GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return d.requests.GetSystemInfo(ctx, req)
}

func (d *Daemon) GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return d.requests.GetUserInfo(ctx, req)
}

func (d *Daemon) SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return d.requests.SetUserInfo(ctx, req)
}

func (d *Daemon) GetUsers(ctx context.Context) ([]models.User, error) {
	return d.pilots.GetUsers(ctx)
}

func (d *Daemon) GetCradles(ctx context.Context) ([]models.Device, error) {
	return d.pilots.GetCradles(ctx)
}

func (d *Daemon) GetPilots(ctx context.Context) ([]models.Pilot, error) {
	return d.pilots.GetPilots(ctx)
}

func (d *Daemon) GetPilotIDs(ctx context.Context) ([]uint32, error) {
	return d.pilots.GetPilotIDs(ctx)
}

func (d *Daemon) GetPilotsByUserName(ctx context.Context, name string) ([]models.Pilot, error) {
	return d.pilots.GetPilotsByUserName(ctx, name)
}

func (d *Daemon) GetPilotsByUserLogin(ctx context.Context, login string) ([]models.Pilot, error) {
	return d.pilots.GetPilotsByUserLogin(ctx, login)
}

func (d *Daemon) GetPilotBaseDir(ctx context.Context, pilot string) (string, error) {
	return d.pilots.GetPilotBaseDir(ctx, pilot)
}

func (d *Daemon) GetPilotIDFromName(ctx context.Context, name string) (uint32, error) {
	return d.pilots.GetPilotIDFromName(ctx, name)
}

func (d *Daemon) GetPilotNameFromID(ctx context.Context, id uint32) (string, error) {
	return d.pilots.GetPilotNameFromID(ctx, id)
}

func (d *Daemon) GetDatabasesFromCache(ctx context.Context, pilot string) ([]models.DBInfo, error) {
	return d.pilots.GetDatabasesFromCache(ctx, pilot)
}
