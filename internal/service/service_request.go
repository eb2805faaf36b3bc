package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

type requestService struct {
	queue            RequestQueue
	pilotRepository  store.PilotRepository
	deviceRepository store.DeviceRepository

	logger *logger.Logger
}

func NewRequestService(q RequestQueue, pilots store.PilotRepository, devices store.DeviceRepository, logger *logger.Logger) RequestService {
	return &requestService{
		queue:            q,
		pilotRepository:  pilots,
		deviceRepository: devices,
		logger:           logger,
	}
}

func (s *requestService) RequestInstall(ctx context.Context, req models.InstallRequest) (int64, error) {
	pilot, err := s.pilot(ctx, req.Pilot)
	if err != nil {
		return 0, err
	}
	return s.store(ctx, models.Request{
		Type:        models.RequestInstall,
		Bucket:      models.PilotBucket(pilot.ID),
		Persistence: req.Persistence,
		Timeout:     models.TimeoutDuration(req.Timeout),
		Params: models.RequestParams{
			Filename:    req.File,
			Description: req.Description,
		},
	})
}

func (s *requestService) RequestRestore(ctx context.Context, req models.RestoreRequest) (int64, error) {
	pilot, err := s.pilot(ctx, req.Pilot)
	if err != nil {
		return 0, err
	}
	return s.store(ctx, models.Request{
		Type:        models.RequestRestore,
		Bucket:      models.PilotBucket(pilot.ID),
		Persistence: req.Persistence,
		Timeout:     models.TimeoutDuration(req.Timeout),
		Params:      models.RequestParams{Directory: req.Directory},
	})
}

func (s *requestService) RequestConduit(ctx context.Context, req models.ConduitRunRequest) (int64, error) {
	syncType, err := req.Operation.SyncType()
	if err != nil {
		return 0, err
	}
	pilot, err := s.pilot(ctx, req.Pilot)
	if err != nil {
		return 0, err
	}
	return s.store(ctx, models.Request{
		Type:        models.RequestConduit,
		Bucket:      models.PilotBucket(pilot.ID),
		Persistence: req.Persistence,
		Timeout:     models.TimeoutDuration(req.Timeout),
		Params: models.RequestParams{
			Conduit:  req.Conduit,
			SyncType: syncType,
		},
	})
}

func (s *requestService) GetSystemInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return s.cradleRequest(ctx, models.RequestGetSysInfo, req)
}

func (s *requestService) GetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return s.cradleRequest(ctx, models.RequestGetUserInfo, req)
}

func (s *requestService) SetUserInfo(ctx context.Context, req models.CradleRequest) (int64, error) {
	return s.cradleRequest(ctx, models.RequestSetUserInfo, req)
}

func (s *requestService) RemoveRequest(ctx context.Context, handle int64) error {
	err := s.queue.Remove(ctx, handle)
	if errors.Is(err, queue.ErrNotFound) {
		return fmt.Errorf("%w: handle %d", ErrRequestNotQueued, handle)
	}
	return err
}

func (s *requestService) ListRequests(ctx context.Context) ([]models.Request, error) {
	return s.queue.List(ctx)
}

func (s *requestService) cradleRequest(ctx context.Context, typ models.RequestType, req models.CradleRequest) (int64, error) {
	if err := s.cradle(ctx, req.Cradle); err != nil {
		return 0, err
	}

	params := models.RequestParams{ContinueSync: req.ContinueSync}
	if typ == models.RequestSetUserInfo {
		params.UserInfo = req.UserInfo
	}
	return s.store(ctx, models.Request{
		Type:        typ,
		Bucket:      models.SystemBucketKey(),
		Cradle:      req.Cradle,
		Persistence: req.Persistence,
		Timeout:     models.TimeoutDuration(req.Timeout),
		Params:      params,
	})
}

func (s *requestService) store(ctx context.Context, req models.Request) (int64, error) {
	stored, err := s.queue.Store(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "requestService.store").
			Str("type", string(req.Type)).
			Str("bucket", req.Bucket.String()).
			Msg("failed to queue request")
		return 0, err
	}

	s.logger.Info().
		Str("func", "requestService.store").
		Str("type", string(stored.Type)).
		Str("bucket", stored.Bucket.String()).
		Int64("handle", stored.Handle).
		Msg("request queued")
	return stored.Handle, nil
}

func (s *requestService) pilot(ctx context.Context, name string) (models.Pilot, error) {
	p, err := s.pilotRepository.GetByName(ctx, name)
	if errors.Is(err, store.ErrPilotNotFound) {
		return models.Pilot{}, fmt.Errorf("%w: %q", ErrUnknownPilot, name)
	}
	return p, err
}

func (s *requestService) cradle(ctx context.Context, name string) error {
	devices, err := s.deviceRepository.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range devices {
		if d.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCradle, name)
}
