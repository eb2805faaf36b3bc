// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

type pilotService struct {
	pilotRepository  store.PilotRepository
	deviceRepository store.DeviceRepository
	cacheRepository  store.DatabaseCacheRepository
	baseDir          string

	logger *logger.Logger
}

func NewPilotService(pilots store.PilotRepository, devices store.DeviceRepository, cache store.DatabaseCacheRepository, cfg config.Storage, logger *logger.Logger) PilotService {
	return &pilotService{
		pilotRepository:  pilots,
		deviceRepository: devices,
		cacheRepository:  cache,
		baseDir:          cfg.BaseDir,
		logger:           logger,
	}
}

// GetUsers returns the distinct owners of the known profiles in profile
// order.
func (s *pilotService) GetUsers(ctx context.Context) ([]models.User, error) {
	pilots, err := s.pilotRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.User]bool, len(pilots))
	users := make([]models.User, 0, len(pilots))
	for _, p := range pilots {
		u := models.User{Name: p.UserName, Login: p.UserLogin}
		if seen[u] {
			continue
		}
		seen[u] = true
		users = append(users, u)
	}
	return users, nil
}

func (s *pilotService) GetCradles(ctx context.Context) ([]models.Device, error) {
	return s.deviceRepository.List(ctx)
}

func (s *pilotService) GetPilots(ctx context.Context) ([]models.Pilot, error) {
	pilots, err := s.pilotRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pilots {
		pilots[i].BaseDir = s.baseDirOf(pilots[i])
	}
	return pilots, nil
}

func (s *pilotService) GetPilotIDs(ctx context.Context) ([]uint32, error) {
	pilots, err := s.pilotRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, 0, len(pilots))
	for _, p := range pilots {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (s *pilotService) GetPilotsByUserName(ctx context.Context, name string) ([]models.Pilot, error) {
	return s.filter(ctx, func(p models.Pilot) bool { return p.UserName == name })
}

func (s *pilotService) GetPilotsByUserLogin(ctx context.Context, login string) ([]models.Pilot, error) {
	return s.filter(ctx, func(p models.Pilot) bool { return p.UserLogin == login })
}

func (s *pilotService) GetPilotBaseDir(ctx context.Context, pilot string) (string, error) {
	p, err := s.byName(ctx, pilot)
	if err != nil {
		return "", err
	}
	return s.baseDirOf(p), nil
}

func (s *pilotService) GetPilotIDFromName(ctx context.Context, name string) (uint32, error) {
	p, err := s.byName(ctx, name)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *pilotService) GetPilotNameFromID(ctx context.Context, id uint32) (string, error) {
	p, err := s.byID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (s *pilotService) GetDatabasesFromCache(ctx context.Context, pilot string) ([]models.DBInfo, error) {
	p, err := s.byName(ctx, pilot)
	if err != nil {
		return nil, err
	}
	return s.cacheRepository.List(ctx, p.ID)
}

func (s *pilotService) Resolve(ctx context.Context, id uint32) (models.Pilot, error) {
	p, err := s.byID(ctx, id)
	if err != nil {
		return models.Pilot{}, err
	}
	p.BaseDir = s.baseDirOf(p)
	return p, nil
}

func (s *pilotService) Candidates(ctx context.Context, fp models.Fingerprint) ([]models.Pilot, error) {
	return s.pilotRepository.FindByFingerprint(ctx, fp)
}

func (s *pilotService) RecordSync(ctx context.Context, id uint32, stamp models.SyncStamp) error {
	if err := s.pilotRepository.SetSyncStamp(ctx, id, stamp); err != nil {
		s.logger.Err(err).Str("func", "pilotService.RecordSync").Uint32("pilot_id", id).Msg("failed to persist sync stamp")
		return err
	}
	return nil
}

func (s *pilotService) filter(ctx context.Context, keep func(models.Pilot) bool) ([]models.Pilot, error) {
	pilots, err := s.pilotRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Pilot, 0)
	for _, p := range pilots {
		if keep(p) {
			p.BaseDir = s.baseDirOf(p)
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *pilotService) byName(ctx context.Context, name string) (models.Pilot, error) {
	p, err := s.pilotRepository.GetByName(ctx, name)
	if errors.Is(err, store.ErrPilotNotFound) {
		return models.Pilot{}, fmt.Errorf("%w: %q", ErrUnknownPilot, name)
	}
	return p, err
}

func (s *pilotService) byID(ctx context.Context, id uint32) (models.Pilot, error) {
	p, err := s.pilotRepository.Get(ctx, id)
	if errors.Is(err, store.ErrPilotNotFound) {
		return models.Pilot{}, fmt.Errorf("%w: id %d", ErrUnknownPilot, id)
	}
	return p, err
}

// baseDirOf returns the configured base directory of p, or <root>/<name>
// when the profile has none.
func (s *pilotService) baseDirOf(p models.Pilot) string {
	if p.BaseDir != "" {
		return p.BaseDir
	}
	return filepath.Join(s.baseDir, p.Name)
}
