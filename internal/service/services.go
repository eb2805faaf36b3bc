package service

import (
	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
)

type Services struct {
	PilotService   PilotService
	RequestService RequestService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, q RequestQueue, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	pilots := NewPilotService(storages.PilotRepository, storages.DeviceRepository, storages.DatabaseCacheRepository, cfg.Storage, logger)
	requests := NewRequestValidationService().Wrap(
		NewRequestService(q, storages.PilotRepository, storages.DeviceRepository, logger),
	)

	return &Services{
		PilotService:   pilots,
		RequestService: requests,
		AppInfoService: appInfo,
	}, nil
}
