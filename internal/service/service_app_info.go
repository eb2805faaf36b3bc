package service

import (
	"context"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

// appInfoService reports what this desktop identifies itself as.
type appInfoService struct {
	version string
	pcID    uint32

	logger *logger.Logger
}

// NewAppInfoService needs both a version and the PC id handhelds are
// stamped with.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if cfg.PCID == 0 {
		return nil, ErrPCIDIsNotSpecified
	}

	logger.Debug().
		Str("func", "NewAppInfoService").
		Str("version", cfg.Version).
		Uint32("pc_id", cfg.PCID).
		Msg("app info ready")

	return &appInfoService{
		version: cfg.Version,
		pcID:    cfg.PCID,
		logger:  logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}

func (s *appInfoService) GetPCID(context.Context) uint32 {
	return s.pcID
}
