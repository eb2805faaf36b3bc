package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.App
		wantErr error
	}{
		{name: "complete", cfg: config.App{Version: "v0.4.0-rc1+sync", PCID: 0x1234}},
		{name: "no version", cfg: config.App{PCID: 1}, wantErr: ErrVersionIsNotSpecified},
		{name: "no pc id", cfg: config.App{Version: "1.0.0"}, wantErr: ErrPCIDIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Version, svc.GetAppVersion(context.Background()))
			assert.Equal(t, tt.cfg.PCID, svc.GetPCID(context.Background()))
		})
	}
}

func TestAppInfoService_IgnoresCancelledContext(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0", PCID: 7}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
	assert.Equal(t, uint32(7), svc.GetPCID(ctx))
}
