package handler

import (
	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/handler/http"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/service"
)

// Handlers holds every control surface the daemon exposes. Only HTTP exists
// today; it is nil when no control address is configured.
type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the control surfaces over control. It fails when none
// of them is enabled since nothing could then drive the daemon.
func NewHandlers(control daemon.Control, services *service.Services, opts http.Options, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(control, services.AppInfoService, opts, logger)
		logger.Info().
			Str("func", "NewHandlers").
			Str("address", cfg.HTTPAddress).
			Bool("auth", opts.TokenKey != "").
			Bool("events", opts.Events != nil).
			Bool("metrics", opts.Metrics != nil).
			Msg("HTTP control surface created")
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
