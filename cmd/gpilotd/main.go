package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/conduits"
	"github.com/MKhiriev/go-pilot/internal/config"
	"github.com/MKhiriev/go-pilot/internal/daemon"
	"github.com/MKhiriev/go-pilot/internal/dlp/bridge"
	"github.com/MKhiriev/go-pilot/internal/events"
	"github.com/MKhiriev/go-pilot/internal/handler"
	handlerhttp "github.com/MKhiriev/go-pilot/internal/handler/http"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/metrics"
	"github.com/MKhiriev/go-pilot/internal/orchestrator"
	"github.com/MKhiriev/go-pilot/internal/queue"
	"github.com/MKhiriev/go-pilot/internal/server"
	"github.com/MKhiriev/go-pilot/internal/service"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/internal/syncengine"
	"github.com/MKhiriev/go-pilot/internal/transport"
	"github.com/MKhiriev/go-pilot/internal/workers"
	"github.com/MKhiriev/go-pilot/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("gpilotd").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log := logger.New("gpilotd", logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to storage")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating storage")
	}
	storages := store.NewStorages(db, log)
	defer storages.Close()

	if err := saveDevices(ctx, cfg.Daemon, storages.DeviceRepository); err != nil {
		log.Fatal().Err(err).Msg("error saving configured cradles")
	}

	q := queue.New(storages.RequestRepository, cfg.Storage.QueueDir, log)
	services, err := service.NewServices(storages, q, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	registry := conduit.NewRegistry()
	if err := conduits.RegisterBuiltins(registry); err != nil {
		log.Fatal().Err(err).Msg("error registering conduits")
	}
	loader := conduit.NewLoader(registry, storages.ConduitConfigRepository, conduit.Deps{
		Records: storages.DesktopRecordRepository,
		Cache:   storages.DatabaseCacheRepository,
		Logger:  log,
	}, log)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		prom = metrics.NewPrometheusRecorder(reg)
		recorder = prom
	}

	broker := events.NewBroker(log)
	defer broker.Close()
	sinks := []events.Sink{events.NewLogSink(log), broker}
	if cfg.Events.NATSURL != "" {
		nats, err := events.NewNATSSink(cfg.Events.NATSURL, cfg.Events.SubjectPrefix, log)
		if err != nil {
			log.Err(err).Msg("NATS event sink disabled")
		} else {
			defer nats.Close()
			sinks = append(sinks, nats)
		}
	}
	emitter := events.NewEmitter(events.Multi(sinks...))

	orch := orchestrator.New(loader, syncengine.New(log), q, storages.DatabaseCacheRepository, emitter, recorder, log)

	w, err := workers.New(log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating scheduler")
	}

	var hotplug *transport.Hotplug
	if cfg.Daemon.USBWatchDir != "" {
		hotplug, err = transport.NewHotplug(cfg.Daemon.USBWatchDir, log)
		if err != nil {
			log.Err(err).Msg("USB hotplug disabled")
			hotplug = nil
		} else {
			defer hotplug.Close()
		}
	}

	d := daemon.New(daemon.Deps{
		Config:   cfg.Daemon,
		PCID:     cfg.App.PCID,
		Devices:  storages.DeviceRepository,
		Pilots:   services.PilotService,
		Requests: services.RequestService,
		Queue:    q,
		Sessions: orch,
		Dialer:   bridge.Dialer{Timeout: cfg.Daemon.AcceptTimeout, Logger: log},
		Emitter:  emitter,
		Recorder: recorder,
		Hotplug:  hotplug,
		Workers:  w,
		Logger:   log,
	})

	opts := handlerhttp.Options{
		Events:      broker,
		TokenKey:    cfg.App.ControlTokenKey,
		TokenIssuer: cfg.App.ControlTokenIssuer,
	}
	if prom != nil {
		opts.Metrics = prom.Handler()
	}

	handlers, err := handler.NewHandlers(d, services, opts, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, d, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("gpilotd stopped with error")
	}
}

// saveDevices persists the configured cradles, replacing the stored list,
// so that a later reread sees the same set.
func saveDevices(ctx context.Context, cfg config.Daemon, repo store.DeviceRepository) error {
	devices, err := cfg.DeviceList()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return nil
	}

	stored, err := repo.List(ctx)
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(devices))
	for _, dev := range devices {
		keep[dev.Name] = true
		if err := repo.Save(ctx, dev); err != nil {
			return fmt.Errorf("save cradle %q: %w", dev.Name, err)
		}
	}
	for _, dev := range stored {
		if !keep[dev.Name] {
			if err := repo.Delete(ctx, dev.Name); err != nil {
				return fmt.Errorf("delete cradle %q: %w", dev.Name, err)
			}
		}
	}
	return nil
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
