package workers

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/MKhiriev/go-pilot/internal/logger"
)

type Workers struct {
	scheduler gocron.Scheduler
	workers   []Worker
	logger    *logger.Logger
}

// New returns a stopped scheduler.
func New(log *logger.Logger) (*Workers, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Workers{scheduler: s, logger: log}, nil
}

// Every schedules worker every interval. A non-positive interval disables
// the job.
func (w *Workers) Every(name string, interval time.Duration, worker Worker) error {
	if interval <= 0 {
		w.logger.Debug().Str("func", "Workers.Every").Str("job", name).Msg("job disabled")
		return nil
	}

	_, err := w.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(worker.Run),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	w.workers = append(w.workers, worker)

	w.logger.Info().Str("func", "Workers.Every").Str("job", name).Dur("interval", interval).Msg("job scheduled")
	return nil
}

// Run runs every scheduled worker once, in scheduling order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Start() {
	w.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (w *Workers) Stop() error {
	return w.scheduler.Shutdown()
}
