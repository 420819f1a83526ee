package onboarding

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSchedule runs the sweeper once a minute
const DefaultSweepSchedule = "@every 1m"

// Sweeper periodically evicts idle sessions
type Sweeper struct {
	cron     *cron.Cron
	service  *Service
	schedule string
	logger   *zap.Logger
	mu       sync.Mutex
	running  bool
}

// NewSweeper creates a sweeper for the service
func NewSweeper(service *Service, schedule string, logger *zap.Logger) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &Sweeper{
		cron:     cron.New(),
		service:  service,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the cron scheduler
func (w *Sweeper) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("session sweeper already running")
	}

	if _, err := w.cron.AddFunc(w.schedule, func() { w.sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", w.schedule, err)
	}

	w.logger.Info("Starting session sweeper", zap.String("schedule", w.schedule))
	w.cron.Start()
	w.running = true
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (w *Sweeper) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.logger.Info("Stopping session sweeper")
	done := w.cron.Stop()
	<-done.Done()
	w.running = false
}

func (w *Sweeper) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := w.service.SweepExpired(ctx); err != nil {
		w.logger.Error("Failed to sweep sessions", zap.Error(err))
	}
}
