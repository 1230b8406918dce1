package scheduler

import (
	"context"
	"time"

	"transitcoop/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultResetSchedule = "0 3 * * *"

// Resetter clears the day's bus assignments and reports how many rows moved.
type Resetter interface {
	ResetDaily(ctx context.Context) (int64, error)
}

// Scheduler runs the daily assignment reset on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	resetter Resetter
	logger   *zap.SugaredLogger
	timeout  time.Duration
}

func New(resetter Resetter, loc *time.Location, logger *zap.SugaredLogger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		resetter: resetter,
		logger:   logger,
		timeout:  time.Minute,
	}
}

// Start registers the reset job and starts the cron loop. An empty schedule
// leaves the scheduler idle.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info("assignment reset schedule disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, s.RunReset); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Infow("assignment reset scheduled", "schedule", schedule)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunReset executes one reset and logs the outcome.
func (s *Scheduler) RunReset() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.resetter.ResetDaily(ctx)
	if err != nil {
		metrics.ObserveReset("scheduled", 0, err)
		s.logger.Warnw("scheduled assignment reset failed", "error", err)
		return
	}

	metrics.ObserveReset("scheduled", n, nil)
	s.logger.Infow("assignments reset", "records_processed", n, "at", time.Now().Format(time.RFC1123))
}
