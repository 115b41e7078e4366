package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner is one unit of scheduled work; *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

type Scheduler struct {
	ctx    context.Context
	runner Runner
	spec   string
	logger *logrus.Logger
	cron   *cron.Cron
}

// NewScheduler creates a scheduler that runs runner on the cron spec. A run
// still in progress when the next tick fires causes that tick to be skipped.
func NewScheduler(ctx context.Context, spec string, runner Runner, logger *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		ctx:    ctx,
		runner: runner,
		spec:   spec,
		logger: logger,
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
	}
}

// Start the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("schedule", s.spec).Info("Scheduler started")
	return nil
}

func (s *Scheduler) runOnce() {
	if err := s.runner.Run(s.ctx); err != nil {
		s.logger.WithError(err).Error("Scheduled weather run failed")
	}
}

// Stop the scheduler and wait for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
