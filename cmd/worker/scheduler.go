package main

import (
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with lifecycle logging
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic jobs and runs the scheduler in the background.
// A registration failure leaves the worker running without periodic jobs.
func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.Redis, cfg.Jobs, cfg.Recipient)

	if err := scheduler.RegisterJobs(); err != nil {
		logger.Error("Scheduler registration failed, periodic jobs disabled", err)
		return nil
	}

	go func() {
		logger.Info("Scheduler starting", map[string]interface{}{})
		if err := scheduler.Start(); err != nil {
			logger.Error("Scheduler stopped", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
	logger.Info("Scheduler stopped", map[string]interface{}{})
}
