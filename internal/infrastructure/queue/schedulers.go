package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// Registrar is the part of *asynq.Scheduler used to register periodic tasks.
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	registrar Registrar
	jobConfig config.JobConfig
	recipient string
}

func NewScheduler(redis config.RedisConfig, jobConfig config.JobConfig, recipient string) *Scheduler {
	scheduler := asynq.NewScheduler(
		RedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		registrar: scheduler,
		jobConfig: jobConfig,
		recipient: recipient,
	}
}

// RegisterJobs registers every periodic task of the worker.
func (s *Scheduler) RegisterJobs() error {
	return s.registerPendingDigestJob()
}

// ================================================
// Pending order digest (hourly by default)
// ================================================
func (s *Scheduler) registerPendingDigestJob() error {
	if s.jobConfig.PendingDigestCron == "" {
		logger.Info("Pending digest disabled", map[string]interface{}{})
		return nil
	}

	task, err := utils.MarshalTask(shared.TypeOrderPendingDigest, model.PendingDigestPayload{
		Recipient:  s.recipient,
		StaleAfter: s.jobConfig.PendingDigestAfter,
		Limit:      s.jobConfig.PendingDigestLimit,
	})
	if err != nil {
		return err
	}

	entryID, err := s.registrar.Register(
		s.jobConfig.PendingDigestCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register PendingDigest job", err)
		return err
	}

	logger.Info("Registered PendingDigest job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.jobConfig.PendingDigestCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
