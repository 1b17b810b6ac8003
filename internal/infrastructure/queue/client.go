package queue

import (
	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
)

// RedisOpt builds the asynq connection shared by client, server and scheduler.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}
