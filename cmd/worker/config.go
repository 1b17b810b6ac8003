package main

import (
	"strconv"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// Config holds the worker-only settings on top of the shared config.
type Config struct {
	Redis       config.RedisConfig
	Jobs        config.JobConfig
	Recipient   string
	Concurrency int
	HealthAddr  string
}

// loadConfig derives the worker settings from the shared config.
func loadConfig(shared *config.Config) *Config {
	concurrency, err := strconv.Atoi(utils.GetEnvVariable("WORKER_CONCURRENCY", "10"))
	if err != nil || concurrency < 1 {
		concurrency = 10
	}

	cfg := &Config{
		Redis:       shared.Redis,
		Jobs:        shared.Jobs,
		Recipient:   shared.Notify.AdminRecipient,
		Concurrency: concurrency,
		HealthAddr:  utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999"),
	}

	logger.Info("Worker config loaded", map[string]interface{}{
		"redis":       cfg.Redis.Host,
		"smtp":        shared.SMTP.Host,
		"concurrency": cfg.Concurrency,
	})

	return cfg
}
