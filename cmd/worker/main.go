package main

import (
	"os"
	"os/signal"
	"syscall"

	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

func main() {
	c, err := container.NewContainer()
	if err != nil {
		logger.Error("Failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	handlers := initializeHandlers(c)

	if err := startServices(c, cfg); err != nil {
		logger.Error("Startup check failed", err)
		return
	}

	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Worker stopping", map[string]interface{}{})
	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
	logger.Info("Worker stopped", map[string]interface{}{})
}
