package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/pkg/container"
	"storefront-backend/pkg/logger"
)

// startServices runs the startup checks and exposes the health endpoint.
func startServices(c *container.Container, cfg *Config) error {
	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis", c.Cache.Ping},
		{"PostgreSQL", c.DB.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("%s check failed: %w", check.name, err)
		}
		logger.Info("Startup check passed", map[string]interface{}{"check": check.name})
	}

	go startHealthCheckServer(cfg.HealthAddr)
	return nil
}

// startHealthCheckServer serves /health and /ready for the orchestrator.
func startHealthCheckServer(addr string) {
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "storefront-worker"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	logger.Info("Health server starting", map[string]interface{}{"addr": addr})
	if err := router.Run(addr); err != nil {
		logger.Error("Health server failed", err)
	}
}
