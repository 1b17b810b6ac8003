package main

import (
	"github.com/hibiken/asynq"

	orderJob "storefront-backend/internal/domains/order/job"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	notifyAdmin   *orderJob.NotifyAdminHandler
	pendingDigest *orderJob.PendingDigestHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		notifyAdmin:   orderJob.NewNotifyAdminHandler(c.EmailService),
		pendingDigest: orderJob.NewPendingDigestHandler(c.OrderService, c.EmailService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeNotifyOrderAdmin, h.notifyAdmin.ProcessTask)
	mux.HandleFunc(shared.TypeOrderPendingDigest, h.pendingDigest.ProcessTask)
}
