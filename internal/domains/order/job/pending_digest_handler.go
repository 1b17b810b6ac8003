package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/order/model"
	emailInfra "storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// OrderLister is the read side of the order service the digest needs.
type OrderLister interface {
	ListOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error)
}

// PendingDigestHandler mails the administrator a list of orders nobody picked up yet.
type PendingDigestHandler struct {
	orders       OrderLister
	emailService emailInfra.EmailService
	now          func() time.Time
}

func NewPendingDigestHandler(orders OrderLister, emailService emailInfra.EmailService) *PendingDigestHandler {
	return &PendingDigestHandler{
		orders:       orders,
		emailService: emailService,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (h *PendingDigestHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.PendingDigestPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	// 1. Load the oldest page of new orders
	status := model.OrderStatusNew
	orders, _, err := h.orders.ListOrders(ctx, model.ListOrdersRequest{
		Status:      &status,
		Page:        1,
		Limit:       payload.Limit,
		OldestFirst: true,
	})
	if err != nil {
		return fmt.Errorf("list new orders: %w", err)
	}

	// 2. Keep the stale ones
	digest := model.NewPendingDigest(orders, h.now(), payload.StaleAfter)
	if digest.Empty() {
		logger.Debug("No stale orders for digest")
		return nil
	}

	// 3. Send
	if err := h.emailService.SendEmail(ctx, emailInfra.EmailRequest{
		To:      []string{payload.Recipient},
		Subject: digest.Subject(),
		Body:    digest.Text(),
	}); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	logger.Info("Pending order digest sent", map[string]interface{}{
		"orders":    len(digest.Orders),
		"recipient": payload.Recipient,
	})
	return nil
}
