package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/order/model"
	emailInfra "storefront-backend/internal/infrastructure/email"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// NotifyAdminHandler delivers queued new-order summaries by email.
type NotifyAdminHandler struct {
	emailService emailInfra.EmailService
}

func NewNotifyAdminHandler(emailService emailInfra.EmailService) *NotifyAdminHandler {
	return &NotifyAdminHandler{
		emailService: emailService,
	}
}

func (h *NotifyAdminHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.NotifyAdminPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("Processing notify admin task", map[string]interface{}{
		"order_id":  payload.Summary.OrderID,
		"recipient": payload.Recipient,
	})

	emailReq := emailInfra.EmailRequest{
		To:      []string{payload.Recipient},
		Subject: payload.Summary.Subject(),
		Body:    payload.Summary.Text(),
		IsHTML:  false,
	}

	if err := h.emailService.SendEmail(ctx, emailReq); err != nil {
		logger.Warn("Failed to send order notification email", map[string]interface{}{
			"order_id": payload.Summary.OrderID,
			"error":    err.Error(),
		})
		// At most once: a failed send is dropped, never redelivered.
		return fmt.Errorf("send email: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("Order notification email sent", map[string]interface{}{
		"order_id": payload.Summary.OrderID,
	})
	return nil
}
