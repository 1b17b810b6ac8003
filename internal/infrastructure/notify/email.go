package notify

import (
	"context"
	"sync"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/infrastructure/email"
	"storefront-backend/pkg/logger"
)

// EmailNotifier sends the summary over SMTP in the background. Notify returns
// as soon as the send is dispatched; failures are logged, never returned.
type EmailNotifier struct {
	emailService email.EmailService
	timeout      time.Duration
	wg           sync.WaitGroup
}

func NewEmailNotifier(emailService email.EmailService, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{
		emailService: emailService,
		timeout:      timeout,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, recipient string, summary model.Summary) error {
	req := email.EmailRequest{
		To:      []string{recipient},
		Subject: summary.Subject(),
		Body:    summary.Text(),
	}

	// The caller's context ends with the request; the send outlives it.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("Order notification email panicked", map[string]interface{}{
					"order_id": summary.OrderID,
					"panic":    r,
				})
			}
		}()

		if err := n.emailService.SendEmail(sendCtx, req); err != nil {
			logger.Warn("Failed to send order notification email", map[string]interface{}{
				"order_id": summary.OrderID,
				"error":    err.Error(),
			})
		}
	}()
	return nil
}

// Wait blocks until every dispatched send has finished.
func (n *EmailNotifier) Wait() {
	n.wg.Wait()
}
