package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

// Enqueuer is the part of *asynq.Client the queue notifier uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands the summary to the worker through asynq.
// Tasks are enqueued with zero retries: an admin mail is sent at most once.
type QueueNotifier struct {
	client      Enqueuer
	taskTimeout time.Duration
}

func NewQueueNotifier(client Enqueuer, taskTimeout time.Duration) *QueueNotifier {
	return &QueueNotifier{
		client:      client,
		taskTimeout: taskTimeout,
	}
}

func (n *QueueNotifier) Notify(ctx context.Context, recipient string, summary model.Summary) error {
	task, err := utils.MarshalTask(shared.TypeNotifyOrderAdmin, model.NotifyAdminPayload{
		Recipient: recipient,
		Summary:   summary,
	})
	if err != nil {
		return fmt.Errorf("marshal notify task: %w", err)
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueCritical),
		asynq.MaxRetry(0),
		asynq.Timeout(n.taskTimeout),
	)
	if err != nil {
		return fmt.Errorf("enqueue notify task: %w", err)
	}

	logger.Info("Enqueued order notification", map[string]interface{}{
		"order_id": summary.OrderID,
		"task_id":  info.ID,
		"queue":    info.Queue,
	})
	return nil
}
