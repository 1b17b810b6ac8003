package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront-backend/internal/domains/order/model"
)

const EventOrderCreated = "order.created"

// MessageWriter is the part of *kafka.Writer the event notifier uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderEvent is the value published for every new order.
type OrderEvent struct {
	Type       string        `json:"type"`
	Recipient  string        `json:"recipient"`
	Summary    model.Summary `json:"summary"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// KafkaNotifier publishes an order.created event; a downstream consumer owns delivery.
type KafkaNotifier struct {
	writer MessageWriter
}

func NewKafkaNotifier(writer MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}

// NewKafkaWriter builds a writer for a comma separated broker list.
func NewKafkaWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, recipient string, summary model.Summary) error {
	value, err := json.Marshal(OrderEvent{
		Type:       EventOrderCreated,
		Recipient:  recipient,
		Summary:    summary,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s", summary.OrderID)),
		Value: value,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}
