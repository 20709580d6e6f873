// Package kafka publishes queued notifications to the downstream delivery
// pipeline over a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"loadboard/internal/core/domain/model/notification"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the publisher needs, so tests can
// inject a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// message is the wire format consumed by the delivery pipeline.
type message struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	RecipientID string         `json:"recipient_id"`
	Payload     map[string]any `json:"payload"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NotificationPublisher implements ports.NotificationPublisher. Messages are
// keyed by recipient so one carrier's notifications stay ordered within a
// partition.
type NotificationPublisher struct {
	writer Writer
}

// NewNotificationPublisher creates a publisher writing to topic on broker.
func NewNotificationPublisher(broker, topic string) *NotificationPublisher {
	return &NotificationPublisher{
		writer: &skafka.Writer{
			Addr:         skafka.TCP(broker),
			Topic:        topic,
			Balancer:     &skafka.Hash{},
			RequiredAcks: skafka.RequireAll,
		},
	}
}

// NewNotificationPublisherWithWriter allows injecting a test writer.
func NewNotificationPublisherWithWriter(w Writer) *NotificationPublisher {
	return &NotificationPublisher{writer: w}
}

// Publish writes all notifications in one batch. The batch either succeeds or
// the caller retries it whole; consumers deduplicate by id.
func (p *NotificationPublisher) Publish(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(notifications))
	for _, n := range notifications {
		value, err := json.Marshal(message{
			ID:          n.ID.String(),
			Kind:        string(n.Kind),
			RecipientID: n.RecipientID.String(),
			Payload:     n.Payload,
			CreatedAt:   n.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal notification %s: %w", n.ID, err)
		}

		msgs = append(msgs, skafka.Message{
			Key:   []byte(n.RecipientID.String()),
			Value: value,
			Headers: []skafka.Header{
				{Key: "kind", Value: []byte(n.Kind)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d notifications: %w", len(msgs), err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
