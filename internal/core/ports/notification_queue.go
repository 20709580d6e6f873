package ports

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
)

// NotificationQueue accepts notifications for at-least-once delivery. The engine
// enqueues after its transaction commits and never waits for delivery.
type NotificationQueue interface {
	Enqueue(ctx context.Context, notifications ...notification.Notification) error
}

// PendingNotification is an outbox entry that has not been delivered yet.
type PendingNotification struct {
	notification.Notification
	Attempts int
}

// NotificationOutbox is the relay side of the queue: it hands out undelivered
// notifications and records the outcome of each delivery attempt.
type NotificationOutbox interface {
	// FetchPending returns up to limit undelivered notifications, oldest first.
	FetchPending(ctx context.Context, limit int) ([]PendingNotification, error)
	MarkDispatched(ctx context.Context, ids []kernel.UUID) error
	MarkFailed(ctx context.Context, ids []kernel.UUID, cause error) error
}

// NotificationPublisher delivers notifications to the downstream pipeline.
type NotificationPublisher interface {
	Publish(ctx context.Context, notifications []notification.Notification) error
}
