package commands

import (
	"context"
	"log/slog"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// Notifier enqueues notifications after a command has committed. A failed
// enqueue is logged and swallowed: the state change already happened and the
// queue is at-least-once on its own terms.
type Notifier struct {
	queue  ports.NotificationQueue
	logger *slog.Logger
}

func NewNotifier(queue ports.NotificationQueue, logger *slog.Logger) Notifier {
	return Notifier{
		queue:  queue,
		logger: logger.With("component", "Notifier"),
	}
}

// Notify enqueues all notifications in one call.
func (n Notifier) Notify(ctx context.Context, notifications ...notification.Notification) {
	if len(notifications) == 0 || n.queue == nil {
		return
	}

	// The caller's context may already be cancelled once the response is written.
	if err := n.queue.Enqueue(context.WithoutCancel(ctx), notifications...); err != nil {
		n.logger.ErrorContext(ctx, "failed to enqueue notifications",
			"kind", string(notifications[0].Kind),
			"count", len(notifications),
			"error", err,
		)
		return
	}

	n.logger.DebugContext(ctx, "notifications enqueued",
		"kind", string(notifications[0].Kind),
		"count", len(notifications),
	)
}
