package jobs

import (
	"context"
	"log/slog"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRelayBatch bounds how many notifications one relay run publishes.
	DefaultRelayBatch = 100

	relaySchedule = "*/2 * * * * *"
)

// NotificationRelayJob drains the notification outbox into the publisher.
// Delivery is at-least-once: a batch that fails to publish stays pending and is
// retried on the next run.
type NotificationRelayJob struct {
	outbox    ports.NotificationOutbox
	publisher ports.NotificationPublisher
	batch     int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationRelayJob(
	outbox ports.NotificationOutbox,
	publisher ports.NotificationPublisher,
	batch int,
	logger *slog.Logger,
) *NotificationRelayJob {
	if batch <= 0 {
		batch = DefaultRelayBatch
	}
	return &NotificationRelayJob{
		outbox:    outbox,
		publisher: publisher,
		batch:     batch,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_relay_job"),
	}
}

// Start runs the relay every two seconds. A run still in progress is never
// overlapped.
func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc(relaySchedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Notification relay failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started (running every 2 seconds)")
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}

// RunOnce publishes one batch and returns how many notifications were
// delivered.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) (int, error) {
	pending, err := j.outbox.FetchPending(ctx, j.batch)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	batch := make([]notification.Notification, 0, len(pending))
	ids := make([]kernel.UUID, 0, len(pending))
	for _, p := range pending {
		batch = append(batch, p.Notification)
		ids = append(ids, p.ID)
	}

	if err = j.publisher.Publish(ctx, batch); err != nil {
		if markErr := j.outbox.MarkFailed(ctx, ids, err); markErr != nil {
			j.logger.ErrorContext(ctx, "Failed to record relay failure", "error", markErr)
		}
		return 0, err
	}

	if err = j.outbox.MarkDispatched(ctx, ids); err != nil {
		// Already published: the next run publishes these again.
		return len(batch), err
	}

	j.logger.DebugContext(ctx, "Notifications relayed", "count", len(batch))
	return len(batch), nil
}
