package jobs

import (
	"fmt"
	"log/slog"

	"loadboard/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationRelayJob *NotificationRelayJob
	offerExpirationJob   *OfferExpirationJob
}

// NewJobManager creates a job manager with the relay and expiration jobs.
func NewJobManager(
	outbox ports.NotificationOutbox,
	publisher ports.NotificationPublisher,
	relayBatch int,
	expirer OfferExpirer,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRelayJob: NewNotificationRelayJob(outbox, publisher, relayBatch, logger),
		offerExpirationJob:   NewOfferExpirationJob(expirer, DefaultExpiryBatch, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}

	if err := jm.offerExpirationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.notificationRelayJob.Stop()
		return fmt.Errorf("failed to start offer expiration job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully. The relay stops last so that
// notifications from a final expiry run are still delivered.
func (jm *JobManager) StopAll() {
	jm.offerExpirationJob.Stop()
	jm.notificationRelayJob.Stop()
}
