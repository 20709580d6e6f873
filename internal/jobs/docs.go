// Package jobs provides scheduled background tasks for the load marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Both jobs live outside the engine: they drive it through the same ports and
// command handlers the HTTP surface uses.
//
// # Available Jobs
//
// 1. NotificationRelayJob - Runs every 2 seconds, publishes pending outbox notifications to Kafka
// 2. OfferExpirationJob - Runs every 30 seconds, expires pending offers past their expiration
//
// # Usage
//
//	jobManager := jobs.NewJobManager(outbox, publisher, relayBatch, expireHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed publish marks the batch failed (attempts, last error) and leaves it pending
// - Expiry skips offers locked by an admin decision in flight; they are picked up next run
// - Overlapping runs of the same job are skipped
package jobs
