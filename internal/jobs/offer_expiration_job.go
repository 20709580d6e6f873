package jobs

import (
	"context"
	"log/slog"

	"loadboard/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultExpiryBatch bounds how many offers one run expires.
	DefaultExpiryBatch = 100

	expirySchedule = "*/30 * * * * *"

	// maxExpiryRounds caps the full batches expired in one run.
	maxExpiryRounds = 10
)

// OfferExpirer is the command handler the expiration job drives.
type OfferExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireOffersCommand) (int, error)
}

// OfferExpirationJob moves pending offers past their expiration to expired.
type OfferExpirationJob struct {
	handler OfferExpirer
	batch   int
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOfferExpirationJob(handler OfferExpirer, batch int, logger *slog.Logger) *OfferExpirationJob {
	if batch <= 0 {
		batch = DefaultExpiryBatch
	}
	return &OfferExpirationJob{
		handler: handler,
		batch:   batch,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "offer_expiration_job"),
	}
}

// Start runs expiry every 30 seconds.
func (j *OfferExpirationJob) Start() error {
	_, err := j.cron.AddFunc(expirySchedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Offer expiration job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiration job started (running every 30 seconds)")
	return nil
}

func (j *OfferExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Offer expiration job stopped")
}

// RunOnce expires offers in batches. A full batch is followed immediately by
// another, up to maxExpiryRounds batches per run.
func (j *OfferExpirationJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpireOffersCommand(j.batch)
	if err != nil {
		return 0, err
	}

	total := 0
	for round := 0; round < maxExpiryRounds; round++ {
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		if err != nil {
			return total, err
		}
		if n < j.batch {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Offers expired", "count", total)
	}
	return total, nil
}
