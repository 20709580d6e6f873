package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// ExpireOffersCommandHandler moves overdue pending offers to expired. Rows
// locked by a concurrent decision are skipped and picked up on a later run.
type ExpireOffersCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewExpireOffersCommandHandler(
	uowFactory OfferUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle returns how many offers expired.
func (h ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offers := uow.OfferRepository()
	events := uow.OfferEventRepository()

	now := h.clock.Now()
	overdue, err := offers.ListExpiredForUpdate(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	notifications := make([]notification.Notification, 0, len(overdue))
	for _, o := range overdue {
		event, expireErr := o.Expire(now)
		if expireErr != nil {
			return 0, expireErr
		}
		if err = offers.Update(ctx, o); err != nil {
			return 0, err
		}
		if err = events.Add(ctx, event); err != nil {
			return 0, err
		}

		notifications = append(notifications,
			notification.New(notification.OfferExpired, o.CarrierID(), offerPayload(o), now))
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.notifier.Notify(ctx, notifications...)
	return len(notifications), nil
}
