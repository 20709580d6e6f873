package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// CounterOfferCommandHandler moves a pending offer to countered and tells the
// carrier about the counter price.
type CounterOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewCounterOfferCommandHandler(
	uowFactory OfferUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) CounterOfferCommandHandler {
	return CounterOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h CounterOfferCommandHandler) Handle(ctx context.Context, cmd CounterOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offers := uow.OfferRepository()
	o, err := offers.GetForUpdate(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	event, err := o.Counter(cmd.CounterAmount(), cmd.AdminID(), cmd.Notes(), now)
	if err != nil {
		return err
	}

	if err = offers.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.OfferEventRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, notification.New(notification.OfferCountered, o.CarrierID(), offerPayload(o), now))
	return nil
}
