package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

type RejectOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewRejectOfferCommandHandler(
	uowFactory OfferUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
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
	event, err := o.Reject(cmd.AdminID(), cmd.Notes(), now)
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

	h.notifier.Notify(ctx, notification.New(notification.OfferRejected, o.CarrierID(), offerPayload(o), now))
	return nil
}
