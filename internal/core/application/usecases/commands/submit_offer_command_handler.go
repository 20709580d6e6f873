package commands

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/core/ports"
)

// SubmitOfferCommandHandler stores a pending offer together with its submitted
// audit event.
type SubmitOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	clock      ports.Clock
}

func NewSubmitOfferCommandHandler(uowFactory OfferUoWFactory, clock ports.Clock) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the id of the new offer.
func (h SubmitOfferCommandHandler) Handle(ctx context.Context, cmd SubmitOfferCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	o, event, err := offer.NewOffer(
		kernel.NewUUID(), cmd.LoadRef(), cmd.CarrierID(), cmd.Amount(), cmd.Note(), cmd.ExpiresAt(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OfferRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OfferEventRepository().Add(ctx, event); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
