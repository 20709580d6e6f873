package commands

import (
	"context"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/ports"
)

// PlaceBidCommandHandler upserts a carrier bid under the bid row lock, so a bid
// being awarded concurrently never accepts a late price.
type PlaceBidCommandHandler struct {
	uowFactory BidUoWFactory
	clock      ports.Clock
}

func NewPlaceBidCommandHandler(uowFactory BidUoWFactory, clock ports.Clock) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the id of the carrier bid that was created or revised.
func (h PlaceBidCommandHandler) Handle(ctx context.Context, cmd PlaceBidCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bid, err := uow.BidRepository().GetForUpdate(ctx, cmd.BidNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	carrierBids := uow.CarrierBidRepository()
	existing, err := optional(carrierBids.Find(ctx, cmd.BidNumber(), cmd.CarrierID()))
	if err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	var saved *auction.CarrierBid
	if existing == nil {
		saved, err = auction.PlaceCarrierBid(bid, kernel.NewUUID(), cmd.CarrierID(), cmd.Amount(), cmd.Notes(), now)
		if err != nil {
			return kernel.UUID{}, err
		}
		err = carrierBids.Add(ctx, saved)
	} else {
		saved = existing
		if err = saved.Revise(bid, cmd.Amount(), cmd.Notes(), now); err != nil {
			return kernel.UUID{}, err
		}
		err = carrierBids.Update(ctx, saved)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return saved.ID(), nil
}
