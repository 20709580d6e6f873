package commands

import (
	"context"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/ports"
)

// CreateBidCommandHandler stores a new open bid. A duplicate bid number is
// reported by the repository as ConflictError.
type CreateBidCommandHandler struct {
	uowFactory BidUoWFactory
	clock      ports.Clock
}

func NewCreateBidCommandHandler(uowFactory BidUoWFactory, clock ports.Clock) CreateBidCommandHandler {
	return CreateBidCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CreateBidCommandHandler) Handle(ctx context.Context, cmd CreateBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	bid, err := auction.NewBid(cmd.BidNumber(), cmd.Metadata(), cmd.ExpiresAt(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BidRepository().Add(ctx, bid); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
