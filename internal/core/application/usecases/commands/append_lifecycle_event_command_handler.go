package commands

import (
	"context"
	"fmt"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// AppendLifecycleEventCommandHandler appends to a bid's fulfillment ledger.
//
// Appends on one bid are serialized by the bid row lock, so the ordering check
// against the ledger tail and the insert form one atomic step. A rejected event
// leaves the ledger unchanged.
type AppendLifecycleEventCommandHandler struct {
	uowFactory LedgerUoWFactory
	clock      ports.Clock
}

func NewAppendLifecycleEventCommandHandler(
	uowFactory LedgerUoWFactory,
	clock ports.Clock,
) AppendLifecycleEventCommandHandler {
	return AppendLifecycleEventCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the id of the appended event.
func (h AppendLifecycleEventCommandHandler) Handle(
	ctx context.Context,
	cmd AppendLifecycleEventCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	event, err := ledger.NewEvent(
		kernel.NewUUID(), cmd.BidNumber(), cmd.EventType(), cmd.Details(), cmd.RecordedBy(), h.clock.Now())
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

	bid, err := uow.BidRepository().GetForUpdate(ctx, cmd.BidNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = bid.EnsureAcceptsLifecycleEvents(); err != nil {
		return kernel.UUID{}, err
	}

	if cmd.AsWinner() {
		if winner := bid.ActiveAward().WinnerID(); !winner.IsEqual(cmd.RecordedBy()) {
			return kernel.UUID{}, errs.NewForbiddenError(
				fmt.Sprintf("bid %s is awarded to another carrier", cmd.BidNumber()))
		}
	}

	events := uow.LifecycleEventRepository()
	tail, err := events.Tail(ctx, cmd.BidNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = tail.CheckAppend(event); err != nil {
		return kernel.UUID{}, err
	}

	if err = events.Add(ctx, event); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return event.ID(), nil
}
