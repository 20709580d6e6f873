package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// CompleteBidCommandHandler moves an awarded bid to completed. The ledger tail
// is read under the bid lock, which also serializes ledger appends.
type CompleteBidCommandHandler struct {
	uowFactory AwardUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewCompleteBidCommandHandler(
	uowFactory AwardUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) CompleteBidCommandHandler {
	return CompleteBidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h CompleteBidCommandHandler) Handle(ctx context.Context, cmd CompleteBidCommand) error {
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

	bid, err := uow.BidRepository().GetForUpdate(ctx, cmd.BidNumber())
	if err != nil {
		return err
	}

	tail, err := uow.LifecycleEventRepository().Tail(ctx, cmd.BidNumber())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = bid.Complete(cmd.AdminID(), tail.Delivered, now); err != nil {
		return err
	}

	if err = uow.BidRepository().Update(ctx, bid); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	award := bid.ActiveAward()
	h.notifier.Notify(ctx, notification.New(notification.BidCompleted, award.WinnerID(), awardPayload(bid, award), now))
	return nil
}
