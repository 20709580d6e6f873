package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// RemoveAwardCommandHandler soft-removes the active award. The award row stays
// as history and the bid can be awarded again right away. The former winner
// receives award_revoked after commit.
type RemoveAwardCommandHandler struct {
	uowFactory AwardUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewRemoveAwardCommandHandler(
	uowFactory AwardUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) RemoveAwardCommandHandler {
	return RemoveAwardCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h RemoveAwardCommandHandler) Handle(ctx context.Context, cmd RemoveAwardCommand) error {
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

	now := h.clock.Now()
	removed, err := bid.RemoveAward(cmd.AdminID(), now)
	if err != nil {
		return err
	}

	if err = uow.AwardRepository().Update(ctx, removed); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, notification.New(notification.AwardRevoked, removed.WinnerID(), awardPayload(bid, removed), now))
	return nil
}
