package commands

import (
	"context"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
)

// MarkNoContestCommandHandler moves a bid to no_contest.
//
// Repeating the call on a no_contest bid succeeds without writing or notifying,
// so callers may retry it freely. From awarded the active award is soft-removed
// in the same transaction. Every carrier that bid on the bid or offered on its
// load receives bid_no_contest after commit.
type MarkNoContestCommandHandler struct {
	uowFactory AwardUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewMarkNoContestCommandHandler(
	uowFactory AwardUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) MarkNoContestCommandHandler {
	return MarkNoContestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h MarkNoContestCommandHandler) Handle(ctx context.Context, cmd MarkNoContestCommand) error {
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
	changed, removed, err := bid.MarkNoContest(cmd.AdminID(), cmd.Notes(), now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if removed != nil {
		if err = uow.AwardRepository().Update(ctx, removed); err != nil {
			return err
		}
	}

	if err = uow.BidRepository().Update(ctx, bid); err != nil {
		return err
	}

	bidders, err := uow.CarrierBidRepository().ListBidderIDs(ctx, cmd.BidNumber())
	if err != nil {
		return err
	}

	offerers, err := uow.OfferRepository().ListCarrierIDs(ctx, cmd.BidNumber())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recipients := append(bidders, offerers...)
	if removed != nil {
		recipients = append(recipients, removed.WinnerID())
	}

	payload := bidPayload(bid)
	if notes := bid.NoContest().Notes; notes != "" {
		payload["notes"] = notes
	}
	h.notifier.Notify(ctx, notification.Broadcast(notification.BidNoContest, recipients, nil, payload, now)...)

	return nil
}
