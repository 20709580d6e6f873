package commands

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/domain/services"
	"loadboard/internal/core/ports"
)

// AwardBidCommandHandler runs the award transition.
//
// The bid row is locked first, so two concurrent awards on one bid serialize:
// the second observes the active award and fails with ConflictError. The partial
// unique index on active awards backs this up at the storage level. After
// commit the winner receives bid_awarded and every other bidder bid_lost.
type AwardBidCommandHandler struct {
	uowFactory AwardUoWFactory
	notifier   Notifier
	clock      ports.Clock
	policy     services.LoadHoldPolicy
}

func NewAwardBidCommandHandler(uowFactory AwardUoWFactory, notifier Notifier, clock ports.Clock) AwardBidCommandHandler {
	return AwardBidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		policy:     services.NewLoadHoldPolicy(),
	}
}

// Handle returns the id of the new award.
func (h AwardBidCommandHandler) Handle(ctx context.Context, cmd AwardBidCommand) (kernel.UUID, error) {
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

	assignment, err := optional(uow.AssignmentRepository().FindByLoad(ctx, cmd.BidNumber()))
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.policy.EnsureCanAward(bid, cmd.WinnerID(), assignment); err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	award, err := bid.Award(kernel.NewUUID(), cmd.WinnerID(), cmd.Amount(), cmd.Margin(), cmd.AdminNotes(), cmd.AdminID(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.AwardRepository().Add(ctx, award); err != nil {
		return kernel.UUID{}, err
	}

	bidders, err := uow.CarrierBidRepository().ListBidderIDs(ctx, cmd.BidNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	winner := cmd.WinnerID()
	notifications := []notification.Notification{
		notification.New(notification.BidAwarded, winner, awardPayload(bid, award), now),
	}
	notifications = append(notifications, notification.Broadcast(
		notification.BidLost, bidders, []kernel.ActorID{winner}, bidPayload(bid), now)...)
	h.notifier.Notify(ctx, notifications...)

	return award.ID(), nil
}
