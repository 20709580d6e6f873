package commands

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/domain/services"
	"loadboard/internal/core/ports"
)

// AcceptOfferCommandHandler accepts an offer and creates its Assignment in one
// transaction: both rows commit together or neither does.
//
// Lock order is offer row, then the load's bid row. Two concurrent accepts of
// one offer serialize on the offer lock and the loser sees a decided offer
// (ConflictError). The bid lock orders acceptance against award decisions, and
// the unique constraints on assignments back up one assignment per offer and
// per load.
type AcceptOfferCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   Notifier
	clock      ports.Clock
	policy     services.LoadHoldPolicy
}

func NewAcceptOfferCommandHandler(
	uowFactory OfferUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		policy:     services.NewLoadHoldPolicy(),
	}
}

// Handle returns the id of the created assignment.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) (kernel.UUID, error) {
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

	offers := uow.OfferRepository()
	o, err := offers.GetForUpdate(ctx, cmd.OfferID())
	if err != nil {
		return kernel.UUID{}, err
	}

	bid, err := optional(uow.BidRepository().GetForUpdate(ctx, o.LoadRef()))
	if err != nil {
		return kernel.UUID{}, err
	}

	assignments := uow.AssignmentRepository()
	existing, err := optional(assignments.FindByLoad(ctx, o.LoadRef()))
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.policy.EnsureCanAccept(bid, o, existing); err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock.Now()
	assignment, event, err := o.Accept(kernel.NewUUID(), cmd.AdminID(), cmd.AcceptedPrice(), cmd.Notes(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = offers.Update(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = assignments.Add(ctx, assignment); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OfferEventRepository().Add(ctx, event); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	payload := withMoney(offerPayload(o), "accepted_price", assignment.Price())
	payload["assignment_id"] = assignment.ID().String()
	h.notifier.Notify(ctx, notification.New(notification.OfferAccepted, o.CarrierID(), payload, now))

	return assignment.ID(), nil
}
