package commands

import (
	"context"
	"fmt"

	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// RejectOtherOffersCommandHandler rejects the load's sibling offers in one
// transaction and notifies each affected carrier. The kept offer must exist on
// the load, otherwise nothing is rejected and NotFoundError is returned.
type RejectOtherOffersCommandHandler struct {
	uowFactory OfferUoWFactory
	notifier   Notifier
	clock      ports.Clock
}

func NewRejectOtherOffersCommandHandler(
	uowFactory OfferUoWFactory,
	notifier Notifier,
	clock ports.Clock,
) RejectOtherOffersCommandHandler {
	return RejectOtherOffersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle returns how many offers were rejected.
func (h RejectOtherOffersCommandHandler) Handle(ctx context.Context, cmd RejectOtherOffersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offers := uow.OfferRepository()
	events := uow.OfferEventRepository()

	kept, err := offers.GetForUpdate(ctx, cmd.ExceptOfferID())
	if err != nil {
		return 0, err
	}
	if !kept.LoadRef().IsEqual(cmd.LoadRef()) {
		return 0, errs.NewObjectNotFoundError(
			fmt.Sprintf("offer on load %s", cmd.LoadRef()), cmd.ExceptOfferID().String())
	}

	candidates, err := offers.ListDecidableForUpdate(ctx, cmd.LoadRef())
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	notifications := make([]notification.Notification, 0, len(candidates))
	for _, o := range candidates {
		if o.ID().IsEqual(cmd.ExceptOfferID()) {
			continue
		}

		event, rejectErr := o.Reject(cmd.AdminID(), cmd.Notes(), now)
		if rejectErr != nil {
			return 0, rejectErr
		}
		if err = offers.Update(ctx, o); err != nil {
			return 0, err
		}
		if err = events.Add(ctx, event); err != nil {
			return 0, err
		}

		notifications = append(notifications,
			notification.New(notification.OfferRejected, o.CarrierID(), offerPayload(o), now))
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.notifier.Notify(ctx, notifications...)
	return len(notifications), nil
}
