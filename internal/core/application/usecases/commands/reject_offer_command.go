package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand declines a pending or countered offer.
type RejectOfferCommand struct {
	offerID kernel.UUID
	adminID kernel.ActorID
	notes   string

	guard guard.ConstructorGuard
}

func NewRejectOfferCommand(offerID, adminID, notes string) (RejectOfferCommand, error) {
	id, idErr := kernel.UUIDFromString(offerID)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(idErr, adminErr); err != nil {
		return RejectOfferCommand{}, err
	}

	return RejectOfferCommand{
		offerID: id,
		adminID: admin,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

func (c RejectOfferCommand) OfferID() kernel.UUID    { return c.offerID }
func (c RejectOfferCommand) AdminID() kernel.ActorID { return c.adminID }
func (c RejectOfferCommand) Notes() string           { return c.notes }
