package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrRejectOtherOffersCommandIsNotConstructed = errors.New(
	"RejectOtherOffersCommand must be created via NewRejectOtherOffersCommand constructor",
)

// RejectOtherOffersCommand rejects every undecided offer on a load except one.
// Accepting an offer never does this implicitly; callers opt in with this command.
type RejectOtherOffersCommand struct {
	loadRef       kernel.BidNumber
	exceptOfferID kernel.UUID
	adminID       kernel.ActorID
	notes         string

	guard guard.ConstructorGuard
}

func NewRejectOtherOffersCommand(loadRef, exceptOfferID, adminID, notes string) (RejectOtherOffersCommand, error) {
	ref, refErr := kernel.NewBidNumber(loadRef)
	except, exceptErr := kernel.UUIDFromString(exceptOfferID)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(refErr, exceptErr, adminErr); err != nil {
		return RejectOtherOffersCommand{}, err
	}

	return RejectOtherOffersCommand{
		loadRef:       ref,
		exceptOfferID: except,
		adminID:       admin,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOtherOffersCommand) Validate() error {
	return c.guard.Validate(ErrRejectOtherOffersCommandIsNotConstructed)
}

func (c RejectOtherOffersCommand) LoadRef() kernel.BidNumber  { return c.loadRef }
func (c RejectOtherOffersCommand) ExceptOfferID() kernel.UUID { return c.exceptOfferID }
func (c RejectOtherOffersCommand) AdminID() kernel.ActorID    { return c.adminID }
func (c RejectOtherOffersCommand) Notes() string              { return c.notes }
