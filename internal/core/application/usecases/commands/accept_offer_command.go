package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand accepts a pending or countered offer. Without an accepted
// price the carrier's original amount becomes the assignment price.
type AcceptOfferCommand struct {
	offerID       kernel.UUID
	adminID       kernel.ActorID
	acceptedPrice *kernel.Money
	notes         string

	guard guard.ConstructorGuard
}

func NewAcceptOfferCommand(offerID, adminID string, acceptedPriceCents *int64, notes string) (AcceptOfferCommand, error) {
	id, idErr := kernel.UUIDFromString(offerID)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)

	var (
		price    *kernel.Money
		priceErr error
	)
	if acceptedPriceCents != nil {
		p, err := kernel.NewPositiveMoney("accepted_price", *acceptedPriceCents)
		price, priceErr = &p, err
	}

	if err := errors.Join(idErr, adminErr, priceErr); err != nil {
		return AcceptOfferCommand{}, err
	}

	return AcceptOfferCommand{
		offerID:       id,
		adminID:       admin,
		acceptedPrice: price,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) OfferID() kernel.UUID         { return c.offerID }
func (c AcceptOfferCommand) AdminID() kernel.ActorID      { return c.adminID }
func (c AcceptOfferCommand) AcceptedPrice() *kernel.Money { return c.acceptedPrice }
func (c AcceptOfferCommand) Notes() string                { return c.notes }
