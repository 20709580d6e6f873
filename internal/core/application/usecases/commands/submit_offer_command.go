package commands

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New(
	"SubmitOfferCommand must be created via NewSubmitOfferCommand constructor",
)

// SubmitOfferCommand proposes a carrier price for a load.
//
// Example:
//
//	cmd, err := NewSubmitOfferCommand("L100", "C1", 150000, "can pick up today", nil)
//	if err != nil {
//	    return err // amount <= 0 and similar
//	}
//	offerID, err := handler.Handle(ctx, cmd)
type SubmitOfferCommand struct {
	loadRef   kernel.BidNumber
	carrierID kernel.ActorID
	amount    kernel.Money
	note      string
	expiresAt *time.Time

	guard guard.ConstructorGuard
}

func NewSubmitOfferCommand(
	loadRef, carrierID string,
	amountCents int64,
	note string,
	expiresAt *time.Time,
) (SubmitOfferCommand, error) {
	ref, refErr := kernel.NewBidNumber(loadRef)
	carrier, carrierErr := kernel.NewActorID("carrier_id", carrierID)
	amount, amountErr := kernel.NewPositiveMoney("amount", amountCents)
	if err := errors.Join(refErr, carrierErr, amountErr); err != nil {
		return SubmitOfferCommand{}, err
	}

	return SubmitOfferCommand{
		loadRef:   ref,
		carrierID: carrier,
		amount:    amount,
		note:      note,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

func (c SubmitOfferCommand) LoadRef() kernel.BidNumber { return c.loadRef }
func (c SubmitOfferCommand) CarrierID() kernel.ActorID { return c.carrierID }
func (c SubmitOfferCommand) Amount() kernel.Money      { return c.amount }
func (c SubmitOfferCommand) Note() string              { return c.note }
func (c SubmitOfferCommand) ExpiresAt() *time.Time     { return c.expiresAt }
