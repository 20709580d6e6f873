package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand records a carrier's price on an open bid. Bidding again on the
// same bid revises the carrier's previous price.
type PlaceBidCommand struct {
	bidNumber kernel.BidNumber
	carrierID kernel.ActorID
	amount    kernel.Money
	notes     string

	guard guard.ConstructorGuard
}

func NewPlaceBidCommand(bidNumber, carrierID string, amountCents int64, notes string) (PlaceBidCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	carrier, carrierErr := kernel.NewActorID("carrier_id", carrierID)
	amount, amountErr := kernel.NewPositiveMoney("amount", amountCents)
	if err := errors.Join(numberErr, carrierErr, amountErr); err != nil {
		return PlaceBidCommand{}, err
	}

	return PlaceBidCommand{
		bidNumber: number,
		carrierID: carrier,
		amount:    amount,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

func (c PlaceBidCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c PlaceBidCommand) CarrierID() kernel.ActorID   { return c.carrierID }
func (c PlaceBidCommand) Amount() kernel.Money        { return c.amount }
func (c PlaceBidCommand) Notes() string               { return c.notes }
