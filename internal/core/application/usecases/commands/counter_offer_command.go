package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrCounterOfferCommandIsNotConstructed = errors.New(
	"CounterOfferCommand must be created via NewCounterOfferCommand constructor",
)

// CounterOfferCommand answers a pending offer with an admin counter price.
type CounterOfferCommand struct {
	offerID       kernel.UUID
	counterAmount kernel.Money
	adminID       kernel.ActorID
	notes         string

	guard guard.ConstructorGuard
}

func NewCounterOfferCommand(offerID string, counterAmountCents int64, adminID, notes string) (CounterOfferCommand, error) {
	id, idErr := kernel.UUIDFromString(offerID)
	amount, amountErr := kernel.NewPositiveMoney("counter_amount", counterAmountCents)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(idErr, amountErr, adminErr); err != nil {
		return CounterOfferCommand{}, err
	}

	return CounterOfferCommand{
		offerID:       id,
		counterAmount: amount,
		adminID:       admin,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CounterOfferCommand) Validate() error {
	return c.guard.Validate(ErrCounterOfferCommandIsNotConstructed)
}

func (c CounterOfferCommand) OfferID() kernel.UUID        { return c.offerID }
func (c CounterOfferCommand) CounterAmount() kernel.Money { return c.counterAmount }
func (c CounterOfferCommand) AdminID() kernel.ActorID     { return c.adminID }
func (c CounterOfferCommand) Notes() string               { return c.notes }
