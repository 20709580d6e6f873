package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrRemoveAwardCommandIsNotConstructed = errors.New(
	"RemoveAwardCommand must be created via NewRemoveAwardCommand constructor",
)

// RemoveAwardCommand revokes the active award of a bid, returning it to open.
type RemoveAwardCommand struct {
	bidNumber kernel.BidNumber
	adminID   kernel.ActorID

	guard guard.ConstructorGuard
}

func NewRemoveAwardCommand(bidNumber, adminID string) (RemoveAwardCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(numberErr, adminErr); err != nil {
		return RemoveAwardCommand{}, err
	}

	return RemoveAwardCommand{
		bidNumber: number,
		adminID:   admin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveAwardCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAwardCommandIsNotConstructed)
}

func (c RemoveAwardCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c RemoveAwardCommand) AdminID() kernel.ActorID     { return c.adminID }
