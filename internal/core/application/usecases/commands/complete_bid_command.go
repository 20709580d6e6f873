package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrCompleteBidCommandIsNotConstructed = errors.New(
	"CompleteBidCommand must be created via NewCompleteBidCommand constructor",
)

// CompleteBidCommand closes an awarded bid once its delivery is on the ledger.
type CompleteBidCommand struct {
	bidNumber kernel.BidNumber
	adminID   kernel.ActorID

	guard guard.ConstructorGuard
}

func NewCompleteBidCommand(bidNumber, adminID string) (CompleteBidCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(numberErr, adminErr); err != nil {
		return CompleteBidCommand{}, err
	}

	return CompleteBidCommand{
		bidNumber: number,
		adminID:   admin,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteBidCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBidCommandIsNotConstructed)
}

func (c CompleteBidCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c CompleteBidCommand) AdminID() kernel.ActorID     { return c.adminID }
