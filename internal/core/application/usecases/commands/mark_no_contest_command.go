package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrMarkNoContestCommandIsNotConstructed = errors.New(
	"MarkNoContestCommand must be created via NewMarkNoContestCommand constructor",
)

// MarkNoContestCommand declares that a bid will not be awarded to anyone.
type MarkNoContestCommand struct {
	bidNumber kernel.BidNumber
	adminID   kernel.ActorID
	notes     string

	guard guard.ConstructorGuard
}

func NewMarkNoContestCommand(bidNumber, adminID, notes string) (MarkNoContestCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	if err := errors.Join(numberErr, adminErr); err != nil {
		return MarkNoContestCommand{}, err
	}

	return MarkNoContestCommand{
		bidNumber: number,
		adminID:   admin,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNoContestCommand) Validate() error {
	return c.guard.Validate(ErrMarkNoContestCommandIsNotConstructed)
}

func (c MarkNoContestCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c MarkNoContestCommand) AdminID() kernel.ActorID     { return c.adminID }
func (c MarkNoContestCommand) Notes() string               { return c.notes }
