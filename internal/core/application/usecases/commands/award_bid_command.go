package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrAwardBidCommandIsNotConstructed = errors.New(
	"AwardBidCommand must be created via NewAwardBidCommand constructor",
)

// AwardBidCommand designates the winning carrier of a bid.
//
// Example:
//
//	cmd, err := NewAwardBidCommand("9001", "C2", 200000, "admin-1", "", 0)
//	if err != nil {
//	    return err // ValidationError
//	}
//	awardID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another award is active or the bid is closed
//	}
type AwardBidCommand struct {
	bidNumber  kernel.BidNumber
	winnerID   kernel.ActorID
	amount     kernel.Money
	adminID    kernel.ActorID
	adminNotes string
	margin     kernel.Money

	guard guard.ConstructorGuard
}

// NewAwardBidCommand validates the award input. The winning amount must be
// positive; the margin may be zero.
func NewAwardBidCommand(
	bidNumber, winnerID string,
	amountCents int64,
	adminID, adminNotes string,
	marginCents int64,
) (AwardBidCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	winner, winnerErr := kernel.NewActorID("winner_id", winnerID)
	amount, amountErr := kernel.NewPositiveMoney("winner_amount", amountCents)
	admin, adminErr := kernel.NewActorID("admin_id", adminID)
	margin, marginErr := kernel.NewMoney("margin", marginCents)
	if err := errors.Join(numberErr, winnerErr, amountErr, adminErr, marginErr); err != nil {
		return AwardBidCommand{}, err
	}

	return AwardBidCommand{
		bidNumber:  number,
		winnerID:   winner,
		amount:     amount,
		adminID:    admin,
		adminNotes: adminNotes,
		margin:     margin,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AwardBidCommand) Validate() error {
	return c.guard.Validate(ErrAwardBidCommandIsNotConstructed)
}

func (c AwardBidCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c AwardBidCommand) WinnerID() kernel.ActorID    { return c.winnerID }
func (c AwardBidCommand) Amount() kernel.Money        { return c.amount }
func (c AwardBidCommand) AdminID() kernel.ActorID     { return c.adminID }
func (c AwardBidCommand) AdminNotes() string          { return c.adminNotes }
func (c AwardBidCommand) Margin() kernel.Money        { return c.margin }
