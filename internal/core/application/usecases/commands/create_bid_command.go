package commands

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

var ErrCreateBidCommandIsNotConstructed = errors.New(
	"CreateBidCommand must be created via NewCreateBidCommand constructor",
)

// CreateBidCommand ingests a new load for auction. Bids arrive from an external
// feed with their own bid number and an expiration for the bidding window.
//
// Example:
//
//	meta, _ := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
//	cmd, err := NewCreateBidCommand("9001", meta, time.Now().Add(25*time.Minute))
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateBidCommand struct {
	bidNumber kernel.BidNumber
	metadata  auction.Metadata
	expiresAt time.Time

	guard guard.ConstructorGuard
}

func NewCreateBidCommand(bidNumber string, metadata auction.Metadata, expiresAt time.Time) (CreateBidCommand, error) {
	number, err := kernel.NewBidNumber(bidNumber)
	if expiresAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("expires_at"))
	}
	if err != nil {
		return CreateBidCommand{}, err
	}

	return CreateBidCommand{
		bidNumber: number,
		metadata:  metadata,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBidCommand) Validate() error {
	return c.guard.Validate(ErrCreateBidCommandIsNotConstructed)
}

func (c CreateBidCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c CreateBidCommand) Metadata() auction.Metadata  { return c.metadata }
func (c CreateBidCommand) ExpiresAt() time.Time        { return c.expiresAt }
