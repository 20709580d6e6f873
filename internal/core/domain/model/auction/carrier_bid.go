package auction

import (
	"strings"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

const maxCarrierBidNotesLength = 1000

// CarrierBid is one carrier's price on an auctioned bid. A carrier holds at most
// one CarrierBid per bid; bidding again revises it.
type CarrierBid struct {
	id        kernel.UUID
	bidNumber kernel.BidNumber
	carrierID kernel.ActorID
	amount    kernel.Money
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

// PlaceCarrierBid checks that the bid is open and unexpired and creates the
// carrier's first price on it.
func PlaceCarrierBid(
	bid *Bid,
	id kernel.UUID,
	carrierID kernel.ActorID,
	amount kernel.Money,
	notes string,
	now time.Time,
) (*CarrierBid, error) {
	if err := bid.EnsureAcceptsCarrierBids(now); err != nil {
		return nil, err
	}
	if carrierID.IsZero() {
		return nil, errs.NewValueIsRequiredError("carrier_id")
	}
	if err := validateCarrierBid(amount, notes); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &CarrierBid{
		id:        id,
		bidNumber: bid.Number(),
		carrierID: carrierID,
		amount:    amount,
		notes:     strings.TrimSpace(notes),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreCarrierBid rebuilds a carrier bid loaded from storage.
func RestoreCarrierBid(
	id kernel.UUID,
	bidNumber kernel.BidNumber,
	carrierID kernel.ActorID,
	amount kernel.Money,
	notes string,
	createdAt, updatedAt time.Time,
) *CarrierBid {
	return &CarrierBid{
		id:        id,
		bidNumber: bidNumber,
		carrierID: carrierID,
		amount:    amount,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Revise replaces the carrier's price while the bid still accepts carrier bids.
func (c *CarrierBid) Revise(bid *Bid, amount kernel.Money, notes string, now time.Time) error {
	if !bid.Number().IsEqual(c.bidNumber) {
		return errs.NewValueIsInvalidError("bid_number")
	}
	if err := bid.EnsureAcceptsCarrierBids(now); err != nil {
		return err
	}
	if err := validateCarrierBid(amount, notes); err != nil {
		return err
	}

	c.amount = amount
	c.notes = strings.TrimSpace(notes)
	c.updatedAt = now.UTC()
	return nil
}

func (c *CarrierBid) ID() kernel.UUID             { return c.id }
func (c *CarrierBid) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c *CarrierBid) CarrierID() kernel.ActorID   { return c.carrierID }
func (c *CarrierBid) Amount() kernel.Money        { return c.amount }
func (c *CarrierBid) Notes() string               { return c.notes }
func (c *CarrierBid) CreatedAt() time.Time        { return c.createdAt }
func (c *CarrierBid) UpdatedAt() time.Time        { return c.updatedAt }

func validateCarrierBid(amount kernel.Money, notes string) error {
	if amount.Cents() <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	if len(notes) > maxCarrierBidNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxCarrierBidNotesLength)
	}
	return nil
}
