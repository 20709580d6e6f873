// Package ports defines the contracts between the application core and its
// adapters: repositories bound to a unit of work, the notification queue and the
// clock.
package ports

import (
	"context"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
)

// BidRepository persists Bid aggregates. Status is never written: only the
// metadata, expiration and the no-contest and completed markers are stored.
type BidRepository interface {
	// Add persists a new bid. A duplicate bid number yields ConflictError.
	Add(ctx context.Context, bid *auction.Bid) error

	// Update persists the markers of an existing bid.
	Update(ctx context.Context, bid *auction.Bid) error

	// Get loads a bid with its active award. Returns NotFoundError when missing.
	Get(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error)

	// GetForUpdate loads a bid like Get and locks its row until the unit of work
	// ends. Every state change on a bid goes through this lock.
	GetForUpdate(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error)
}

// AwardRepository persists award rows. Awards are inserted once and only ever
// updated to record their removal.
type AwardRepository interface {
	// Add inserts an active award. A second active award for the same bid yields
	// ConflictError from the storage constraint.
	Add(ctx context.Context, award *auction.Award) error

	// Update records the removal of an award.
	Update(ctx context.Context, award *auction.Award) error
}

// CarrierBidRepository persists carrier prices on bids.
type CarrierBidRepository interface {
	Add(ctx context.Context, carrierBid *auction.CarrierBid) error
	Update(ctx context.Context, carrierBid *auction.CarrierBid) error

	// Find returns the carrier's bid or NotFoundError.
	Find(ctx context.Context, number kernel.BidNumber, carrierID kernel.ActorID) (*auction.CarrierBid, error)

	// ListBidderIDs returns every carrier that placed a bid, ordered by id.
	ListBidderIDs(ctx context.Context, number kernel.BidNumber) ([]kernel.ActorID, error)
}
