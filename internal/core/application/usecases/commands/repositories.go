// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, a unit of work that locks
// the bid or offer row it changes, commit, then notification enqueue.
package commands

import (
	"context"

	"loadboard/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	AwardRepoFactory interface {
		AwardRepository() ports.AwardRepository
	}

	CarrierBidRepoFactory interface {
		CarrierBidRepository() ports.CarrierBidRepository
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	OfferEventRepoFactory interface {
		OfferEventRepository() ports.OfferEventRepository
	}

	LifecycleEventRepoFactory interface {
		LifecycleEventRepository() ports.LifecycleEventRepository
	}

	// BidUoW covers bid ingestion and carrier bidding.
	BidUoW interface {
		TxManager
		BidRepoFactory
		CarrierBidRepoFactory
	}

	BidUoWFactory interface {
		Create() BidUoW
	}

	// AwardUoW covers the award state machine. Award decisions read the load's
	// assignment, carrier bids, offers and ledger tail under the bid row lock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   bid, err := uow.BidRepository().GetForUpdate(ctx, number)
	//   award, err := bid.Award(...)
	//   err = uow.AwardRepository().Add(ctx, award)
	//
	//   err = uow.Commit(ctx)
	AwardUoW interface {
		TxManager
		BidRepoFactory
		AwardRepoFactory
		CarrierBidRepoFactory
		OfferRepoFactory
		AssignmentRepoFactory
		LifecycleEventRepoFactory
	}

	AwardUoWFactory interface {
		Create() AwardUoW
	}

	// OfferUoW covers the offer negotiation workflow. Acceptance also locks the
	// load's bid so that it serializes with award decisions.
	OfferUoW interface {
		TxManager
		BidRepoFactory
		OfferRepoFactory
		AssignmentRepoFactory
		OfferEventRepoFactory
	}

	OfferUoWFactory interface {
		Create() OfferUoW
	}

	// LedgerUoW covers appends to the fulfillment ledger.
	LedgerUoW interface {
		TxManager
		BidRepoFactory
		LifecycleEventRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
