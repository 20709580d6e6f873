package ports

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
)

// OfferRepository persists offers. Reads ending in ForUpdate lock the returned
// rows until the unit of work ends.
type OfferRepository interface {
	Add(ctx context.Context, o *offer.Offer) error
	Update(ctx context.Context, o *offer.Offer) error

	// GetForUpdate returns the locked offer or NotFoundError.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// ListDecidableForUpdate returns the load's pending and countered offers.
	ListDecidableForUpdate(ctx context.Context, loadRef kernel.BidNumber) ([]*offer.Offer, error)

	// ListExpiredForUpdate returns up to limit pending offers whose expiration is
	// not after now. Rows locked by another transaction are skipped.
	ListExpiredForUpdate(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error)

	// ListCarrierIDs returns every carrier with an offer on the load.
	ListCarrierIDs(ctx context.Context, loadRef kernel.BidNumber) ([]kernel.ActorID, error)
}

// AssignmentRepository persists the binding outcome of accepted offers.
type AssignmentRepository interface {
	// Add inserts an assignment. A second assignment for the same offer or load
	// yields ConflictError.
	Add(ctx context.Context, assignment *offer.Assignment) error

	// FindByLoad returns the load's assignment or NotFoundError.
	FindByLoad(ctx context.Context, loadRef kernel.BidNumber) (*offer.Assignment, error)
}

// OfferEventRepository appends offer audit rows.
type OfferEventRepository interface {
	Add(ctx context.Context, event offer.Event) error
}
