package offer

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
)

// Assignment is the binding outcome of an accepted offer: the carrier holds the
// load at the accepted price. It is created once, together with the acceptance,
// and never changes afterwards.
type Assignment struct {
	id        kernel.UUID
	offerID   kernel.UUID
	loadRef   kernel.BidNumber
	carrierID kernel.ActorID
	price     kernel.Money
	createdBy kernel.ActorID
	createdAt time.Time
}

// RestoreAssignment rebuilds an assignment loaded from storage.
func RestoreAssignment(
	id, offerID kernel.UUID,
	loadRef kernel.BidNumber,
	carrierID kernel.ActorID,
	price kernel.Money,
	createdBy kernel.ActorID,
	createdAt time.Time,
) *Assignment {
	return &Assignment{
		id:        id,
		offerID:   offerID,
		loadRef:   loadRef,
		carrierID: carrierID,
		price:     price,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (a *Assignment) ID() kernel.UUID           { return a.id }
func (a *Assignment) OfferID() kernel.UUID      { return a.offerID }
func (a *Assignment) LoadRef() kernel.BidNumber { return a.loadRef }
func (a *Assignment) CarrierID() kernel.ActorID { return a.carrierID }
func (a *Assignment) Price() kernel.Money       { return a.price }
func (a *Assignment) CreatedBy() kernel.ActorID { return a.createdBy }
func (a *Assignment) CreatedAt() time.Time      { return a.createdAt }
