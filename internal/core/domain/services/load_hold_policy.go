package services

import (
	"fmt"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/errs"
)

// LoadHoldPolicy is a domain service keeping one binding holder per load. A load
// can be held through an award on its bid or through the assignment of an
// accepted offer; the two paths must never name different carriers.
//
// Business rules:
//   - A bid cannot be awarded to a carrier other than the load's assignee
//   - An offer cannot be accepted while the load already has an assignment
//   - An offer cannot be accepted when the load's bid is no_contest or completed
//   - An offer cannot be accepted when the load's bid is awarded to another carrier
//
// Example usage:
//
//	policy := services.NewLoadHoldPolicy()
//	if err := policy.EnsureCanAward(bid, winnerID, assignment); err != nil {
//	    return err // ConflictError
//	}
type LoadHoldPolicy struct{}

// NewLoadHoldPolicy creates a new LoadHoldPolicy instance.
func NewLoadHoldPolicy() LoadHoldPolicy {
	return LoadHoldPolicy{}
}

// EnsureCanAward checks an award against the load's existing assignment, which
// may be nil.
func (LoadHoldPolicy) EnsureCanAward(bid *auction.Bid, winnerID kernel.ActorID, assignment *offer.Assignment) error {
	if err := bid.Validate(); err != nil {
		return err
	}
	if assignment != nil && !assignment.CarrierID().IsEqual(winnerID) {
		return errs.NewConflictError(fmt.Sprintf(
			"load %s is assigned to %s through offer %s", bid.Number(), assignment.CarrierID(), assignment.OfferID()))
	}
	return nil
}

// EnsureCanAccept checks an offer acceptance against the load's bid and
// assignment. Both may be nil: offers can target loads that were never auctioned.
func (LoadHoldPolicy) EnsureCanAccept(bid *auction.Bid, o *offer.Offer, assignment *offer.Assignment) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if assignment != nil {
		return errs.NewConflictError(fmt.Sprintf(
			"load %s is already assigned to %s", o.LoadRef(), assignment.CarrierID()))
	}
	if bid == nil {
		return nil
	}

	switch status := bid.Status(); status {
	case auction.NoContest, auction.Completed:
		return errs.NewConflictError(fmt.Sprintf("bid %s is %s", bid.Number(), status))
	case auction.Awarded:
		if winner := bid.ActiveAward().WinnerID(); !winner.IsEqual(o.CarrierID()) {
			return errs.NewConflictError(fmt.Sprintf("bid %s is awarded to %s", bid.Number(), winner))
		}
	}
	return nil
}
