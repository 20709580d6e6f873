package queries

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var (
	ErrListLifecycleEventsQueryIsNotConstructed = errors.New(
		"ListLifecycleEventsQuery must be created via NewListLifecycleEventsQuery constructor",
	)
)

// ListLifecycleEventsQuery reads a bid's fulfillment ledger.
type ListLifecycleEventsQuery struct {
	bidNumber kernel.BidNumber

	guard guard.ConstructorGuard
}

func NewListLifecycleEventsQuery(bidNumber string) (ListLifecycleEventsQuery, error) {
	number, err := kernel.NewBidNumber(bidNumber)
	if err != nil {
		return ListLifecycleEventsQuery{}, err
	}

	return ListLifecycleEventsQuery{
		bidNumber: number,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListLifecycleEventsQuery) Validate() error {
	return q.guard.Validate(ErrListLifecycleEventsQueryIsNotConstructed)
}

func (q ListLifecycleEventsQuery) BidNumber() kernel.BidNumber { return q.bidNumber }
