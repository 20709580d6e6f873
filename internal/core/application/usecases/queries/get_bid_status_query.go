package queries

import (
	"errors"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var (
	ErrGetBidStatusQueryIsNotConstructed = errors.New(
		"GetBidStatusQuery must be created via NewGetBidStatusQuery constructor",
	)
)

// GetBidStatusQuery reads the derived status of one bid.
type GetBidStatusQuery struct {
	bidNumber kernel.BidNumber

	guard guard.ConstructorGuard
}

func NewGetBidStatusQuery(bidNumber string) (GetBidStatusQuery, error) {
	number, err := kernel.NewBidNumber(bidNumber)
	if err != nil {
		return GetBidStatusQuery{}, err
	}

	return GetBidStatusQuery{
		bidNumber: number,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetBidStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetBidStatusQueryIsNotConstructed)
}

func (q GetBidStatusQuery) BidNumber() kernel.BidNumber { return q.bidNumber }

// GetBidStatusQueryResponse carries the status and, when awarded or
// completed, the winner.
type GetBidStatusQueryResponse struct {
	BidNumber string
	Status    auction.Status
	WinnerID  *string
}
