package queries

import (
	"errors"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/guard"
)

const (
	DefaultListBidsLimit = 50
	MaxListBidsLimit     = 200
	maxSearchLength      = 100
)

var (
	ErrListBidsQueryIsNotConstructed = errors.New(
		"ListBidsQuery must be created via NewListBidsQuery constructor",
	)
)

// ListBidsQuery pages through bids, newest first, optionally filtered by
// derived status and a case-insensitive search over bid number, origin and
// destination.
type ListBidsQuery struct {
	status auction.Status
	search string
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListBidsQuery validates the filters. An empty status lists every bid; a
// zero limit falls back to DefaultListBidsLimit.
func NewListBidsQuery(status, search string, limit, offset int) (ListBidsQuery, error) {
	var errList []error

	parsed := auction.Unknown
	if status = strings.TrimSpace(status); status != "" {
		s, err := auction.ParseStatus(status)
		if err != nil {
			errList = append(errList, err)
		}
		parsed = s
	}

	search = strings.TrimSpace(search)
	if len(search) > maxSearchLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("q length", len(search), 0, maxSearchLength))
	}

	if limit == 0 {
		limit = DefaultListBidsLimit
	}
	if limit < 1 || limit > MaxListBidsLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListBidsLimit))
	}
	if offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}

	if err := errors.Join(errList...); err != nil {
		return ListBidsQuery{}, err
	}

	return ListBidsQuery{
		status: parsed,
		search: search,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListBidsQuery) Validate() error {
	return q.guard.Validate(ErrListBidsQueryIsNotConstructed)
}

func (q ListBidsQuery) Status() auction.Status { return q.status }
func (q ListBidsQuery) Search() string         { return q.search }
func (q ListBidsQuery) Limit() int             { return q.limit }
func (q ListBidsQuery) Offset() int            { return q.offset }

// BidListItem is one row of the bid board.
type BidListItem struct {
	BidNumber     string
	Origin        string
	Destination   string
	DistanceMiles int
	PickupAt      *time.Time
	Tag           string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	Status        auction.Status
	WinnerID      *string
	WinnerAmount  *kernel.Money
	BidCount      int
	LowestAmount  *kernel.Money
}

// ListBidsQueryResponse is one page plus the number of matching bids.
type ListBidsQueryResponse struct {
	Items []BidListItem
	Total int
}
