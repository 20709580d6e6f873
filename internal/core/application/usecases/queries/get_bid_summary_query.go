package queries

import (
	"errors"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/guard"
)

var (
	ErrGetBidSummaryQueryIsNotConstructed = errors.New(
		"GetBidSummaryQuery must be created via NewGetBidSummaryQuery constructor",
	)
)

// GetBidSummaryQuery reads everything known about one bid as a single
// consistent snapshot.
//
// Example:
//
//	query, err := NewGetBidSummaryQuery("9001", "carrier-7")
//	summary, err := handler.Handle(ctx, query)
//	if summary.OwnBid != nil {
//	    fmt.Println("your price:", summary.OwnBid.Amount.Dollars())
//	}
type GetBidSummaryQuery struct {
	bidNumber kernel.BidNumber
	callerID  string

	guard guard.ConstructorGuard
}

// NewGetBidSummaryQuery validates the bid number. callerID may be empty, in
// which case the summary carries no own bid.
func NewGetBidSummaryQuery(bidNumber, callerID string) (GetBidSummaryQuery, error) {
	number, err := kernel.NewBidNumber(bidNumber)
	if err != nil {
		return GetBidSummaryQuery{}, err
	}

	return GetBidSummaryQuery{
		bidNumber: number,
		callerID:  strings.TrimSpace(callerID),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetBidSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetBidSummaryQueryIsNotConstructed)
}

func (q GetBidSummaryQuery) BidNumber() kernel.BidNumber { return q.bidNumber }
func (q GetBidSummaryQuery) CallerID() string            { return q.callerID }

// MarkerView is a no-contest or completion marker.
type MarkerView struct {
	At    time.Time
	By    string
	Notes string
}

// AwardView is one award row, active or removed.
type AwardView struct {
	ID         kernel.UUID
	WinnerID   string
	Amount     kernel.Money
	Margin     kernel.Money
	AdminNotes string
	AwardedBy  string
	AwardedAt  time.Time
	Removed    bool
	RemovedAt  *time.Time
	RemovedBy  *string
}

// CarrierBidView is one carrier's current price.
type CarrierBidView struct {
	ID        kernel.UUID
	CarrierID string
	Amount    kernel.Money
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfferEventView is one audit row of an offer.
type OfferEventView struct {
	Action      string
	OldStatus   *string
	NewStatus   string
	OldAmount   *kernel.Money
	NewAmount   *kernel.Money
	Notes       string
	PerformedBy *string
	PerformedAt time.Time
}

// OfferView is an offer with its full history.
type OfferView struct {
	ID            kernel.UUID
	CarrierID     string
	Amount        kernel.Money
	Note          string
	Status        offer.Status
	CounterAmount *kernel.Money
	AdminNotes    string
	ExpiresAt     *time.Time
	DecidedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Events        []OfferEventView
}

// AssignmentView is the load's binding outcome from an accepted offer.
type AssignmentView struct {
	ID        kernel.UUID
	OfferID   kernel.UUID
	CarrierID string
	Price     kernel.Money
	CreatedBy string
	CreatedAt time.Time
}

// LifecycleEventView is one ledger entry.
type LifecycleEventView struct {
	ID         kernel.UUID
	Type       ledger.EventType
	Details    ledger.Details
	OccurredAt time.Time
	RecordedBy string
	RecordedAt time.Time
}

// BidSummary is the read model of one bid. CarrierBids are lowest price first.
type BidSummary struct {
	BidNumber     string
	Origin        string
	Destination   string
	Stops         []string
	DistanceMiles int
	PickupAt      *time.Time
	DeliveryAt    *time.Time
	Tag           string
	ExpiresAt     time.Time
	CreatedAt     time.Time

	Status      auction.Status
	NoContest   *MarkerView
	Completed   *MarkerView
	ActiveAward *AwardView
	Awards      []AwardView

	CarrierBids []CarrierBidView
	BidCount    int
	OwnBid      *CarrierBidView

	Offers     []OfferView
	Assignment *AssignmentView

	Events []LifecycleEventView
}
