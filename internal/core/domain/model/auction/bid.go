package auction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid was not created through NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")
)

// Marker records an admin decision that moves a bid into a terminal state.
type Marker struct {
	At    time.Time
	By    kernel.ActorID
	Notes string
}

// Bid is the aggregate root of the auction. It carries the load metadata, the
// expiration of the bidding window, the no-contest and completed markers and the
// currently active award, if any.
//
// Bid follows these invariants:
//   - At most one active award is attached at any time
//   - Status is derived from the markers and the active award, never stored
//   - Transitions happen only through Award, RemoveAward, MarkNoContest and Complete
type Bid struct {
	number    kernel.BidNumber
	metadata  Metadata
	expiresAt time.Time
	createdAt time.Time

	noContest *Marker
	completed *Marker

	// activeAward is the non-removed award, nil while open.
	activeAward *Award

	isConstructed bool
}

// NewBid creates an open bid.
//
// Example:
//
//	number, _ := kernel.NewBidNumber("9001")
//	meta, _ := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
//	bid, err := auction.NewBid(number, meta, now.Add(25*time.Minute), now)
func NewBid(number kernel.BidNumber, metadata Metadata, expiresAt, createdAt time.Time) (*Bid, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("expires_at")
	}
	if !expiresAt.After(createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"expires_at", fmt.Errorf("%s is not after creation time", expiresAt.UTC().Format(time.RFC3339)))
	}

	return &Bid{
		number:        number,
		metadata:      metadata,
		expiresAt:     expiresAt.UTC(),
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreBid rebuilds a bid loaded from storage together with its active award.
func RestoreBid(
	number kernel.BidNumber,
	metadata Metadata,
	expiresAt, createdAt time.Time,
	noContest, completed *Marker,
	activeAward *Award,
) (*Bid, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if activeAward != nil {
		if err := activeAward.Validate(); err != nil {
			return nil, err
		}
		if activeAward.IsRemoved() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"active_award", errors.New("removed award cannot be active"))
		}
	}

	return &Bid{
		number:        number,
		metadata:      metadata,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
		noContest:     noContest,
		completed:     completed,
		activeAward:   activeAward,
		isConstructed: true,
	}, nil
}

// Validate ensures the Bid was built through a constructor.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

func (b *Bid) Number() kernel.BidNumber { return b.number }
func (b *Bid) Metadata() Metadata       { return b.metadata }
func (b *Bid) ExpiresAt() time.Time     { return b.expiresAt }
func (b *Bid) CreatedAt() time.Time     { return b.createdAt }
func (b *Bid) NoContest() *Marker       { return b.noContest }
func (b *Bid) Completed() *Marker       { return b.completed }

// ActiveAward returns the current award or nil.
func (b *Bid) ActiveAward() *Award {
	return b.activeAward
}

// Status derives the lifecycle state from the markers and the active award.
func (b *Bid) Status() Status {
	return DeriveStatus(b.completed != nil, b.noContest != nil, b.activeAward != nil)
}

// IsExpired reports whether the bidding window has closed at now.
func (b *Bid) IsExpired(now time.Time) bool {
	return !now.Before(b.expiresAt)
}

// Award attaches a new active award to the bid.
//
// Returns ConflictError when an award is already active or when the bid is
// no_contest or completed. The returned Award must be persisted by the caller in
// the same unit of work.
func (b *Bid) Award(
	id kernel.UUID,
	winnerID kernel.ActorID,
	amount kernel.Money,
	margin kernel.Money,
	adminNotes string,
	adminID kernel.ActorID,
	now time.Time,
) (*Award, error) {
	switch status := b.Status(); status {
	case Open:
	case Awarded:
		return nil, errs.NewConflictError(fmt.Sprintf(
			"bid %s already has an active award to %s", b.number, b.activeAward.WinnerID()))
	default:
		return nil, errs.NewConflictError(fmt.Sprintf("bid %s is %s and cannot be awarded", b.number, status))
	}

	award, err := NewAward(id, b.number, winnerID, amount, margin, adminNotes, adminID, now)
	if err != nil {
		return nil, err
	}

	b.activeAward = award
	return award, nil
}

// RemoveAward soft-removes the active award and reverts the bid to open.
//
// Returns NotFoundError when no award is active and ConflictError when the bid
// is completed. The removed Award is returned for persistence.
func (b *Bid) RemoveAward(adminID kernel.ActorID, now time.Time) (*Award, error) {
	if b.completed != nil {
		return nil, errs.NewConflictError(fmt.Sprintf("bid %s is completed", b.number))
	}
	if b.activeAward == nil {
		return nil, errs.NewObjectNotFoundError("active award for bid", b.number.String())
	}

	removed := b.activeAward
	if err := removed.remove(adminID, now); err != nil {
		return nil, err
	}

	b.activeAward = nil
	return removed, nil
}

// MarkNoContest moves the bid to no_contest.
//
// It is idempotent: on a bid that is already no_contest it reports changed=false
// and leaves the bid untouched. From awarded the active award is soft-removed and
// returned for persistence. A completed bid yields ConflictError.
func (b *Bid) MarkNoContest(
	adminID kernel.ActorID,
	notes string,
	now time.Time,
) (changed bool, removed *Award, err error) {
	switch b.Status() {
	case NoContest:
		return false, nil, nil
	case Completed:
		return false, nil, errs.NewConflictError(fmt.Sprintf("bid %s is completed", b.number))
	case Awarded:
		removed = b.activeAward
		if err = removed.remove(adminID, now); err != nil {
			return false, nil, err
		}
		b.activeAward = nil
	}

	if adminID.IsZero() {
		return false, nil, errs.NewValueIsRequiredError("admin_id")
	}

	b.noContest = &Marker{At: now.UTC(), By: adminID, Notes: strings.TrimSpace(notes)}
	return true, removed, nil
}

// Complete closes an awarded bid. delivered must report whether the bid's
// ledger already holds a delivery event.
func (b *Bid) Complete(adminID kernel.ActorID, delivered bool, now time.Time) error {
	if status := b.Status(); status != Awarded {
		return errs.NewConflictError(fmt.Sprintf("bid %s is %s and cannot be completed", b.number, status))
	}
	if !delivered {
		return errs.NewConflictError(fmt.Sprintf("bid %s has no delivery event", b.number))
	}
	if adminID.IsZero() {
		return errs.NewValueIsRequiredError("admin_id")
	}

	b.completed = &Marker{At: now.UTC(), By: adminID}
	return nil
}

// EnsureAcceptsCarrierBids returns ConflictError unless the bid is open and its
// bidding window has not closed.
func (b *Bid) EnsureAcceptsCarrierBids(now time.Time) error {
	if status := b.Status(); status != Open {
		return errs.NewConflictError(fmt.Sprintf("bid %s is %s", b.number, status))
	}
	if b.IsExpired(now) {
		return errs.NewConflictError(fmt.Sprintf("bid %s expired at %s",
			b.number, b.expiresAt.UTC().Format(time.RFC3339)))
	}
	return nil
}

// EnsureAcceptsLifecycleEvents returns ConflictError unless the bid is awarded
// or completed.
func (b *Bid) EnsureAcceptsLifecycleEvents() error {
	if status := b.Status(); status != Awarded && status != Completed {
		return errs.NewConflictError(fmt.Sprintf("bid %s is %s and has no fulfillment", b.number, status))
	}
	return nil
}
