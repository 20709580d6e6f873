package ledger

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// Tail is what the ledger of one bid looks like at its end: the latest event by
// ordering timestamp and whether a delivery was ever recorded.
type Tail struct {
	Latest    *Event
	Delivered bool
}

// CheckAppend decides whether next may follow the tail. It returns
// OutOfOrderError when next is ordered before the latest event and
// ConflictError when a non-amendment follows a delivery. Equal timestamps are
// accepted.
func (t Tail) CheckAppend(next *Event) error {
	if t.Delivered && !next.Type().IsAmendment() {
		return errs.NewConflictError(fmt.Sprintf(
			"bid %s was delivered; only note and document events may follow", next.BidNumber()))
	}
	if t.Latest != nil && next.OccurredAt().Before(t.Latest.OccurredAt()) {
		return errs.NewOutOfOrderError(next.BidNumber().String(), t.Latest.OccurredAt(), next.OccurredAt())
	}
	return nil
}

// Advance returns the tail after next was appended.
func (t Tail) Advance(next *Event) Tail {
	return Tail{
		Latest:    next,
		Delivered: t.Delivered || next.Type() == Delivery,
	}
}
