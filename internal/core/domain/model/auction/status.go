package auction

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// Status is the derived lifecycle state of a bid.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota

	// Open bids accept carrier bids and can be awarded.
	Open

	// Awarded bids have exactly one active award.
	Awarded

	// NoContest bids will not be awarded to anyone.
	NoContest

	// Completed bids were delivered and closed by an admin.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Open:      "open",
		Awarded:   "awarded",
		NoContest: "no_contest",
		Completed: "completed",
	}
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid bid status", raw))
}

// DeriveStatus is the single projection rule shared by the aggregate and the
// read side. A completed marker wins over a no-contest marker, which wins over
// an active award.
func DeriveStatus(completed, noContest, hasActiveAward bool) Status {
	switch {
	case completed:
		return Completed
	case noContest:
		return NoContest
	case hasActiveAward:
		return Awarded
	default:
		return Open
	}
}

// IsTerminal reports whether the status no longer allows awards.
func (s Status) IsTerminal() bool {
	return s == NoContest || s == Completed
}
