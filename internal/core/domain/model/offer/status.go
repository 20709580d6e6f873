package offer

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Countered
	Accepted
	Rejected
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Countered: "countered",
		Accepted:  "accepted",
		Rejected:  "rejected",
		Expired:   "expired",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus maps a stored or wire name to a Status.
func ParseStatus(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid offer status", raw))
}

// IsDecidable reports whether an admin may still accept or reject.
func (s Status) IsDecidable() bool {
	return s == Pending || s == Countered
}
