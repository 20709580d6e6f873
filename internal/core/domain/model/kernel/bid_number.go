package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"loadboard/internal/pkg/errs"
)

const maxBidNumberLength = 100

var bidNumberPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BidNumber is the caller-visible, externally assigned identifier of a bid.
// Offers reference the same value as their load reference.
type BidNumber struct {
	value string
}

// NewBidNumber trims and validates a bid number.
func NewBidNumber(raw string) (BidNumber, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return BidNumber{}, errs.NewValueIsRequiredError("bid_number")
	}
	if len(v) > maxBidNumberLength {
		return BidNumber{}, errs.NewValueIsOutOfRangeError("bid_number length", len(v), 1, maxBidNumberLength)
	}
	if !bidNumberPattern.MatchString(v) {
		return BidNumber{}, errs.NewValueIsInvalidErrorWithCause("bid_number", fmt.Errorf("%q has invalid characters", v))
	}
	return BidNumber{value: v}, nil
}

// MustNewBidNumber panics on invalid input. Tests and fixtures only.
func MustNewBidNumber(raw string) BidNumber {
	b, err := NewBidNumber(raw)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BidNumber) String() string {
	return b.value
}

func (b BidNumber) IsEqual(other BidNumber) bool {
	return b.value == other.value
}

func (b BidNumber) Validate() error {
	if b.value == "" {
		return errs.NewValueIsRequiredError("bid_number")
	}
	return nil
}
