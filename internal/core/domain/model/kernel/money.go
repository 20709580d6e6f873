package kernel

import (
	"fmt"

	"loadboard/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an amount in integer minor-currency units (cents).
type Money struct {
	cents int64
}

// NewPositiveMoney rejects zero and negative amounts.
func NewPositiveMoney(name string, cents int64) (Money, error) {
	if cents <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not greater than 0", cents))
	}
	return Money{cents: cents}, nil
}

// NewMoney accepts zero (used for margins) but not negative amounts.
func NewMoney(name string, cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MoneyFromCents restores a stored amount without validation.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

// Dollars renders the amount as a fixed two-decimal string, e.g. 150000 -> "1500.00".
func (m Money) Dollars() string {
	return decimal.New(m.cents, -2).StringFixed(2)
}

func (m Money) IsZero() bool {
	return m.cents == 0
}
