// Package clock provides the time sources used by handlers and jobs.
package clock

import "time"

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant. Tests only.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
