// Package guard provides ConstructorGuard, a marker embedded in commands, queries
// and value objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard, so a zero-value struct
// that embeds it fails validation.
//
// Example:
//
//	type AwardBidCommand struct {
//	    bidNumber kernel.BidNumber
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AwardBidCommand) Validate() error {
//	    return c.guard.Validate(ErrAwardBidCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
