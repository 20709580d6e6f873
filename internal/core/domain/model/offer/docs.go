// Package offer models the negotiation of carrier price offers against a load.
//
// An Offer starts pending and leaves pending exactly once: to countered, accepted,
// rejected or expired. A countered offer can still be accepted or rejected. Every
// decision produces an immutable Event for the audit trail, and acceptance produces
// the binding Assignment in the same step.
package offer
