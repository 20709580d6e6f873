// Package auction provides the Bid aggregate and the award state machine of the
// load marketplace.
//
// The package includes:
//   - Bid: the aggregate root identified by a caller-visible bid number
//   - Award: the designation of a winning carrier, soft-removed rather than deleted
//   - CarrierBid: a carrier's price on an open bid, one per carrier
//   - Status: the lifecycle state, always derived and never stored
//
// Key business rules:
//   - A bid has at most one active (non-removed) award at any time
//   - Status precedence is completed, then no_contest, then awarded, then open
//   - remove-award is only possible from awarded and reverts the bid to open
//   - no_contest is idempotent; from awarded it soft-removes the active award
//   - completed requires an awarded bid whose ledger holds a delivery event
//   - Carrier bids are accepted only while the bid is open and not expired
package auction
