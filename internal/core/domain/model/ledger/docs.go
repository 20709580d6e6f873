// Package ledger models the fulfillment event ledger: the append-only, ordered
// record of the physical progress of an awarded bid.
//
// Each event type validates its own payload and names the timestamp it is
// ordered by. Tail summarises the end of a bid's ledger and decides whether the
// next event may be appended: ordering timestamps are non-decreasing and after a
// delivery only note and document amendments are accepted.
package ledger
