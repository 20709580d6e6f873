// Package kernel provides the value objects shared by the auction, offer and
// ledger models: UUID identifiers, BidNumber, ActorID (identity-service caller ids)
// and Money in integer cents.
//
// Values are immutable and validated on construction; zero values are invalid
// wherever an identifier is required.
package kernel
