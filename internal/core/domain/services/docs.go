// Package services provides domain services that span more than one aggregate
// of the load marketplace.
//
// The package includes:
//   - LoadHoldPolicy: decides whether a bid may be awarded or an offer accepted,
//     so an auction award and an offer assignment never bind the same load to
//     two different carriers
//
// Domain services hold no state and perform no I/O; command handlers load the
// aggregates under lock and pass them in.
package services
