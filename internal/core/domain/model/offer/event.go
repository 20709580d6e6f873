package offer

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
)

// Action names an offer decision recorded in the audit trail.
type Action string

const (
	ActionSubmitted Action = "submitted"
	ActionCountered Action = "countered"
	ActionAccepted  Action = "accepted"
	ActionRejected  Action = "rejected"
	ActionExpired   Action = "expired"
)

// Event is an immutable audit row describing one transition of an offer.
// PerformedBy is nil for transitions made by the system (expiry).
type Event struct {
	ID          kernel.UUID
	OfferID     kernel.UUID
	Action      Action
	OldStatus   Status
	NewStatus   Status
	OldAmount   *kernel.Money
	NewAmount   *kernel.Money
	Notes       string
	PerformedBy *kernel.ActorID
	PerformedAt time.Time
}
