// Package notification describes the messages the engine hands to the
// notification queue after a state transition commits.
package notification

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
)

// Kind names the template the delivery pipeline renders for a recipient.
type Kind string

const (
	BidAwarded     Kind = "bid_awarded"
	BidLost        Kind = "bid_lost"
	BidNoContest   Kind = "bid_no_contest"
	AwardRevoked   Kind = "award_revoked"
	BidCompleted   Kind = "bid_completed"
	OfferCountered Kind = "offer_countered"
	OfferAccepted  Kind = "offer_accepted"
	OfferRejected  Kind = "offer_rejected"
	OfferExpired   Kind = "offer_expired"
)

// Notification is one queued message for one recipient.
type Notification struct {
	ID          kernel.UUID
	Kind        Kind
	RecipientID kernel.ActorID
	Payload     map[string]any
	CreatedAt   time.Time
}

// New builds a notification stamped with a fresh id.
func New(kind Kind, recipient kernel.ActorID, payload map[string]any, now time.Time) Notification {
	if payload == nil {
		payload = map[string]any{}
	}
	return Notification{
		ID:          kernel.NewUUID(),
		Kind:        kind,
		RecipientID: recipient,
		Payload:     payload,
		CreatedAt:   now.UTC(),
	}
}

// Broadcast builds the same notification for every recipient, skipping
// duplicates and the excluded ids.
func Broadcast(
	kind Kind,
	recipients []kernel.ActorID,
	exclude []kernel.ActorID,
	payload map[string]any,
	now time.Time,
) []Notification {
	seen := make(map[string]struct{}, len(recipients)+len(exclude))
	for _, e := range exclude {
		seen[e.String()] = struct{}{}
	}

	out := make([]Notification, 0, len(recipients))
	for _, r := range recipients {
		if r.IsZero() {
			continue
		}
		if _, ok := seen[r.String()]; ok {
			continue
		}
		seen[r.String()] = struct{}{}
		out = append(out, New(kind, r, payload, now))
	}
	return out
}
