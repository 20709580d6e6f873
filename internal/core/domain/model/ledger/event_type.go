package ledger

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

type EventType string

const (
	CheckIn         EventType = "check_in"
	Pickup          EventType = "pickup"
	Departure       EventType = "departure"
	CheckInDelivery EventType = "check_in_delivery"
	Delivery        EventType = "delivery"
	Note            EventType = "note"
	Document        EventType = "document"
)

var eventTypes = []EventType{CheckIn, Pickup, Departure, CheckInDelivery, Delivery, Note, Document}

// ParseEventType maps a wire name to an EventType.
func ParseEventType(raw string) (EventType, error) {
	for _, t := range eventTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("event_type", fmt.Errorf("%q is not a lifecycle event type", raw))
}

// IsAmendment reports whether the type annotates the ledger rather than
// recording physical progress. Amendments are the only events accepted after a
// delivery.
func (t EventType) IsAmendment() bool {
	return t == Note || t == Document
}

func (t EventType) String() string {
	return string(t)
}
