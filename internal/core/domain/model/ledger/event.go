package ledger

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

const maxNotesLength = 4000

// DriverVehicle is one driver and the equipment they run. Team loads carry a
// second set.
type DriverVehicle struct {
	DriverName          string
	DriverPhone         string
	DriverLicenseNumber string
	DriverLicenseState  string
	TruckNumber         string
	TrailerNumber       string
}

// IsZero reports whether no field is set.
func (d DriverVehicle) IsZero() bool {
	return d == DriverVehicle{}
}

func (d DriverVehicle) trimmed() DriverVehicle {
	return DriverVehicle{
		DriverName:          strings.TrimSpace(d.DriverName),
		DriverPhone:         strings.TrimSpace(d.DriverPhone),
		DriverLicenseNumber: strings.TrimSpace(d.DriverLicenseNumber),
		DriverLicenseState:  strings.ToUpper(strings.TrimSpace(d.DriverLicenseState)),
		TruckNumber:         strings.TrimSpace(d.TruckNumber),
		TrailerNumber:       strings.TrimSpace(d.TrailerNumber),
	}
}

// Details is the payload of a lifecycle event. Which fields are required
// depends on the event type.
type Details struct {
	Location      string
	Timestamp     *time.Time
	PickupTime    *time.Time
	DepartureTime *time.Time
	DeliveryTime  *time.Time
	Notes         string
	Primary       DriverVehicle
	Secondary     *DriverVehicle
	DriverEmail   string
	Documents     []string
}

// Event is one entry of a bid's ledger. It is never updated or deleted.
type Event struct {
	id         kernel.UUID
	bidNumber  kernel.BidNumber
	eventType  EventType
	details    Details
	occurredAt time.Time
	recordedBy kernel.ActorID
	recordedAt time.Time
}

// NewEvent validates the payload for its type and resolves the ordering
// timestamp. Note and document amendments without a timestamp are stamped now.
func NewEvent(
	id kernel.UUID,
	bidNumber kernel.BidNumber,
	eventType EventType,
	details Details,
	recordedBy kernel.ActorID,
	now time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), bidNumber.Validate()); err != nil {
		return nil, err
	}
	if recordedBy.IsZero() {
		return nil, errs.NewValueIsRequiredError("recorded_by")
	}

	details = normalize(details)
	if eventType.IsAmendment() && details.Timestamp == nil {
		ts := now.UTC()
		details.Timestamp = &ts
	}

	occurredAt, err := validate(eventType, details)
	if err != nil {
		return nil, err
	}

	return &Event{
		id:         id,
		bidNumber:  bidNumber,
		eventType:  eventType,
		details:    details,
		occurredAt: occurredAt.UTC(),
		recordedBy: recordedBy,
		recordedAt: now.UTC(),
	}, nil
}

// RestoreEvent rebuilds an event loaded from storage.
func RestoreEvent(
	id kernel.UUID,
	bidNumber kernel.BidNumber,
	eventType EventType,
	details Details,
	occurredAt time.Time,
	recordedBy kernel.ActorID,
	recordedAt time.Time,
) *Event {
	return &Event{
		id:         id,
		bidNumber:  bidNumber,
		eventType:  eventType,
		details:    details,
		occurredAt: occurredAt,
		recordedBy: recordedBy,
		recordedAt: recordedAt,
	}
}

func (e *Event) ID() kernel.UUID             { return e.id }
func (e *Event) BidNumber() kernel.BidNumber { return e.bidNumber }
func (e *Event) Type() EventType             { return e.eventType }
func (e *Event) Details() Details            { return e.details }
func (e *Event) RecordedBy() kernel.ActorID  { return e.recordedBy }
func (e *Event) RecordedAt() time.Time       { return e.recordedAt }

// OccurredAt is the ordering timestamp: pickup_time for pickup, departure_time
// for departure, delivery_time for delivery and timestamp for the rest.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func normalize(d Details) Details {
	d.Location = strings.TrimSpace(d.Location)
	d.Notes = strings.TrimSpace(d.Notes)
	d.DriverEmail = strings.TrimSpace(d.DriverEmail)
	d.Primary = d.Primary.trimmed()
	if d.Secondary != nil {
		s := d.Secondary.trimmed()
		if s.IsZero() {
			d.Secondary = nil
		} else {
			d.Secondary = &s
		}
	}

	docs := make([]string, 0, len(d.Documents))
	for _, ref := range d.Documents {
		if ref = strings.TrimSpace(ref); ref != "" {
			docs = append(docs, ref)
		}
	}
	d.Documents = docs
	return d
}

func validate(t EventType, d Details) (time.Time, error) {
	var (
		errList    []error
		occurredAt *time.Time
	)

	require := func(name string, ok bool) {
		if !ok {
			errList = append(errList, errs.NewValueIsRequiredError(name))
		}
	}

	switch t {
	case CheckIn, CheckInDelivery:
		require("location", d.Location != "")
		require("timestamp", d.Timestamp != nil)
		occurredAt = d.Timestamp
	case Pickup:
		require("pickup_time", d.PickupTime != nil)
		require("driver_name", d.Primary.DriverName != "")
		require("driver_phone", d.Primary.DriverPhone != "")
		require("driver_license_number", d.Primary.DriverLicenseNumber != "")
		require("driver_license_state", d.Primary.DriverLicenseState != "")
		require("truck_number", d.Primary.TruckNumber != "")
		occurredAt = d.PickupTime
	case Departure:
		require("departure_time", d.DepartureTime != nil)
		occurredAt = d.DepartureTime
	case Delivery:
		require("delivery_time", d.DeliveryTime != nil)
		occurredAt = d.DeliveryTime
	case Note:
		require("notes", d.Notes != "")
		occurredAt = d.Timestamp
	case Document:
		require("documents", len(d.Documents) > 0)
		occurredAt = d.Timestamp
	default:
		return time.Time{}, errs.NewValueIsInvalidError("event_type")
	}

	if len(d.Notes) > maxNotesLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("notes length", len(d.Notes), 0, maxNotesLength))
	}
	if d.DriverEmail != "" {
		if _, err := mail.ParseAddress(d.DriverEmail); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("driver_email", err))
		}
	}

	if err := errors.Join(errList...); err != nil {
		return time.Time{}, err
	}
	return *occurredAt, nil
}
