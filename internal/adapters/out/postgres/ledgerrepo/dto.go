// Package ledgerrepo is the append-only store of the fulfillment ledger. Event
// details are kept as one jsonb document per row.
package ledgerrepo

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/pkg/jsonb"

	"github.com/google/uuid"
)

// LifecycleEventDTO maps the lifecycle_events table. seq breaks ties between
// events with equal ordering timestamps.
type LifecycleEventDTO struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Seq        int64                 `gorm:"->;autoIncrement"`
	BidNumber  string                `gorm:"type:varchar(100);not null"`
	EventType  string                `gorm:"type:varchar(32);not null"`
	Details    jsonb.Doc[DetailsDoc] `gorm:"type:jsonb;not null"`
	OccurredAt time.Time             `gorm:"not null"`
	RecordedBy string                `gorm:"type:varchar(200);not null"`
	RecordedAt time.Time             `gorm:"not null"`
}

func (LifecycleEventDTO) TableName() string {
	return "lifecycle_events"
}

// DriverVehicleDoc is the stored form of ledger.DriverVehicle.
type DriverVehicleDoc struct {
	DriverName          string `json:"driver_name,omitempty"`
	DriverPhone         string `json:"driver_phone,omitempty"`
	DriverLicenseNumber string `json:"driver_license_number,omitempty"`
	DriverLicenseState  string `json:"driver_license_state,omitempty"`
	TruckNumber         string `json:"truck_number,omitempty"`
	TrailerNumber       string `json:"trailer_number,omitempty"`
}

// DetailsDoc is the stored form of ledger.Details.
type DetailsDoc struct {
	Location      string            `json:"location,omitempty"`
	Timestamp     *time.Time        `json:"timestamp,omitempty"`
	PickupTime    *time.Time        `json:"pickup_time,omitempty"`
	DepartureTime *time.Time        `json:"departure_time,omitempty"`
	DeliveryTime  *time.Time        `json:"delivery_time,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Primary       DriverVehicleDoc  `json:"primary"`
	Secondary     *DriverVehicleDoc `json:"secondary,omitempty"`
	DriverEmail   string            `json:"driver_email,omitempty"`
	Documents     []string          `json:"documents,omitempty"`
}

func vehicleDoc(v ledger.DriverVehicle) DriverVehicleDoc {
	return DriverVehicleDoc(v)
}

func fromDomain(e *ledger.Event) LifecycleEventDTO {
	d := e.Details()
	doc := DetailsDoc{
		Location:      d.Location,
		Timestamp:     d.Timestamp,
		PickupTime:    d.PickupTime,
		DepartureTime: d.DepartureTime,
		DeliveryTime:  d.DeliveryTime,
		Notes:         d.Notes,
		Primary:       vehicleDoc(d.Primary),
		DriverEmail:   d.DriverEmail,
		Documents:     d.Documents,
	}
	if d.Secondary != nil {
		s := vehicleDoc(*d.Secondary)
		doc.Secondary = &s
	}

	return LifecycleEventDTO{
		ID:         e.ID().Bytes(),
		BidNumber:  e.BidNumber().String(),
		EventType:  e.Type().String(),
		Details:    jsonb.Doc[DetailsDoc]{V: doc},
		OccurredAt: e.OccurredAt(),
		RecordedBy: e.RecordedBy().String(),
		RecordedAt: e.RecordedAt(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// ToDomain converts the stored document back to ledger.Details.
func (d DetailsDoc) ToDomain() ledger.Details {
	details := ledger.Details{
		Location:      d.Location,
		Timestamp:     utcPtr(d.Timestamp),
		PickupTime:    utcPtr(d.PickupTime),
		DepartureTime: utcPtr(d.DepartureTime),
		DeliveryTime:  utcPtr(d.DeliveryTime),
		Notes:         d.Notes,
		Primary:       ledger.DriverVehicle(d.Primary),
		DriverEmail:   d.DriverEmail,
		Documents:     d.Documents,
	}
	if d.Secondary != nil {
		s := ledger.DriverVehicle(*d.Secondary)
		details.Secondary = &s
	}
	return details
}

func toDomain(dto LifecycleEventDTO) (*ledger.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewBidNumber(dto.BidNumber)
	if err != nil {
		return nil, err
	}
	eventType, err := ledger.ParseEventType(dto.EventType)
	if err != nil {
		return nil, err
	}
	recordedBy, err := kernel.NewActorID("recorded_by", dto.RecordedBy)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreEvent(id, number, eventType, dto.Details.V.ToDomain(), dto.OccurredAt.UTC(), recordedBy,
		dto.RecordedAt.UTC()), nil
}
