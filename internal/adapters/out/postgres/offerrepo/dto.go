// Package offerrepo persists offers, the assignments created by accepting them
// and the audit trail of offer decisions.
package offerrepo

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO maps the offers table. Status is stored by name.
type OfferDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadRef            string    `gorm:"type:varchar(100);not null;index"`
	CarrierID          string    `gorm:"type:varchar(200);not null"`
	AmountCents        int64     `gorm:"not null"`
	Note               string    `gorm:"type:text;not null"`
	Status             string    `gorm:"type:varchar(20);not null"`
	CounterAmountCents *int64
	AdminNotes         string `gorm:"type:text;not null"`
	ExpiresAt          *time.Time
	DecidedBy          *string   `gorm:"type:varchar(200)"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

// AssignmentDTO maps the assignments table. offer_id and load_ref are unique.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfferID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LoadRef    string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	CarrierID  string    `gorm:"type:varchar(200);not null"`
	PriceCents int64     `gorm:"not null"`
	CreatedBy  string    `gorm:"type:varchar(200);not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

// OfferEventDTO maps the offer_events table. seq is assigned by the database.
type OfferEventDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"->;autoIncrement"`
	OfferID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Action         string    `gorm:"type:varchar(20);not null"`
	OldStatus      *string   `gorm:"type:varchar(20)"`
	NewStatus      string    `gorm:"type:varchar(20);not null"`
	OldAmountCents *int64
	NewAmountCents *int64
	Notes          string    `gorm:"type:text;not null"`
	PerformedBy    *string   `gorm:"type:varchar(200)"`
	PerformedAt    time.Time `gorm:"not null"`
}

func (OfferEventDTO) TableName() string {
	return "offer_events"
}

func centsPtr(m *kernel.Money) *int64 {
	if m == nil {
		return nil
	}
	c := m.Cents()
	return &c
}

func moneyPtr(c *int64) *kernel.Money {
	if c == nil {
		return nil
	}
	m := kernel.MoneyFromCents(*c)
	return &m
}

func actorPtr(a *kernel.ActorID) *string {
	if a == nil {
		return nil
	}
	s := a.String()
	return &s
}

func toActorPtr(s *string) (*kernel.ActorID, error) {
	if s == nil {
		return nil, nil
	}
	a, err := kernel.NewActorID("actor_id", *s)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func offerFromDomain(o *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:                 o.ID().Bytes(),
		LoadRef:            o.LoadRef().String(),
		CarrierID:          o.CarrierID().String(),
		AmountCents:        o.Amount().Cents(),
		Note:               o.Note(),
		Status:             o.Status().String(),
		CounterAmountCents: centsPtr(o.CounterAmount()),
		AdminNotes:         o.AdminNotes(),
		ExpiresAt:          o.ExpiresAt(),
		DecidedBy:          actorPtr(o.DecidedBy()),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func offerToDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loadRef, err := kernel.NewBidNumber(dto.LoadRef)
	if err != nil {
		return nil, err
	}
	carrier, err := kernel.NewActorID("carrier_id", dto.CarrierID)
	if err != nil {
		return nil, err
	}
	status, err := offer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	decidedBy, err := toActorPtr(dto.DecidedBy)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if dto.ExpiresAt != nil {
		at := dto.ExpiresAt.UTC()
		expiresAt = &at
	}

	return offer.RestoreOffer(id, loadRef, carrier, kernel.MoneyFromCents(dto.AmountCents), dto.Note, status,
		moneyPtr(dto.CounterAmountCents), dto.AdminNotes, expiresAt, decidedBy, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func assignmentFromDomain(a *offer.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID().Bytes(),
		OfferID:    a.OfferID().Bytes(),
		LoadRef:    a.LoadRef().String(),
		CarrierID:  a.CarrierID().String(),
		PriceCents: a.Price().Cents(),
		CreatedBy:  a.CreatedBy().String(),
		CreatedAt:  a.CreatedAt(),
	}
}

func assignmentToDomain(dto AssignmentDTO) (*offer.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	offerID, err := kernel.UUIDFromBytes(dto.OfferID[:])
	if err != nil {
		return nil, err
	}
	loadRef, err := kernel.NewBidNumber(dto.LoadRef)
	if err != nil {
		return nil, err
	}
	carrier, err := kernel.NewActorID("carrier_id", dto.CarrierID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.NewActorID("created_by", dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	return offer.RestoreAssignment(id, offerID, loadRef, carrier, kernel.MoneyFromCents(dto.PriceCents),
		createdBy, dto.CreatedAt.UTC()), nil
}

func eventFromDomain(e offer.Event) OfferEventDTO {
	dto := OfferEventDTO{
		ID:             e.ID.Bytes(),
		OfferID:        e.OfferID.Bytes(),
		Action:         string(e.Action),
		NewStatus:      e.NewStatus.String(),
		OldAmountCents: centsPtr(e.OldAmount),
		NewAmountCents: centsPtr(e.NewAmount),
		Notes:          e.Notes,
		PerformedBy:    actorPtr(e.PerformedBy),
		PerformedAt:    e.PerformedAt,
	}
	if e.OldStatus != offer.Unknown {
		s := e.OldStatus.String()
		dto.OldStatus = &s
	}
	return dto
}
