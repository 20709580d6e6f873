// Package bidrepo persists bids, their awards and the carrier bids placed on
// them. Bid status is never stored: it is derived from the no-contest and
// completed markers and the presence of a non-removed award row.
package bidrepo

import (
	"time"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/jsonb"

	"github.com/google/uuid"
)

// BidDTO maps the bids table.
type BidDTO struct {
	BidNumber      string             `gorm:"column:bid_number;type:varchar(100);primaryKey"`
	Origin         string             `gorm:"type:text;not null"`
	Destination    string             `gorm:"type:text;not null"`
	Stops          jsonb.List[string] `gorm:"type:jsonb;not null"`
	DistanceMiles  int                `gorm:"type:int;not null"`
	PickupAt       *time.Time
	DeliveryAt     *time.Time
	Tag            string    `gorm:"type:varchar(100);not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	NoContestAt    *time.Time
	NoContestBy    *string `gorm:"type:varchar(200)"`
	NoContestNotes string  `gorm:"type:text;not null"`
	CompletedAt    *time.Time
	CompletedBy    *string `gorm:"type:varchar(200)"`
}

func (BidDTO) TableName() string {
	return "bids"
}

// AwardDTO maps the awards table. Removed awards stay as history.
type AwardDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BidNumber   string    `gorm:"type:varchar(100);not null;index"`
	WinnerID    string    `gorm:"type:varchar(200);not null"`
	AmountCents int64     `gorm:"not null"`
	MarginCents int64     `gorm:"not null"`
	AdminNotes  string    `gorm:"type:text;not null"`
	AwardedBy   string    `gorm:"type:varchar(200);not null"`
	AwardedAt   time.Time `gorm:"not null"`
	Removed     bool      `gorm:"not null"`
	RemovedAt   *time.Time
	RemovedBy   *string `gorm:"type:varchar(200)"`
}

func (AwardDTO) TableName() string {
	return "awards"
}

// CarrierBidDTO maps the carrier_bids table.
type CarrierBidDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BidNumber   string    `gorm:"type:varchar(100);not null"`
	CarrierID   string    `gorm:"type:varchar(200);not null"`
	AmountCents int64     `gorm:"not null"`
	Notes       string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (CarrierBidDTO) TableName() string {
	return "carrier_bids"
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

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func bidFromDomain(bid *auction.Bid) BidDTO {
	meta := bid.Metadata()
	dto := BidDTO{
		BidNumber:     bid.Number().String(),
		Origin:        meta.Origin(),
		Destination:   meta.Destination(),
		Stops:         meta.Stops(),
		DistanceMiles: meta.DistanceMiles(),
		PickupAt:      meta.PickupAt(),
		DeliveryAt:    meta.DeliveryAt(),
		Tag:           meta.Tag(),
		ExpiresAt:     bid.ExpiresAt(),
		CreatedAt:     bid.CreatedAt(),
	}
	if m := bid.NoContest(); m != nil {
		at := m.At
		dto.NoContestAt = &at
		dto.NoContestBy = actorPtr(&m.By)
		dto.NoContestNotes = m.Notes
	}
	if m := bid.Completed(); m != nil {
		at := m.At
		dto.CompletedAt = &at
		dto.CompletedBy = actorPtr(&m.By)
	}
	return dto
}

func marker(at *time.Time, by *string, notes string) (*auction.Marker, error) {
	if at == nil {
		return nil, nil
	}
	actor, err := toActorPtr(by)
	if err != nil {
		return nil, err
	}
	m := &auction.Marker{At: at.UTC(), Notes: notes}
	if actor != nil {
		m.By = *actor
	}
	return m, nil
}

// bidToDomain rebuilds a bid. active may be nil when the bid has no active award.
func bidToDomain(dto BidDTO, active *AwardDTO) (*auction.Bid, error) {
	number, err := kernel.NewBidNumber(dto.BidNumber)
	if err != nil {
		return nil, err
	}

	meta, err := auction.NewMetadata(dto.Origin, dto.Destination, dto.Stops, dto.DistanceMiles,
		utcPtr(dto.PickupAt), utcPtr(dto.DeliveryAt), dto.Tag)
	if err != nil {
		return nil, err
	}

	noContest, err := marker(dto.NoContestAt, dto.NoContestBy, dto.NoContestNotes)
	if err != nil {
		return nil, err
	}
	completed, err := marker(dto.CompletedAt, dto.CompletedBy, "")
	if err != nil {
		return nil, err
	}

	var award *auction.Award
	if active != nil {
		if award, err = awardToDomain(*active); err != nil {
			return nil, err
		}
	}

	return auction.RestoreBid(number, meta, dto.ExpiresAt.UTC(), dto.CreatedAt.UTC(), noContest, completed, award)
}

func awardFromDomain(a *auction.Award) AwardDTO {
	return AwardDTO{
		ID:          a.ID().Bytes(),
		BidNumber:   a.BidNumber().String(),
		WinnerID:    a.WinnerID().String(),
		AmountCents: a.Amount().Cents(),
		MarginCents: a.Margin().Cents(),
		AdminNotes:  a.AdminNotes(),
		AwardedBy:   a.AwardedBy().String(),
		AwardedAt:   a.AwardedAt(),
		Removed:     a.IsRemoved(),
		RemovedAt:   a.RemovedAt(),
		RemovedBy:   actorPtr(a.RemovedBy()),
	}
}

func awardToDomain(dto AwardDTO) (*auction.Award, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewBidNumber(dto.BidNumber)
	if err != nil {
		return nil, err
	}
	winner, err := kernel.NewActorID("winner_id", dto.WinnerID)
	if err != nil {
		return nil, err
	}
	awardedBy, err := kernel.NewActorID("awarded_by", dto.AwardedBy)
	if err != nil {
		return nil, err
	}
	removedBy, err := toActorPtr(dto.RemovedBy)
	if err != nil {
		return nil, err
	}

	return auction.RestoreAward(id, number, winner, kernel.MoneyFromCents(dto.AmountCents),
		kernel.MoneyFromCents(dto.MarginCents), dto.AdminNotes, awardedBy, dto.AwardedAt.UTC(),
		utcPtr(dto.RemovedAt), removedBy), nil
}

func carrierBidFromDomain(cb *auction.CarrierBid) CarrierBidDTO {
	return CarrierBidDTO{
		ID:          cb.ID().Bytes(),
		BidNumber:   cb.BidNumber().String(),
		CarrierID:   cb.CarrierID().String(),
		AmountCents: cb.Amount().Cents(),
		Notes:       cb.Notes(),
		CreatedAt:   cb.CreatedAt(),
		UpdatedAt:   cb.UpdatedAt(),
	}
}

func carrierBidToDomain(dto CarrierBidDTO) (*auction.CarrierBid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewBidNumber(dto.BidNumber)
	if err != nil {
		return nil, err
	}
	carrier, err := kernel.NewActorID("carrier_id", dto.CarrierID)
	if err != nil {
		return nil, err
	}

	return auction.RestoreCarrierBid(id, number, carrier, kernel.MoneyFromCents(dto.AmountCents), dto.Notes,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC()), nil
}
