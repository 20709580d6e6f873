package offerrepo

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/adapters/out/postgres/pgerr"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOfferRepository implements ports.OfferRepository using GORM.
type GormOfferRepository struct {
	db *gorm.DB
}

func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{
		db: db,
	}
}

func (r *GormOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(o)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert offer", err)
	}

	return nil
}

func (r *GormOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := offerFromDomain(o)
	result := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":               dto.Status,
			"counter_amount_cents": dto.CounterAmountCents,
			"admin_notes":          dto.AdminNotes,
			"decided_by":           dto.DecidedBy,
			"updated_at":           dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Map("update offer", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("offer", o.ID().String())
	}

	return nil
}

func (r *GormOfferRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, pgerr.Map("select offer", err)
	}

	return offerToDomain(dto)
}

// ListDecidableForUpdate locks the load's pending and countered offers in
// creation order, so concurrent callers acquire the locks in the same order.
func (r *GormOfferRepository) ListDecidableForUpdate(ctx context.Context, loadRef kernel.BidNumber) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("load_ref = ? AND status IN ?", loadRef.String(),
			[]string{offer.Pending.String(), offer.Countered.String()}).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Map("select decidable offers", err)
	}

	return toDomainList(dtos)
}

// ListExpiredForUpdate skips rows another transaction holds, so the expiry job
// never waits behind an admin decision.
func (r *GormOfferRepository) ListExpiredForUpdate(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", offer.Pending.String(), now.UTC()).
		Order("expires_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Map("select expired offers", err)
	}

	return toDomainList(dtos)
}

func (r *GormOfferRepository) ListCarrierIDs(ctx context.Context, loadRef kernel.BidNumber) ([]kernel.ActorID, error) {
	var raw []string
	if err := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Distinct("carrier_id").
		Where("load_ref = ?", loadRef.String()).
		Order("carrier_id").
		Pluck("carrier_id", &raw).Error; err != nil {
		return nil, pgerr.Map("select offer carriers", err)
	}

	ids := make([]kernel.ActorID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.NewActorID("carrier_id", s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toDomainList(dtos []OfferDTO) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := offerToDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db: db,
	}
}

// Add inserts the assignment. The unique constraints on offer_id and load_ref
// turn a lost race into ConflictError.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *offer.Assignment) error {
	dto := assignmentFromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert assignment", err)
	}

	return nil
}

func (r *GormAssignmentRepository) FindByLoad(ctx context.Context, loadRef kernel.BidNumber) (*offer.Assignment, error) {
	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "load_ref = ?", loadRef.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment for load", loadRef.String())
		}
		return nil, pgerr.Map("select assignment", err)
	}

	return assignmentToDomain(dto)
}

// GormOfferEventRepository implements ports.OfferEventRepository using GORM.
type GormOfferEventRepository struct {
	db *gorm.DB
}

func NewGormOfferEventRepository(db *gorm.DB) *GormOfferEventRepository {
	return &GormOfferEventRepository{db: db}
}

func (r *GormOfferEventRepository) Add(ctx context.Context, event offer.Event) error {
	dto := eventFromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert offer event", err)
	}
	return nil
}
