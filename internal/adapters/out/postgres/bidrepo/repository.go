package bidrepo

import (
	"context"
	"errors"

	"loadboard/internal/adapters/out/postgres/pgerr"
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBidRepository implements ports.BidRepository using GORM.
type GormBidRepository struct {
	db *gorm.DB
}

func NewGormBidRepository(db *gorm.DB) *GormBidRepository {
	return &GormBidRepository{
		db: db,
	}
}

// Add inserts a new bid. A duplicate bid number yields ConflictError.
func (r *GormBidRepository) Add(ctx context.Context, bid *auction.Bid) error {
	if err := bid.Validate(); err != nil {
		return err
	}

	dto := bidFromDomain(bid)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert bid", err)
	}

	return nil
}

// Update writes the no-contest and completed markers. Metadata is immutable
// once ingested.
func (r *GormBidRepository) Update(ctx context.Context, bid *auction.Bid) error {
	if err := bid.Validate(); err != nil {
		return err
	}

	dto := bidFromDomain(bid)
	result := r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("bid_number = ?", dto.BidNumber).
		Updates(map[string]any{
			"no_contest_at":    dto.NoContestAt,
			"no_contest_by":    dto.NoContestBy,
			"no_contest_notes": dto.NoContestNotes,
			"completed_at":     dto.CompletedAt,
			"completed_by":     dto.CompletedBy,
		})
	if result.Error != nil {
		return pgerr.Map("update bid", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bid", dto.BidNumber)
	}

	return nil
}

// Get loads the bid with its active award.
func (r *GormBidRepository) Get(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error) {
	return r.load(ctx, r.db.WithContext(ctx), number)
}

// GetForUpdate loads the bid and holds its row lock until the transaction ends.
func (r *GormBidRepository) GetForUpdate(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), number)
}

func (r *GormBidRepository) load(ctx context.Context, query *gorm.DB, number kernel.BidNumber) (*auction.Bid, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := query.First(&dto, "bid_number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", number.String())
		}
		return nil, pgerr.Map("select bid", err)
	}

	var awards []AwardDTO
	if err := r.db.WithContext(ctx).
		Where("bid_number = ? AND removed = false", number.String()).
		Limit(1).
		Find(&awards).Error; err != nil {
		return nil, pgerr.Map("select active award", err)
	}

	var active *AwardDTO
	if len(awards) > 0 {
		active = &awards[0]
	}

	return bidToDomain(dto, active)
}

// GormAwardRepository implements ports.AwardRepository using GORM.
type GormAwardRepository struct {
	db *gorm.DB
}

func NewGormAwardRepository(db *gorm.DB) *GormAwardRepository {
	return &GormAwardRepository{
		db: db,
	}
}

// Add inserts an active award. The partial unique index on active awards turns
// a concurrent second award into ConflictError.
func (r *GormAwardRepository) Add(ctx context.Context, award *auction.Award) error {
	if err := award.Validate(); err != nil {
		return err
	}

	dto := awardFromDomain(award)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert award", err)
	}

	return nil
}

// Update records the removal of an award.
func (r *GormAwardRepository) Update(ctx context.Context, award *auction.Award) error {
	if err := award.Validate(); err != nil {
		return err
	}

	dto := awardFromDomain(award)
	result := r.db.WithContext(ctx).
		Model(&AwardDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"removed":    dto.Removed,
			"removed_at": dto.RemovedAt,
			"removed_by": dto.RemovedBy,
		})
	if result.Error != nil {
		return pgerr.Map("update award", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("award", award.ID().String())
	}

	return nil
}

// GormCarrierBidRepository implements ports.CarrierBidRepository using GORM.
type GormCarrierBidRepository struct {
	db *gorm.DB
}

func NewGormCarrierBidRepository(db *gorm.DB) *GormCarrierBidRepository {
	return &GormCarrierBidRepository{
		db: db,
	}
}

func (r *GormCarrierBidRepository) Add(ctx context.Context, cb *auction.CarrierBid) error {
	dto := carrierBidFromDomain(cb)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert carrier bid", err)
	}

	return nil
}

func (r *GormCarrierBidRepository) Update(ctx context.Context, cb *auction.CarrierBid) error {
	dto := carrierBidFromDomain(cb)
	result := r.db.WithContext(ctx).
		Model(&CarrierBidDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"amount_cents": dto.AmountCents,
			"notes":        dto.Notes,
			"updated_at":   dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Map("update carrier bid", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("carrier bid", cb.ID().String())
	}

	return nil
}

func (r *GormCarrierBidRepository) Find(
	ctx context.Context,
	number kernel.BidNumber,
	carrierID kernel.ActorID,
) (*auction.CarrierBid, error) {
	var dto CarrierBidDTO
	err := r.db.WithContext(ctx).
		First(&dto, "bid_number = ? AND carrier_id = ?", number.String(), carrierID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier bid", number.String()+"/"+carrierID.String())
		}
		return nil, pgerr.Map("select carrier bid", err)
	}

	return carrierBidToDomain(dto)
}

func (r *GormCarrierBidRepository) ListBidderIDs(ctx context.Context, number kernel.BidNumber) ([]kernel.ActorID, error) {
	var raw []string
	if err := r.db.WithContext(ctx).
		Model(&CarrierBidDTO{}).
		Where("bid_number = ?", number.String()).
		Order("carrier_id").
		Pluck("carrier_id", &raw).Error; err != nil {
		return nil, pgerr.Map("select bidders", err)
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
