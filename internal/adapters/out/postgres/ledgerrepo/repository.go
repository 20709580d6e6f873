package ledgerrepo

import (
	"context"

	"loadboard/internal/adapters/out/postgres/pgerr"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLifecycleEventRepository implements ports.LifecycleEventRepository.
// Callers serialize appends per bid by holding the bid row lock.
type GormLifecycleEventRepository struct {
	db *gorm.DB
}

func NewGormLifecycleEventRepository(db *gorm.DB) *GormLifecycleEventRepository {
	return &GormLifecycleEventRepository{db: db}
}

func (r *GormLifecycleEventRepository) Add(ctx context.Context, event *ledger.Event) error {
	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("insert lifecycle event", err)
	}
	return nil
}

// Tail reads the latest event by ordering timestamp and whether any delivery
// exists.
func (r *GormLifecycleEventRepository) Tail(ctx context.Context, number kernel.BidNumber) (ledger.Tail, error) {
	var latest []LifecycleEventDTO
	if err := r.db.WithContext(ctx).
		Where("bid_number = ?", number.String()).
		Order("occurred_at DESC, seq DESC").
		Limit(1).
		Find(&latest).Error; err != nil {
		return ledger.Tail{}, pgerr.Map("select ledger tail", err)
	}

	if len(latest) == 0 {
		return ledger.Tail{}, nil
	}

	var delivered bool
	if err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM lifecycle_events WHERE bid_number = ? AND event_type = ?)`,
			number.String(), ledger.Delivery.String()).
		Scan(&delivered).Error; err != nil {
		return ledger.Tail{}, pgerr.Map("select ledger delivery", err)
	}

	event, err := toDomain(latest[0])
	if err != nil {
		return ledger.Tail{}, err
	}

	return ledger.Tail{Latest: event, Delivered: delivered}, nil
}

func (r *GormLifecycleEventRepository) List(ctx context.Context, number kernel.BidNumber) ([]*ledger.Event, error) {
	var dtos []LifecycleEventDTO
	if err := r.db.WithContext(ctx).
		Where("bid_number = ?", number.String()).
		Order("occurred_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Map("select ledger", err)
	}

	events := make([]*ledger.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
