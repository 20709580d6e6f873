package notificationrepo

import (
	"context"
	"time"

	"loadboard/internal/adapters/out/postgres/pgerr"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength caps last_error so a verbose broker error does not bloat the row.
const maxErrorLength = 1000

// GormNotificationRepository implements ports.NotificationQueue and
// ports.NotificationOutbox over the notifications table.
type GormNotificationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormNotificationRepository(db *gorm.DB, clock ports.Clock) *GormNotificationRepository {
	return &GormNotificationRepository{db: db, now: clock.Now}
}

// Enqueue inserts all notifications in one statement. Re-enqueueing an id
// that is already stored is a no-op.
func (r *GormNotificationRepository) Enqueue(ctx context.Context, notifications ...notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, fromDomain(n))
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&dtos).Error
	if err != nil {
		return pgerr.Map("enqueue notifications", err)
	}
	return nil
}

// FetchPending returns undelivered notifications in enqueue order. Rows are not
// locked: a single relay instance is expected, and a duplicate publish is
// tolerated by the at-least-once contract.
func (r *GormNotificationRepository) FetchPending(ctx context.Context, limit int) ([]ports.PendingNotification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Map("select pending notifications", err)
	}

	pending := make([]ports.PendingNotification, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toPending(dto)
		if err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, nil
}

func (r *GormNotificationRepository) MarkDispatched(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id IN ? AND dispatched_at IS NULL", toUUIDs(ids)).
		Update("dispatched_at", r.now().UTC()).Error
	if err != nil {
		return pgerr.Map("mark notifications dispatched", err)
	}
	return nil
}

func (r *GormNotificationRepository) MarkFailed(ctx context.Context, ids []kernel.UUID, cause error) error {
	if len(ids) == 0 {
		return nil
	}

	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}

	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id IN ?", toUUIDs(ids)).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": msg,
		}).Error
	if err != nil {
		return pgerr.Map("mark notifications failed", err)
	}
	return nil
}

func toUUIDs(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}
