// Package notificationrepo stores queued notifications in a postgres outbox
// table. The engine enqueues here and the relay job drains it.
package notificationrepo

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/jsonb"

	"github.com/google/uuid"
)

// NotificationDTO maps the notifications table.
type NotificationDTO struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Seq          int64        `gorm:"->;autoIncrement"`
	Kind         string       `gorm:"type:varchar(64);not null"`
	RecipientID  string       `gorm:"type:varchar(200);not null"`
	Payload      jsonb.Object `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	DispatchedAt *time.Time
	Attempts     int    `gorm:"not null;default:0"`
	LastError    string `gorm:"type:text;not null;default:''"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID.Bytes(),
		Kind:        string(n.Kind),
		RecipientID: n.RecipientID.String(),
		Payload:     jsonb.Object(n.Payload),
		CreatedAt:   n.CreatedAt,
	}
}

func toPending(dto NotificationDTO) (ports.PendingNotification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.PendingNotification{}, err
	}
	recipient, err := kernel.NewActorID("recipient_id", dto.RecipientID)
	if err != nil {
		return ports.PendingNotification{}, err
	}

	return ports.PendingNotification{
		Notification: notification.Notification{
			ID:          id,
			Kind:        notification.Kind(dto.Kind),
			RecipientID: recipient,
			Payload:     map[string]any(dto.Payload),
			CreatedAt:   dto.CreatedAt.UTC(),
		},
		Attempts: dto.Attempts,
	}, nil
}
