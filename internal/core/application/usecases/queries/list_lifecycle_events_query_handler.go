package queries

import (
	"context"
	"database/sql"

	"loadboard/internal/pkg/retry"

	"gorm.io/gorm"
)

// ListLifecycleEventsQueryHandler returns the ledger ordered by each event's
// own timestamp, ties in insertion order. An unknown bid is NotFoundError; a
// bid without events yields an empty slice.
type ListLifecycleEventsQueryHandler struct {
	db     *gorm.DB
	policy retry.Policy
}

func NewListLifecycleEventsQueryHandler(db *gorm.DB) ListLifecycleEventsQueryHandler {
	return ListLifecycleEventsQueryHandler{db: db, policy: retry.DefaultPolicy()}
}

func (h ListLifecycleEventsQueryHandler) Handle(
	ctx context.Context,
	query ListLifecycleEventsQuery,
) ([]LifecycleEventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return retry.Read(ctx, h.policy, func(ctx context.Context) ([]LifecycleEventView, error) {
		var events []LifecycleEventView
		err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := bidExists(tx, query.BidNumber()); err != nil {
				return err
			}
			var err error
			events, err = selectLifecycleEvents(tx, query.BidNumber())
			return err
		}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
		return events, storeError("list lifecycle events", err)
	})
}
