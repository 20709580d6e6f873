package ports

import (
	"context"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
)

// LifecycleEventRepository is the append-only store of the fulfillment ledger.
// There is no update and no delete.
type LifecycleEventRepository interface {
	Add(ctx context.Context, event *ledger.Event) error

	// Tail returns the latest event by ordering timestamp and whether a delivery
	// was recorded. An empty ledger yields the zero Tail.
	Tail(ctx context.Context, number kernel.BidNumber) (ledger.Tail, error)

	// List returns the bid's events in ordering-timestamp order, ties broken by
	// insertion order.
	List(ctx context.Context, number kernel.BidNumber) ([]*ledger.Event, error)
}
