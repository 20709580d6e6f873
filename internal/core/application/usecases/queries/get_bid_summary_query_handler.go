package queries

import (
	"context"
	"database/sql"
	"errors"

	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/jsonb"
	"loadboard/internal/pkg/retry"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBidSummaryQueryHandler projects a bid, its awards, carrier bids, offers,
// assignment and ledger. All reads run in one REPEATABLE READ, READ ONLY
// transaction so the parts agree with each other. A transient store failure is
// retried up to three times.
type GetBidSummaryQueryHandler struct {
	db     *gorm.DB
	policy retry.Policy
}

func NewGetBidSummaryQueryHandler(db *gorm.DB) GetBidSummaryQueryHandler {
	return GetBidSummaryQueryHandler{db: db, policy: retry.DefaultPolicy()}
}

func (h GetBidSummaryQueryHandler) Handle(ctx context.Context, query GetBidSummaryQuery) (BidSummary, error) {
	if err := query.Validate(); err != nil {
		return BidSummary{}, err
	}

	return retry.Read(ctx, h.policy, func(ctx context.Context) (BidSummary, error) {
		var summary BidSummary
		err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			summary, err = h.project(tx, query)
			return err
		}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
		return summary, storeError("read bid summary", err)
	})
}

func (h GetBidSummaryQueryHandler) project(tx *gorm.DB, query GetBidSummaryQuery) (BidSummary, error) {
	number := query.BidNumber()

	summary, err := selectBid(tx, number)
	if err != nil {
		return BidSummary{}, err
	}

	if summary.Awards, err = selectAwards(tx, number); err != nil {
		return BidSummary{}, err
	}
	for i := range summary.Awards {
		if !summary.Awards[i].Removed {
			active := summary.Awards[i]
			summary.ActiveAward = &active
		}
	}
	summary.Status = auction.DeriveStatus(summary.Completed != nil, summary.NoContest != nil, summary.ActiveAward != nil)

	if summary.CarrierBids, err = selectCarrierBids(tx, number); err != nil {
		return BidSummary{}, err
	}
	summary.BidCount = len(summary.CarrierBids)
	for i := range summary.CarrierBids {
		if query.CallerID() != "" && summary.CarrierBids[i].CarrierID == query.CallerID() {
			own := summary.CarrierBids[i]
			summary.OwnBid = &own
		}
	}

	if summary.Offers, err = selectOffers(tx, number); err != nil {
		return BidSummary{}, err
	}
	if summary.Assignment, err = selectAssignment(tx, number); err != nil {
		return BidSummary{}, err
	}
	if summary.Events, err = selectLifecycleEvents(tx, number); err != nil {
		return BidSummary{}, err
	}

	return summary, nil
}

func selectBid(tx *gorm.DB, number kernel.BidNumber) (BidSummary, error) {
	rows, err := tx.Raw(`
		SELECT
			bid_number, origin, destination, stops, distance_miles, pickup_at, delivery_at, tag,
			expires_at, created_at,
			no_contest_at, no_contest_by, no_contest_notes,
			completed_at, completed_by
		FROM bids
		WHERE bid_number = ?
	`, number.String()).Rows()
	if err != nil {
		return BidSummary{}, storeError("select bid", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return BidSummary{}, storeError("select bid", err)
		}
		return BidSummary{}, errs.NewObjectNotFoundError("bid", number.String())
	}

	var (
		s                        BidSummary
		stops                    jsonb.List[string]
		pickupAt, deliveryAt     sql.NullTime
		noContestAt, completedAt sql.NullTime
		noContestBy, completedBy sql.NullString
		noContestNotes           string
	)
	if err = rows.Scan(
		&s.BidNumber, &s.Origin, &s.Destination, &stops, &s.DistanceMiles, &pickupAt, &deliveryAt, &s.Tag,
		&s.ExpiresAt, &s.CreatedAt,
		&noContestAt, &noContestBy, &noContestNotes,
		&completedAt, &completedBy,
	); err != nil {
		return BidSummary{}, storeError("scan bid", err)
	}

	s.Stops = []string(stops)
	s.PickupAt = timePtr(pickupAt)
	s.DeliveryAt = timePtr(deliveryAt)
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	if noContestAt.Valid {
		s.NoContest = &MarkerView{At: noContestAt.Time.UTC(), By: noContestBy.String, Notes: noContestNotes}
	}
	if completedAt.Valid {
		s.Completed = &MarkerView{At: completedAt.Time.UTC(), By: completedBy.String}
	}
	return s, nil
}

// selectAwards returns the award history oldest first. At most one row is
// not removed.
func selectAwards(tx *gorm.DB, number kernel.BidNumber) ([]AwardView, error) {
	rows, err := tx.Raw(`
		SELECT id, winner_id, amount_cents, margin_cents, admin_notes, awarded_by, awarded_at,
			removed, removed_at, removed_by
		FROM awards
		WHERE bid_number = ?
		ORDER BY awarded_at, id
	`, number.String()).Rows()
	if err != nil {
		return nil, storeError("select awards", err)
	}
	defer rows.Close()

	awards := make([]AwardView, 0)
	for rows.Next() {
		var (
			a              AwardView
			id             uuid.UUID
			amount, margin int64
			removedAt      sql.NullTime
			removedBy      sql.NullString
		)
		if err = rows.Scan(&id, &a.WinnerID, &amount, &margin, &a.AdminNotes, &a.AwardedBy, &a.AwardedAt,
			&a.Removed, &removedAt, &removedBy); err != nil {
			return nil, storeError("scan award", err)
		}
		if a.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		a.Amount = kernel.MoneyFromCents(amount)
		a.Margin = kernel.MoneyFromCents(margin)
		a.AwardedAt = a.AwardedAt.UTC()
		a.RemovedAt = timePtr(removedAt)
		a.RemovedBy = stringPtr(removedBy)
		awards = append(awards, a)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("read awards", err)
	}
	return awards, nil
}

// selectCarrierBids orders by price, then by who bid first.
func selectCarrierBids(tx *gorm.DB, number kernel.BidNumber) ([]CarrierBidView, error) {
	rows, err := tx.Raw(`
		SELECT id, carrier_id, amount_cents, notes, created_at, updated_at
		FROM carrier_bids
		WHERE bid_number = ?
		ORDER BY amount_cents, created_at, id
	`, number.String()).Rows()
	if err != nil {
		return nil, storeError("select carrier bids", err)
	}
	defer rows.Close()

	bids := make([]CarrierBidView, 0)
	for rows.Next() {
		var (
			b      CarrierBidView
			id     uuid.UUID
			amount int64
		)
		if err = rows.Scan(&id, &b.CarrierID, &amount, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, storeError("scan carrier bid", err)
		}
		if b.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		b.Amount = kernel.MoneyFromCents(amount)
		b.CreatedAt = b.CreatedAt.UTC()
		b.UpdatedAt = b.UpdatedAt.UTC()
		bids = append(bids, b)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("read carrier bids", err)
	}
	return bids, nil
}

func selectOffers(tx *gorm.DB, loadRef kernel.BidNumber) ([]OfferView, error) {
	rows, err := tx.Raw(`
		SELECT id, carrier_id, amount_cents, note, status, counter_amount_cents, admin_notes,
			expires_at, decided_by, created_at, updated_at
		FROM offers
		WHERE load_ref = ?
		ORDER BY created_at, id
	`, loadRef.String()).Rows()
	if err != nil {
		return nil, storeError("select offers", err)
	}
	defer rows.Close()

	offers := make([]OfferView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			o         OfferView
			id        uuid.UUID
			amount    int64
			status    string
			counter   sql.NullInt64
			expiresAt sql.NullTime
			decidedBy sql.NullString
		)
		if err = rows.Scan(&id, &o.CarrierID, &amount, &o.Note, &status, &counter, &o.AdminNotes,
			&expiresAt, &decidedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, storeError("scan offer", err)
		}
		if o.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if o.Status, err = offer.ParseStatus(status); err != nil {
			return nil, err
		}
		o.Amount = kernel.MoneyFromCents(amount)
		o.CounterAmount = moneyPtr(counter)
		o.ExpiresAt = timePtr(expiresAt)
		o.DecidedBy = stringPtr(decidedBy)
		o.CreatedAt = o.CreatedAt.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		o.Events = make([]OfferEventView, 0)

		index[id] = len(offers)
		offers = append(offers, o)
	}
	if err = rows.Err(); err != nil {
		return nil, storeError("read offers", err)
	}
	if len(offers) == 0 {
		return offers, nil
	}

	if err = attachOfferEvents(tx, loadRef, offers, index); err != nil {
		return nil, err
	}
	return offers, nil
}

func attachOfferEvents(tx *gorm.DB, loadRef kernel.BidNumber, offers []OfferView, index map[uuid.UUID]int) error {
	rows, err := tx.Raw(`
		SELECT e.offer_id, e.action, e.old_status, e.new_status, e.old_amount_cents, e.new_amount_cents,
			e.notes, e.performed_by, e.performed_at
		FROM offer_events e
		JOIN offers o ON o.id = e.offer_id
		WHERE o.load_ref = ?
		ORDER BY e.seq
	`, loadRef.String()).Rows()
	if err != nil {
		return storeError("select offer events", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e                    OfferEventView
			offerID              uuid.UUID
			oldStatus            sql.NullString
			oldAmount, newAmount sql.NullInt64
			performedBy          sql.NullString
		)
		if err = rows.Scan(&offerID, &e.Action, &oldStatus, &e.NewStatus, &oldAmount, &newAmount,
			&e.Notes, &performedBy, &e.PerformedAt); err != nil {
			return storeError("scan offer event", err)
		}
		e.OldStatus = stringPtr(oldStatus)
		e.OldAmount = moneyPtr(oldAmount)
		e.NewAmount = moneyPtr(newAmount)
		e.PerformedBy = stringPtr(performedBy)
		e.PerformedAt = e.PerformedAt.UTC()

		if i, ok := index[offerID]; ok {
			offers[i].Events = append(offers[i].Events, e)
		}
	}

	if err = rows.Err(); err != nil {
		return storeError("read offer events", err)
	}
	return nil
}

func selectAssignment(tx *gorm.DB, loadRef kernel.BidNumber) (*AssignmentView, error) {
	var row struct {
		ID         uuid.UUID
		OfferID    uuid.UUID
		CarrierID  string
		PriceCents int64
		CreatedBy  string
		CreatedAt  sql.NullTime
	}
	result := tx.Raw(`
		SELECT id, offer_id, carrier_id, price_cents, created_by, created_at
		FROM assignments
		WHERE load_ref = ?
	`, loadRef.String()).Scan(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError("select assignment", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	id, err := toUUID(row.ID)
	if err != nil {
		return nil, err
	}
	offerID, err := toUUID(row.OfferID)
	if err != nil {
		return nil, err
	}

	return &AssignmentView{
		ID:        id,
		OfferID:   offerID,
		CarrierID: row.CarrierID,
		Price:     kernel.MoneyFromCents(row.PriceCents),
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.Time.UTC(),
	}, nil
}
