package queries

import (
	"database/sql"
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/pkg/errs"
	"loadboard/internal/pkg/jsonb"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeError classifies a failed read. Errors that already carry a kind pass
// through; anything else is a retryable StoreError.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrStore) || errs.IsValidation(err) {
		return err
	}
	return errs.NewStoreError(op, err)
}

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func moneyPtr(cents sql.NullInt64) *kernel.Money {
	if !cents.Valid {
		return nil
	}
	m := kernel.MoneyFromCents(cents.Int64)
	return &m
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

// driverVehicleRow and detailsRow read the lifecycle_events.details document.
type driverVehicleRow struct {
	DriverName          string `json:"driver_name"`
	DriverPhone         string `json:"driver_phone"`
	DriverLicenseNumber string `json:"driver_license_number"`
	DriverLicenseState  string `json:"driver_license_state"`
	TruckNumber         string `json:"truck_number"`
	TrailerNumber       string `json:"trailer_number"`
}

type detailsRow struct {
	Location      string            `json:"location"`
	Timestamp     *time.Time        `json:"timestamp"`
	PickupTime    *time.Time        `json:"pickup_time"`
	DepartureTime *time.Time        `json:"departure_time"`
	DeliveryTime  *time.Time        `json:"delivery_time"`
	Notes         string            `json:"notes"`
	Primary       driverVehicleRow  `json:"primary"`
	Secondary     *driverVehicleRow `json:"secondary"`
	DriverEmail   string            `json:"driver_email"`
	Documents     []string          `json:"documents"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (d detailsRow) toDomain() ledger.Details {
	details := ledger.Details{
		Location:      d.Location,
		Timestamp:     utcPtr(d.Timestamp),
		PickupTime:    utcPtr(d.PickupTime),
		DepartureTime: utcPtr(d.DepartureTime),
		DeliveryTime:  utcPtr(d.DeliveryTime),
		Notes:         d.Notes,
		Primary:       ledger.DriverVehicle(d.Primary),
		DriverEmail:   d.DriverEmail,
		Documents:     d.Documents,
	}
	if d.Secondary != nil {
		s := ledger.DriverVehicle(*d.Secondary)
		details.Secondary = &s
	}
	return details
}

// selectLifecycleEvents reads a bid's ledger in ordering-timestamp order.
func selectLifecycleEvents(tx *gorm.DB, number kernel.BidNumber) ([]LifecycleEventView, error) {
	rows, err := tx.Raw(`
		SELECT id, event_type, details, occurred_at, recorded_by, recorded_at
		FROM lifecycle_events
		WHERE bid_number = ?
		ORDER BY occurred_at, seq
	`, number.String()).Rows()
	if err != nil {
		return nil, storeError("select lifecycle events", err)
	}
	defer rows.Close()

	events := make([]LifecycleEventView, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			eventType string
			details   jsonb.Doc[detailsRow]
			view      LifecycleEventView
		)
		if err = rows.Scan(&id, &eventType, &details, &view.OccurredAt, &view.RecordedBy, &view.RecordedAt); err != nil {
			return nil, storeError("scan lifecycle event", err)
		}

		if view.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if view.Type, err = ledger.ParseEventType(eventType); err != nil {
			return nil, err
		}
		view.Details = details.V.toDomain()
		view.OccurredAt = view.OccurredAt.UTC()
		view.RecordedAt = view.RecordedAt.UTC()
		events = append(events, view)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("read lifecycle events", err)
	}
	return events, nil
}

// bidExists reports NotFoundError for an unknown bid.
func bidExists(tx *gorm.DB, number kernel.BidNumber) error {
	var exists bool
	if err := tx.Raw(`SELECT EXISTS (SELECT 1 FROM bids WHERE bid_number = ?)`, number.String()).
		Scan(&exists).Error; err != nil {
		return storeError("select bid", err)
	}
	if !exists {
		return errs.NewObjectNotFoundError("bid", number.String())
	}
	return nil
}
