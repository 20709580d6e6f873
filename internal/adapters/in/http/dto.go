package http

import (
	"time"

	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
)

// Requests

type CreateBidRequest struct {
	BidNumber     string     `json:"bid_number" validate:"required,max=64"`
	Origin        string     `json:"origin" validate:"required,max=200"`
	Destination   string     `json:"destination" validate:"required,max=200"`
	Stops         []string   `json:"stops" validate:"max=50,dive,required,max=200"`
	DistanceMiles int        `json:"distance_miles" validate:"gte=0"`
	PickupAt      *time.Time `json:"pickup_at"`
	DeliveryAt    *time.Time `json:"delivery_at"`
	Tag           string     `json:"tag" validate:"max=64"`
	ExpiresAt     time.Time  `json:"expires_at" validate:"required"`
}

type PlaceBidRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	Notes       string `json:"notes" validate:"max=2000"`
}

type AwardBidRequest struct {
	WinnerID    string `json:"winner_id" validate:"required,max=128"`
	AmountCents int64  `json:"amount_cents" validate:"gt=0"`
	AdminNotes  string `json:"admin_notes" validate:"max=2000"`
	MarginCents int64  `json:"margin_cents" validate:"gte=0"`
}

type NotesRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

type DriverVehicleRequest struct {
	DriverName          string `json:"driver_name" validate:"max=200"`
	DriverPhone         string `json:"driver_phone" validate:"max=64"`
	DriverLicenseNumber string `json:"driver_license_number" validate:"max=64"`
	DriverLicenseState  string `json:"driver_license_state" validate:"max=8"`
	TruckNumber         string `json:"truck_number" validate:"max=64"`
	TrailerNumber       string `json:"trailer_number" validate:"max=64"`
}

type AppendLifecycleEventRequest struct {
	EventType     string                `json:"event_type" validate:"required"`
	Location      string                `json:"location" validate:"max=500"`
	Timestamp     *time.Time            `json:"timestamp"`
	PickupTime    *time.Time            `json:"pickup_time"`
	DepartureTime *time.Time            `json:"departure_time"`
	DeliveryTime  *time.Time            `json:"delivery_time"`
	Notes         string                `json:"notes" validate:"max=4000"`
	Driver        DriverVehicleRequest  `json:"driver"`
	SecondDriver  *DriverVehicleRequest `json:"second_driver"`
	DriverEmail   string                `json:"driver_email" validate:"omitempty,max=254"`
	Documents     []string              `json:"documents" validate:"max=20,dive,required,max=1000"`
}

func (r AppendLifecycleEventRequest) details() ledger.Details {
	d := ledger.Details{
		Location:      r.Location,
		Timestamp:     r.Timestamp,
		PickupTime:    r.PickupTime,
		DepartureTime: r.DepartureTime,
		DeliveryTime:  r.DeliveryTime,
		Notes:         r.Notes,
		Primary:       ledger.DriverVehicle(r.Driver),
		DriverEmail:   r.DriverEmail,
		Documents:     r.Documents,
	}
	if r.SecondDriver != nil {
		s := ledger.DriverVehicle(*r.SecondDriver)
		d.Secondary = &s
	}
	return d
}

type SubmitOfferRequest struct {
	AmountCents int64      `json:"amount_cents" validate:"gt=0"`
	Note        string     `json:"note" validate:"max=2000"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type CounterOfferRequest struct {
	CounterAmountCents int64  `json:"counter_amount_cents" validate:"gt=0"`
	Notes              string `json:"notes" validate:"max=2000"`
}

type AcceptOfferRequest struct {
	AcceptedPriceCents *int64 `json:"accepted_price_cents" validate:"omitempty,gt=0"`
	Notes              string `json:"notes" validate:"max=2000"`
}

type RejectOtherOffersRequest struct {
	ExceptOfferID string `json:"except_offer_id" validate:"required,uuid"`
	Notes         string `json:"notes" validate:"max=2000"`
}

// Responses

type Money struct {
	Cents   int64  `json:"cents"`
	Dollars string `json:"dollars"`
}

func moneyOf(m kernel.Money) Money {
	return Money{Cents: m.Cents(), Dollars: m.Dollars()}
}

func moneyPtrOf(m *kernel.Money) *Money {
	if m == nil {
		return nil
	}
	out := moneyOf(*m)
	return &out
}

type IDResponse struct {
	ID string `json:"id"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type BidStatusResponse struct {
	BidNumber string  `json:"bid_number"`
	Status    string  `json:"status"`
	WinnerID  *string `json:"winner_id,omitempty"`
}

type Marker struct {
	At    time.Time `json:"at"`
	By    string    `json:"by"`
	Notes string    `json:"notes,omitempty"`
}

type Award struct {
	ID         string     `json:"id"`
	WinnerID   string     `json:"winner_id"`
	Amount     Money      `json:"amount"`
	Margin     Money      `json:"margin"`
	AdminNotes string     `json:"admin_notes,omitempty"`
	AwardedBy  string     `json:"awarded_by"`
	AwardedAt  time.Time  `json:"awarded_at"`
	Removed    bool       `json:"removed"`
	RemovedAt  *time.Time `json:"removed_at,omitempty"`
	RemovedBy  *string    `json:"removed_by,omitempty"`
}

type CarrierBid struct {
	ID        string    `json:"id"`
	CarrierID string    `json:"carrier_id"`
	Amount    Money     `json:"amount"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OfferEvent struct {
	Action      string    `json:"action"`
	OldStatus   *string   `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status"`
	OldAmount   *Money    `json:"old_amount,omitempty"`
	NewAmount   *Money    `json:"new_amount,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	PerformedBy *string   `json:"performed_by,omitempty"`
	PerformedAt time.Time `json:"performed_at"`
}

type Offer struct {
	ID            string       `json:"id"`
	CarrierID     string       `json:"carrier_id"`
	Amount        Money        `json:"amount"`
	Note          string       `json:"note,omitempty"`
	Status        string       `json:"status"`
	CounterAmount *Money       `json:"counter_amount,omitempty"`
	AdminNotes    string       `json:"admin_notes,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
	DecidedBy     *string      `json:"decided_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Events        []OfferEvent `json:"events"`
}

type Assignment struct {
	ID        string    `json:"id"`
	OfferID   string    `json:"offer_id"`
	CarrierID string    `json:"carrier_id"`
	Price     Money     `json:"price"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type DriverVehicle struct {
	DriverName          string `json:"driver_name,omitempty"`
	DriverPhone         string `json:"driver_phone,omitempty"`
	DriverLicenseNumber string `json:"driver_license_number,omitempty"`
	DriverLicenseState  string `json:"driver_license_state,omitempty"`
	TruckNumber         string `json:"truck_number,omitempty"`
	TrailerNumber       string `json:"trailer_number,omitempty"`
}

type LifecycleEvent struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Location      string         `json:"location,omitempty"`
	Timestamp     *time.Time     `json:"timestamp,omitempty"`
	PickupTime    *time.Time     `json:"pickup_time,omitempty"`
	DepartureTime *time.Time     `json:"departure_time,omitempty"`
	DeliveryTime  *time.Time     `json:"delivery_time,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Driver        *DriverVehicle `json:"driver,omitempty"`
	SecondDriver  *DriverVehicle `json:"second_driver,omitempty"`
	DriverEmail   string         `json:"driver_email,omitempty"`
	Documents     []string       `json:"documents,omitempty"`
	RecordedBy    string         `json:"recorded_by"`
	RecordedAt    time.Time      `json:"recorded_at"`
}

type BidSummaryResponse struct {
	BidNumber     string     `json:"bid_number"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Stops         []string   `json:"stops"`
	DistanceMiles int        `json:"distance_miles"`
	PickupAt      *time.Time `json:"pickup_at,omitempty"`
	DeliveryAt    *time.Time `json:"delivery_at,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CreatedAt     time.Time  `json:"created_at"`

	Status      string  `json:"status"`
	NoContest   *Marker `json:"no_contest,omitempty"`
	Completed   *Marker `json:"completed,omitempty"`
	ActiveAward *Award  `json:"active_award,omitempty"`
	Awards      []Award `json:"awards"`

	CarrierBids []CarrierBid `json:"carrier_bids"`
	BidCount    int          `json:"bid_count"`
	OwnBid      *CarrierBid  `json:"own_bid,omitempty"`

	Offers     []Offer     `json:"offers"`
	Assignment *Assignment `json:"assignment,omitempty"`

	Events []LifecycleEvent `json:"events"`
}

type BidListItem struct {
	BidNumber     string     `json:"bid_number"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DistanceMiles int        `json:"distance_miles"`
	PickupAt      *time.Time `json:"pickup_at,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CreatedAt     time.Time  `json:"created_at"`
	Status        string     `json:"status"`
	WinnerID      *string    `json:"winner_id,omitempty"`
	WinnerAmount  *Money     `json:"winner_amount,omitempty"`
	BidCount      int        `json:"bid_count"`
	LowestAmount  *Money     `json:"lowest_amount,omitempty"`
}

type BidListResponse struct {
	Items []BidListItem `json:"items"`
	Total int           `json:"total"`
}

// Mapping from read models

func markerOf(m *queries.MarkerView) *Marker {
	if m == nil {
		return nil
	}
	return &Marker{At: m.At, By: m.By, Notes: m.Notes}
}

func awardOf(a queries.AwardView) Award {
	return Award{
		ID:         a.ID.String(),
		WinnerID:   a.WinnerID,
		Amount:     moneyOf(a.Amount),
		Margin:     moneyOf(a.Margin),
		AdminNotes: a.AdminNotes,
		AwardedBy:  a.AwardedBy,
		AwardedAt:  a.AwardedAt,
		Removed:    a.Removed,
		RemovedAt:  a.RemovedAt,
		RemovedBy:  a.RemovedBy,
	}
}

func carrierBidOf(b queries.CarrierBidView) CarrierBid {
	return CarrierBid{
		ID:        b.ID.String(),
		CarrierID: b.CarrierID,
		Amount:    moneyOf(b.Amount),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func offerOf(o queries.OfferView) Offer {
	events := make([]OfferEvent, 0, len(o.Events))
	for _, e := range o.Events {
		events = append(events, OfferEvent{
			Action:      e.Action,
			OldStatus:   e.OldStatus,
			NewStatus:   e.NewStatus,
			OldAmount:   moneyPtrOf(e.OldAmount),
			NewAmount:   moneyPtrOf(e.NewAmount),
			Notes:       e.Notes,
			PerformedBy: e.PerformedBy,
			PerformedAt: e.PerformedAt,
		})
	}
	return Offer{
		ID:            o.ID.String(),
		CarrierID:     o.CarrierID,
		Amount:        moneyOf(o.Amount),
		Note:          o.Note,
		Status:        o.Status.String(),
		CounterAmount: moneyPtrOf(o.CounterAmount),
		AdminNotes:    o.AdminNotes,
		ExpiresAt:     o.ExpiresAt,
		DecidedBy:     o.DecidedBy,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Events:        events,
	}
}

func driverOf(d ledger.DriverVehicle) *DriverVehicle {
	if d.IsZero() {
		return nil
	}
	out := DriverVehicle(d)
	return &out
}

func lifecycleEventOf(e queries.LifecycleEventView) LifecycleEvent {
	out := LifecycleEvent{
		ID:            e.ID.String(),
		EventType:     e.Type.String(),
		OccurredAt:    e.OccurredAt,
		Location:      e.Details.Location,
		Timestamp:     e.Details.Timestamp,
		PickupTime:    e.Details.PickupTime,
		DepartureTime: e.Details.DepartureTime,
		DeliveryTime:  e.Details.DeliveryTime,
		Notes:         e.Details.Notes,
		Driver:        driverOf(e.Details.Primary),
		DriverEmail:   e.Details.DriverEmail,
		Documents:     e.Details.Documents,
		RecordedBy:    e.RecordedBy,
		RecordedAt:    e.RecordedAt,
	}
	if e.Details.Secondary != nil {
		out.SecondDriver = driverOf(*e.Details.Secondary)
	}
	return out
}

func lifecycleEventsOf(events []queries.LifecycleEventView) []LifecycleEvent {
	out := make([]LifecycleEvent, 0, len(events))
	for _, e := range events {
		out = append(out, lifecycleEventOf(e))
	}
	return out
}

func bidSummaryOf(s queries.BidSummary) BidSummaryResponse {
	resp := BidSummaryResponse{
		BidNumber:     s.BidNumber,
		Origin:        s.Origin,
		Destination:   s.Destination,
		Stops:         s.Stops,
		DistanceMiles: s.DistanceMiles,
		PickupAt:      s.PickupAt,
		DeliveryAt:    s.DeliveryAt,
		Tag:           s.Tag,
		ExpiresAt:     s.ExpiresAt,
		CreatedAt:     s.CreatedAt,
		Status:        s.Status.String(),
		NoContest:     markerOf(s.NoContest),
		Completed:     markerOf(s.Completed),
		Awards:        make([]Award, 0, len(s.Awards)),
		CarrierBids:   make([]CarrierBid, 0, len(s.CarrierBids)),
		BidCount:      s.BidCount,
		Offers:        make([]Offer, 0, len(s.Offers)),
		Events:        lifecycleEventsOf(s.Events),
	}
	if resp.Stops == nil {
		resp.Stops = []string{}
	}
	if s.ActiveAward != nil {
		a := awardOf(*s.ActiveAward)
		resp.ActiveAward = &a
	}
	for _, a := range s.Awards {
		resp.Awards = append(resp.Awards, awardOf(a))
	}
	for _, b := range s.CarrierBids {
		resp.CarrierBids = append(resp.CarrierBids, carrierBidOf(b))
	}
	if s.OwnBid != nil {
		b := carrierBidOf(*s.OwnBid)
		resp.OwnBid = &b
	}
	for _, o := range s.Offers {
		resp.Offers = append(resp.Offers, offerOf(o))
	}
	if s.Assignment != nil {
		resp.Assignment = &Assignment{
			ID:        s.Assignment.ID.String(),
			OfferID:   s.Assignment.OfferID.String(),
			CarrierID: s.Assignment.CarrierID,
			Price:     moneyOf(s.Assignment.Price),
			CreatedBy: s.Assignment.CreatedBy,
			CreatedAt: s.Assignment.CreatedAt,
		}
	}
	return resp
}

func bidListOf(r queries.ListBidsQueryResponse) BidListResponse {
	items := make([]BidListItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, BidListItem{
			BidNumber:     it.BidNumber,
			Origin:        it.Origin,
			Destination:   it.Destination,
			DistanceMiles: it.DistanceMiles,
			PickupAt:      it.PickupAt,
			Tag:           it.Tag,
			ExpiresAt:     it.ExpiresAt,
			CreatedAt:     it.CreatedAt,
			Status:        it.Status.String(),
			WinnerID:      it.WinnerID,
			WinnerAmount:  moneyPtrOf(it.WinnerAmount),
			BidCount:      it.BidCount,
			LowestAmount:  moneyPtrOf(it.LowestAmount),
		})
	}
	return BidListResponse{Items: items, Total: r.Total}
}
