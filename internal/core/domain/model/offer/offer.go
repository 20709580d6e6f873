package offer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

const maxNoteLength = 1000

var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

// Offer is a carrier's proposed price for a load. Once it leaves pending it never
// returns to pending; a fresh carrier response is a new Offer.
type Offer struct {
	id            kernel.UUID
	loadRef       kernel.BidNumber
	carrierID     kernel.ActorID
	amount        kernel.Money
	note          string
	status        Status
	counterAmount *kernel.Money
	adminNotes    string
	expiresAt     *time.Time
	decidedBy     *kernel.ActorID
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewOffer creates a pending offer and the audit event of its submission.
func NewOffer(
	id kernel.UUID,
	loadRef kernel.BidNumber,
	carrierID kernel.ActorID,
	amount kernel.Money,
	note string,
	expiresAt *time.Time,
	now time.Time,
) (*Offer, Event, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := loadRef.Validate(); err != nil {
		errList = append(errList, err)
	}
	if carrierID.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("carrier_id"))
	}
	if amount.Cents() <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is not greater than 0", amount.Cents())))
	}
	note = strings.TrimSpace(note)
	if len(note) > maxNoteLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("note length", len(note), 0, maxNoteLength))
	}
	if expiresAt != nil && !expiresAt.After(now) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"expires_at", errors.New("expiration is not in the future")))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, Event{}, err
	}

	now = now.UTC()
	o := &Offer{
		id:            id,
		loadRef:       loadRef,
		carrierID:     carrierID,
		amount:        amount,
		note:          note,
		status:        Pending,
		expiresAt:     utcPtr(expiresAt),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	amountCopy := amount
	return o, Event{
		ID:          kernel.NewUUID(),
		OfferID:     id,
		Action:      ActionSubmitted,
		NewStatus:   Pending,
		NewAmount:   &amountCopy,
		Notes:       note,
		PerformedBy: &carrierID,
		PerformedAt: now,
	}, nil
}

// RestoreOffer rebuilds an offer loaded from storage.
func RestoreOffer(
	id kernel.UUID,
	loadRef kernel.BidNumber,
	carrierID kernel.ActorID,
	amount kernel.Money,
	note string,
	status Status,
	counterAmount *kernel.Money,
	adminNotes string,
	expiresAt *time.Time,
	decidedBy *kernel.ActorID,
	createdAt, updatedAt time.Time,
) (*Offer, error) {
	if status == Unknown {
		return nil, errs.NewValueIsInvalidError("status")
	}
	if status == Countered && counterAmount == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("counter_amount", errors.New("countered offer has no counter amount"))
	}

	return &Offer{
		id:            id,
		loadRef:       loadRef,
		carrierID:     carrierID,
		amount:        amount,
		note:          note,
		status:        status,
		counterAmount: counterAmount,
		adminNotes:    adminNotes,
		expiresAt:     expiresAt,
		decidedBy:     decidedBy,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

func (o *Offer) ID() kernel.UUID              { return o.id }
func (o *Offer) LoadRef() kernel.BidNumber    { return o.loadRef }
func (o *Offer) CarrierID() kernel.ActorID    { return o.carrierID }
func (o *Offer) Amount() kernel.Money         { return o.amount }
func (o *Offer) Note() string                 { return o.note }
func (o *Offer) Status() Status               { return o.status }
func (o *Offer) CounterAmount() *kernel.Money { return o.counterAmount }
func (o *Offer) AdminNotes() string           { return o.adminNotes }
func (o *Offer) ExpiresAt() *time.Time        { return o.expiresAt }
func (o *Offer) DecidedBy() *kernel.ActorID   { return o.decidedBy }
func (o *Offer) CreatedAt() time.Time         { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time         { return o.updatedAt }

// Counter records the admin's counter price. Only a pending offer can be countered.
func (o *Offer) Counter(counterAmount kernel.Money, adminID kernel.ActorID, notes string, now time.Time) (Event, error) {
	if o.status != Pending {
		return Event{}, o.conflict("countered")
	}
	if counterAmount.Cents() <= 0 {
		return Event{}, errs.NewValueIsInvalidErrorWithCause(
			"counter_amount", fmt.Errorf("%d is not greater than 0", counterAmount.Cents()))
	}

	old := o.amount
	event, err := o.transition(Countered, ActionCountered, &old, &counterAmount, adminID, notes, now)
	if err != nil {
		return Event{}, err
	}

	o.counterAmount = &counterAmount
	return event, nil
}

// Accept marks the offer accepted and produces its Assignment. price overrides
// the offer amount when given; otherwise the carrier's original amount is used.
func (o *Offer) Accept(
	assignmentID kernel.UUID,
	adminID kernel.ActorID,
	price *kernel.Money,
	notes string,
	now time.Time,
) (*Assignment, Event, error) {
	if !o.status.IsDecidable() {
		return nil, Event{}, o.conflict("accepted")
	}

	accepted := o.amount
	if price != nil {
		if price.Cents() <= 0 {
			return nil, Event{}, errs.NewValueIsInvalidErrorWithCause(
				"accepted_price", fmt.Errorf("%d is not greater than 0", price.Cents()))
		}
		accepted = *price
	}

	old := o.amount
	event, err := o.transition(Accepted, ActionAccepted, &old, &accepted, adminID, notes, now)
	if err != nil {
		return nil, Event{}, err
	}

	return &Assignment{
		id:        assignmentID,
		offerID:   o.id,
		loadRef:   o.loadRef,
		carrierID: o.carrierID,
		price:     accepted,
		createdBy: adminID,
		createdAt: o.updatedAt,
	}, event, nil
}

// Reject declines a pending or countered offer.
func (o *Offer) Reject(adminID kernel.ActorID, notes string, now time.Time) (Event, error) {
	if !o.status.IsDecidable() {
		return Event{}, o.conflict("rejected")
	}
	return o.transition(Rejected, ActionRejected, nil, nil, adminID, notes, now)
}

// IsExpired reports whether a pending offer has passed its expiration at now.
func (o *Offer) IsExpired(now time.Time) bool {
	return o.status == Pending && o.expiresAt != nil && !now.Before(*o.expiresAt)
}

// Expire moves a pending offer past its expiration to expired. The event carries
// no performer: expiry is a system decision.
func (o *Offer) Expire(now time.Time) (Event, error) {
	if !o.IsExpired(now) {
		return Event{}, o.conflict("expired")
	}

	oldStatus := o.status
	o.status = Expired
	o.updatedAt = now.UTC()
	return Event{
		ID:          kernel.NewUUID(),
		OfferID:     o.id,
		Action:      ActionExpired,
		OldStatus:   oldStatus,
		NewStatus:   Expired,
		PerformedAt: o.updatedAt,
	}, nil
}

func (o *Offer) transition(
	next Status,
	action Action,
	oldAmount, newAmount *kernel.Money,
	adminID kernel.ActorID,
	notes string,
	now time.Time,
) (Event, error) {
	if adminID.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("admin_id")
	}

	notes = strings.TrimSpace(notes)
	oldStatus := o.status
	o.status = next
	o.decidedBy = &adminID
	o.updatedAt = now.UTC()
	if notes != "" {
		o.adminNotes = notes
	}

	return Event{
		ID:          kernel.NewUUID(),
		OfferID:     o.id,
		Action:      action,
		OldStatus:   oldStatus,
		NewStatus:   next,
		OldAmount:   oldAmount,
		NewAmount:   newAmount,
		Notes:       notes,
		PerformedBy: &adminID,
		PerformedAt: o.updatedAt,
	}, nil
}

func (o *Offer) conflict(target string) error {
	return errs.NewConflictError(fmt.Sprintf("offer %s is %s and cannot be %s", o.id, o.status, target))
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
