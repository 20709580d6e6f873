package auction

import (
	"errors"
	"strings"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

var ErrAwardIsNotConstructed = errors.New("Award must be created via NewAward constructor")

// Award designates the winning carrier of a bid. Awards are never deleted:
// removal stamps removed, removedAt and removedBy and keeps the row as history.
type Award struct {
	id         kernel.UUID
	bidNumber  kernel.BidNumber
	winnerID   kernel.ActorID
	amount     kernel.Money
	margin     kernel.Money
	adminNotes string
	awardedBy  kernel.ActorID
	awardedAt  time.Time

	removed   bool
	removedAt *time.Time
	removedBy *kernel.ActorID

	isConstructed bool
}

// NewAward creates an active award. The winning amount must be positive; the
// admin margin may be zero.
func NewAward(
	id kernel.UUID,
	bidNumber kernel.BidNumber,
	winnerID kernel.ActorID,
	amount kernel.Money,
	margin kernel.Money,
	adminNotes string,
	awardedBy kernel.ActorID,
	awardedAt time.Time,
) (*Award, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := bidNumber.Validate(); err != nil {
		errList = append(errList, err)
	}
	if winnerID.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("winner_id"))
	}
	if awardedBy.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("admin_id"))
	}
	if amount.Cents() <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("winner_amount"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Award{
		id:            id,
		bidNumber:     bidNumber,
		winnerID:      winnerID,
		amount:        amount,
		margin:        margin,
		adminNotes:    strings.TrimSpace(adminNotes),
		awardedBy:     awardedBy,
		awardedAt:     awardedAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreAward rebuilds an award loaded from storage.
func RestoreAward(
	id kernel.UUID,
	bidNumber kernel.BidNumber,
	winnerID kernel.ActorID,
	amount kernel.Money,
	margin kernel.Money,
	adminNotes string,
	awardedBy kernel.ActorID,
	awardedAt time.Time,
	removedAt *time.Time,
	removedBy *kernel.ActorID,
) *Award {
	return &Award{
		id:            id,
		bidNumber:     bidNumber,
		winnerID:      winnerID,
		amount:        amount,
		margin:        margin,
		adminNotes:    adminNotes,
		awardedBy:     awardedBy,
		awardedAt:     awardedAt,
		removed:       removedAt != nil,
		removedAt:     removedAt,
		removedBy:     removedBy,
		isConstructed: true,
	}
}

func (a *Award) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAwardIsNotConstructed
	}
	return nil
}

func (a *Award) ID() kernel.UUID             { return a.id }
func (a *Award) BidNumber() kernel.BidNumber { return a.bidNumber }
func (a *Award) WinnerID() kernel.ActorID    { return a.winnerID }
func (a *Award) Amount() kernel.Money        { return a.amount }
func (a *Award) Margin() kernel.Money        { return a.margin }
func (a *Award) AdminNotes() string          { return a.adminNotes }
func (a *Award) AwardedBy() kernel.ActorID   { return a.awardedBy }
func (a *Award) AwardedAt() time.Time        { return a.awardedAt }
func (a *Award) IsRemoved() bool             { return a.removed }
func (a *Award) RemovedAt() *time.Time       { return a.removedAt }
func (a *Award) RemovedBy() *kernel.ActorID  { return a.removedBy }

// remove soft-deletes the award. A removed award is never reactivated.
func (a *Award) remove(by kernel.ActorID, at time.Time) error {
	if a.removed {
		return errs.NewConflictError("award " + a.id.String() + " is already removed")
	}
	if by.IsZero() {
		return errs.NewValueIsRequiredError("admin_id")
	}
	at = at.UTC()
	a.removed = true
	a.removedAt = &at
	a.removedBy = &by
	return nil
}
