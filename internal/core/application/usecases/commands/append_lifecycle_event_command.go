package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/pkg/guard"
)

var ErrAppendLifecycleEventCommandIsNotConstructed = errors.New(
	"AppendLifecycleEventCommand must be created via NewAppendLifecycleEventCommand constructor",
)

// AppendLifecycleEventCommand records one fulfillment event on an awarded bid.
// When asWinner is set the recorder must be the carrier holding the active award;
// admins append on anyone's behalf.
type AppendLifecycleEventCommand struct {
	bidNumber  kernel.BidNumber
	eventType  ledger.EventType
	details    ledger.Details
	recordedBy kernel.ActorID
	asWinner   bool

	guard guard.ConstructorGuard
}

func NewAppendLifecycleEventCommand(
	bidNumber, eventType string,
	details ledger.Details,
	recordedBy string,
	asWinner bool,
) (AppendLifecycleEventCommand, error) {
	number, numberErr := kernel.NewBidNumber(bidNumber)
	et, typeErr := ledger.ParseEventType(eventType)
	recorder, recorderErr := kernel.NewActorID("recorded_by", recordedBy)
	if err := errors.Join(numberErr, typeErr, recorderErr); err != nil {
		return AppendLifecycleEventCommand{}, err
	}

	return AppendLifecycleEventCommand{
		bidNumber:  number,
		eventType:  et,
		details:    details,
		recordedBy: recorder,
		asWinner:   asWinner,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AppendLifecycleEventCommand) Validate() error {
	return c.guard.Validate(ErrAppendLifecycleEventCommandIsNotConstructed)
}

func (c AppendLifecycleEventCommand) BidNumber() kernel.BidNumber { return c.bidNumber }
func (c AppendLifecycleEventCommand) EventType() ledger.EventType { return c.eventType }
func (c AppendLifecycleEventCommand) Details() ledger.Details     { return c.details }
func (c AppendLifecycleEventCommand) RecordedBy() kernel.ActorID  { return c.recordedBy }
func (c AppendLifecycleEventCommand) AsWinner() bool              { return c.asWinner }
