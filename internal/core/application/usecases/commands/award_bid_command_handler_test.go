package commands_test

import (
	"errors"
	"testing"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAwardBidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	bid := newTestBid(t, "B100")
	number := bid.Number()

	r := newRepos()
	queue := new(MockNotificationQueue)
	var sent []notification.Notification

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.bids.On("GetForUpdate", ctx, number).Return(bid, nil).Once(),
		r.assignments.On("FindByLoad", ctx, number).
			Return(nil, errs.NewObjectNotFoundError("load_ref", number)).Once(),
		r.awards.On("Add", ctx, mock.AnythingOfType("*auction.Award")).Return(nil).Once(),
		r.carrierBids.On("ListBidderIDs", ctx, number).Return(actors("carrier-1", "carrier-2", "carrier-3"), nil).Once(),
		r.uow.On("Commit", ctx).Return(nil).Once(),
		queue.On("Enqueue", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			sent = args.Get(1).([]notification.Notification)
		}).Return(nil).Once(),
	)
	r.uow.On("Rollback", ctx).Return(nil)

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(queue), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B100", "carrier-2", 185000, "admin-1", "fastest", 0)
	require.NoError(t, err)

	awardID, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, awardID.IsEqual(kernel.UUID{}))
	assert.Equal(t, auction.Awarded, bid.Status())
	assert.Equal(t, "carrier-2", bid.ActiveAward().WinnerID().String())
	assert.Equal(t, int64(185000), bid.ActiveAward().Amount().Cents())
	assert.ElementsMatch(t, []string{
		"bid_awarded:carrier-2",
		"bid_lost:carrier-1",
		"bid_lost:carrier-3",
	}, kinds(sent))
	r.assertExpectations(t)
	queue.AssertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_AlreadyAwarded(t *testing.T) {
	ctx := t.Context()
	bid := newAwardedBid(t, "B101", "carrier-1")
	number := bid.Number()

	r := newRepos()
	queue := new(MockNotificationQueue)

	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.bids.On("GetForUpdate", ctx, number).Return(bid, nil).Once(),
		r.assignments.On("FindByLoad", ctx, number).
			Return(nil, errs.NewObjectNotFoundError("load_ref", number)).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(queue), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B101", "carrier-2", 150000, "admin-1", "", 0)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, "carrier-1", bid.ActiveAward().WinnerID().String())
	r.awards.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_LoadAssignedToAnotherCarrier(t *testing.T) {
	ctx := t.Context()
	bid := newTestBid(t, "B102")
	number := bid.Number()
	assignment := offer.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), number,
		kernel.MustNewActorID("carrier-9"), kernel.MoneyFromCents(120000), kernel.MustNewActorID("admin-1"), testNow)

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.bids.On("GetForUpdate", ctx, number).Return(bid, nil).Once(),
		r.assignments.On("FindByLoad", ctx, number).Return(assignment, nil).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(nil), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B102", "carrier-2", 150000, "admin-1", "", 0)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, auction.Open, bid.Status())
	r.assertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_BidNotFound(t *testing.T) {
	ctx := t.Context()
	number := kernel.MustNewBidNumber("B404")

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", ctx).Return(nil).Once(),
		r.bids.On("GetForUpdate", ctx, number).Return(nil, errs.NewObjectNotFoundError("bid_number", number)).Once(),
		r.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(nil), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B404", "carrier-2", 150000, "admin-1", "", 0)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	r.assertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	bid := newTestBid(t, "B103")
	number := bid.Number()

	r := newRepos()
	queue := new(MockNotificationQueue)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.bids.On("GetForUpdate", ctx, number).Return(bid, nil).Once()
	r.assignments.On("FindByLoad", ctx, number).Return(nil, errs.NewObjectNotFoundError("load_ref", number)).Once()
	r.awards.On("Add", ctx, mock.Anything).Return(nil).Once()
	r.carrierBids.On("ListBidderIDs", ctx, number).Return([]kernel.ActorID{}, nil).Once()
	r.uow.On("Commit", ctx).Return(nil).Once()
	r.uow.On("Rollback", ctx).Return(nil)
	queue.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("queue is down")).Once()

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(queue), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B103", "carrier-2", 150000, "admin-1", "", 0)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, auction.Awarded, bid.Status())
	queue.AssertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_CommitFails(t *testing.T) {
	ctx := t.Context()
	bid := newTestBid(t, "B104")
	number := bid.Number()
	storeErr := errs.NewStoreError("commit", errors.New("connection reset"))

	r := newRepos()
	queue := new(MockNotificationQueue)

	r.uow.On("Begin", ctx).Return(nil).Once()
	r.bids.On("GetForUpdate", ctx, number).Return(bid, nil).Once()
	r.assignments.On("FindByLoad", ctx, number).Return(nil, errs.NewObjectNotFoundError("load_ref", number)).Once()
	r.awards.On("Add", ctx, mock.Anything).Return(nil).Once()
	r.carrierBids.On("ListBidderIDs", ctx, number).Return(actors("carrier-1"), nil).Once()
	r.uow.On("Commit", ctx).Return(storeErr).Once()
	r.uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAwardBidCommandHandler(r.awardFactory(), newNotifier(queue), fixedClock())
	cmd, err := commands.NewAwardBidCommand("B104", "carrier-2", 150000, "admin-1", "", 0)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrStore)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	r.assertExpectations(t)
}

func TestAwardBidCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	handler := commands.NewAwardBidCommandHandler(new(MockAwardUoWFactory), newNotifier(nil), fixedClock())

	_, err := handler.Handle(t.Context(), commands.AwardBidCommand{})

	assert.ErrorIs(t, err, commands.ErrAwardBidCommandIsNotConstructed)
}
