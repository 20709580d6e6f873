package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, bid *auction.Bid) error {
	return m.Called(ctx, bid).Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, bid *auction.Bid) error {
	return m.Called(ctx, bid).Error(0)
}

func (m *MockBidRepository) Get(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auction.Bid), args.Error(1)
}

func (m *MockBidRepository) GetForUpdate(ctx context.Context, number kernel.BidNumber) (*auction.Bid, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auction.Bid), args.Error(1)
}

type MockAwardRepository struct{ mock.Mock }

func (m *MockAwardRepository) Add(ctx context.Context, award *auction.Award) error {
	return m.Called(ctx, award).Error(0)
}

func (m *MockAwardRepository) Update(ctx context.Context, award *auction.Award) error {
	return m.Called(ctx, award).Error(0)
}

type MockCarrierBidRepository struct{ mock.Mock }

func (m *MockCarrierBidRepository) Add(ctx context.Context, cb *auction.CarrierBid) error {
	return m.Called(ctx, cb).Error(0)
}

func (m *MockCarrierBidRepository) Update(ctx context.Context, cb *auction.CarrierBid) error {
	return m.Called(ctx, cb).Error(0)
}

func (m *MockCarrierBidRepository) Find(
	ctx context.Context,
	number kernel.BidNumber,
	carrierID kernel.ActorID,
) (*auction.CarrierBid, error) {
	args := m.Called(ctx, number, carrierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auction.CarrierBid), args.Error(1)
}

func (m *MockCarrierBidRepository) ListBidderIDs(ctx context.Context, number kernel.BidNumber) ([]kernel.ActorID, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.ActorID), args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) Update(ctx context.Context, o *offer.Offer) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOfferRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListDecidableForUpdate(ctx context.Context, loadRef kernel.BidNumber) ([]*offer.Offer, error) {
	args := m.Called(ctx, loadRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListExpiredForUpdate(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListCarrierIDs(ctx context.Context, loadRef kernel.BidNumber) ([]kernel.ActorID, error) {
	args := m.Called(ctx, loadRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.ActorID), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *offer.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) FindByLoad(ctx context.Context, loadRef kernel.BidNumber) (*offer.Assignment, error) {
	args := m.Called(ctx, loadRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Assignment), args.Error(1)
}

type MockOfferEventRepository struct{ mock.Mock }

func (m *MockOfferEventRepository) Add(ctx context.Context, event offer.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockLifecycleEventRepository struct{ mock.Mock }

func (m *MockLifecycleEventRepository) Add(ctx context.Context, event *ledger.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockLifecycleEventRepository) Tail(ctx context.Context, number kernel.BidNumber) (ledger.Tail, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(ledger.Tail), args.Error(1)
}

func (m *MockLifecycleEventRepository) List(ctx context.Context, number kernel.BidNumber) ([]*ledger.Event, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Event), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) BidRepository() ports.BidRepository {
	return m.Called().Get(0).(ports.BidRepository)
}

func (m *MockUoW) AwardRepository() ports.AwardRepository {
	return m.Called().Get(0).(ports.AwardRepository)
}

func (m *MockUoW) CarrierBidRepository() ports.CarrierBidRepository {
	return m.Called().Get(0).(ports.CarrierBidRepository)
}

func (m *MockUoW) OfferRepository() ports.OfferRepository {
	return m.Called().Get(0).(ports.OfferRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) OfferEventRepository() ports.OfferEventRepository {
	return m.Called().Get(0).(ports.OfferEventRepository)
}

func (m *MockUoW) LifecycleEventRepository() ports.LifecycleEventRepository {
	return m.Called().Get(0).(ports.LifecycleEventRepository)
}

type MockBidUoWFactory struct{ mock.Mock }

func (m *MockBidUoWFactory) Create() commands.BidUoW {
	return m.Called().Get(0).(commands.BidUoW)
}

type MockAwardUoWFactory struct{ mock.Mock }

func (m *MockAwardUoWFactory) Create() commands.AwardUoW {
	return m.Called().Get(0).(commands.AwardUoW)
}

type MockOfferUoWFactory struct{ mock.Mock }

func (m *MockOfferUoWFactory) Create() commands.OfferUoW {
	return m.Called().Get(0).(commands.OfferUoW)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	return m.Called().Get(0).(commands.LedgerUoW)
}

type MockNotificationQueue struct{ mock.Mock }

func (m *MockNotificationQueue) Enqueue(ctx context.Context, notifications ...notification.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

// repos bundles one mock per repository, wired into a MockUoW.
type repos struct {
	uow         *MockUoW
	bids        *MockBidRepository
	awards      *MockAwardRepository
	carrierBids *MockCarrierBidRepository
	offers      *MockOfferRepository
	assignments *MockAssignmentRepository
	offerEvents *MockOfferEventRepository
	events      *MockLifecycleEventRepository
}

func newRepos() repos {
	r := repos{
		uow:         new(MockUoW),
		bids:        new(MockBidRepository),
		awards:      new(MockAwardRepository),
		carrierBids: new(MockCarrierBidRepository),
		offers:      new(MockOfferRepository),
		assignments: new(MockAssignmentRepository),
		offerEvents: new(MockOfferEventRepository),
		events:      new(MockLifecycleEventRepository),
	}
	r.uow.On("BidRepository").Return(r.bids).Maybe()
	r.uow.On("AwardRepository").Return(r.awards).Maybe()
	r.uow.On("CarrierBidRepository").Return(r.carrierBids).Maybe()
	r.uow.On("OfferRepository").Return(r.offers).Maybe()
	r.uow.On("AssignmentRepository").Return(r.assignments).Maybe()
	r.uow.On("OfferEventRepository").Return(r.offerEvents).Maybe()
	r.uow.On("LifecycleEventRepository").Return(r.events).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.bids.AssertExpectations(t)
	r.awards.AssertExpectations(t)
	r.carrierBids.AssertExpectations(t)
	r.offers.AssertExpectations(t)
	r.assignments.AssertExpectations(t)
	r.offerEvents.AssertExpectations(t)
	r.events.AssertExpectations(t)
}

func (r repos) awardFactory() *MockAwardUoWFactory {
	f := new(MockAwardUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) bidFactory() *MockBidUoWFactory {
	f := new(MockBidUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) offerFactory() *MockOfferUoWFactory {
	f := new(MockOfferUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func (r repos) ledgerFactory() *MockLedgerUoWFactory {
	f := new(MockLedgerUoWFactory)
	f.On("Create").Return(r.uow).Once()
	return f
}

func newNotifier(queue ports.NotificationQueue) commands.Notifier {
	return commands.NewNotifier(queue, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fixedClock() clock.Fixed {
	return clock.Fixed(testNow)
}

func newTestBid(t *testing.T, number string) *auction.Bid {
	t.Helper()
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
	require.NoError(t, err)
	bid, err := auction.NewBid(kernel.MustNewBidNumber(number), meta, testNow.Add(25*time.Minute), testNow.Add(-time.Minute))
	require.NoError(t, err)
	return bid
}

func newAwardedBid(t *testing.T, number, winner string) *auction.Bid {
	t.Helper()
	bid := newTestBid(t, number)
	_, err := bid.Award(kernel.NewUUID(), kernel.MustNewActorID(winner), kernel.MoneyFromCents(200000),
		kernel.MoneyFromCents(0), "", kernel.MustNewActorID("admin-1"), testNow)
	require.NoError(t, err)
	return bid
}

func newPendingOffer(t *testing.T, loadRef, carrier string, cents int64) *offer.Offer {
	t.Helper()
	o, _, err := offer.NewOffer(kernel.NewUUID(), kernel.MustNewBidNumber(loadRef),
		kernel.MustNewActorID(carrier), kernel.MoneyFromCents(cents), "", nil, testNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func actors(ids ...string) []kernel.ActorID {
	out := make([]kernel.ActorID, 0, len(ids))
	for _, id := range ids {
		out = append(out, kernel.MustNewActorID(id))
	}
	return out
}

// kinds collects notification kind and recipient pairs for assertions.
func kinds(notifications []notification.Notification) []string {
	out := make([]string, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, string(n.Kind)+":"+n.RecipientID.String())
	}
	return out
}
