package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	postgres_adapter "loadboard/internal/adapters/out/postgres"
	"loadboard/internal/adapters/out/postgres/notificationrepo"
	"loadboard/internal/adapters/out/postgres/pgtest"
	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/auction"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/clock"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// uowFactory adapts the gorm factory to every unit of work shape the command
// handlers ask for.
type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) bid() commands.BidUoWFactory       { return bidUoWFactory(f) }
func (f uowFactory) award() commands.AwardUoWFactory   { return awardUoWFactory(f) }
func (f uowFactory) offer() commands.OfferUoWFactory   { return offerUoWFactory(f) }
func (f uowFactory) ledger() commands.LedgerUoWFactory { return ledgerUoWFactory(f) }

type (
	bidUoWFactory    uowFactory
	awardUoWFactory  uowFactory
	offerUoWFactory  uowFactory
	ledgerUoWFactory uowFactory
)

func (f bidUoWFactory) Create() commands.BidUoW       { return f.factory.Create() }
func (f awardUoWFactory) Create() commands.AwardUoW   { return f.factory.Create() }
func (f offerUoWFactory) Create() commands.OfferUoW   { return f.factory.Create() }
func (f ledgerUoWFactory) Create() commands.LedgerUoW { return f.factory.Create() }

// UnitOfWorkIntegrationTestSuite runs the unit of work and the command handlers
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	factory   *postgres_adapter.GormUnitOfWorkFactory
	factories uowFactory
	notifier  commands.Notifier
	clock     clock.System
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
	suite.factories = uowFactory{factory: suite.factory}
	suite.notifier = commands.NewNotifier(
		notificationrepo.NewGormNotificationRepository(database.DB, suite.clock),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createBid(number string) {
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
	suite.Require().NoError(err)

	cmd, err := commands.NewCreateBidCommand(number, meta, time.Now().Add(25*time.Minute))
	suite.Require().NoError(err)

	suite.Require().NoError(commands.NewCreateBidCommandHandler(suite.factories.bid(), suite.clock).
		Handle(context.Background(), cmd))
}

func (suite *UnitOfWorkIntegrationTestSuite) award(number, winner string, cents int64) error {
	cmd, err := commands.NewAwardBidCommand(number, winner, cents, "admin-1", "", 0)
	suite.Require().NoError(err)

	_, err = commands.NewAwardBidCommandHandler(suite.factories.award(), suite.notifier, suite.clock).
		Handle(context.Background(), cmd)
	return err
}

func (suite *UnitOfWorkIntegrationTestSuite) submitOffer(loadRef, carrier string, cents int64) kernel.UUID {
	cmd, err := commands.NewSubmitOfferCommand(loadRef, carrier, cents, "", nil)
	suite.Require().NoError(err)

	id, err := commands.NewSubmitOfferCommandHandler(suite.factories.offer(), suite.clock).
		Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) accept(offerID kernel.UUID) error {
	cmd, err := commands.NewAcceptOfferCommand(offerID.String(), "admin-1", nil, "")
	suite.Require().NoError(err)

	_, err = commands.NewAcceptOfferCommandHandler(suite.factories.offer(), suite.notifier, suite.clock).
		Handle(context.Background(), cmd)
	return err
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Error(uow.Commit(ctx), "commit without an active transaction")
	suite.Error(uow.Rollback(ctx), "rollback without an active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	meta, err := auction.NewMetadata("Dallas, TX", "Denver, CO", nil, 780, nil, nil, "")
	suite.Require().NoError(err)
	bid, err := auction.NewBid(kernel.MustNewBidNumber("9001"), meta, time.Now().Add(time.Hour), time.Now())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BidRepository().Add(ctx, bid))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().BidRepository().Get(ctx, bid.Number())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWritesAcrossRepositoriesCommitTogether() {
	ctx := context.Background()
	suite.createBid("9001")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	bid, err := uow.BidRepository().GetForUpdate(ctx, kernel.MustNewBidNumber("9001"))
	suite.Require().NoError(err)
	award, err := bid.Award(kernel.NewUUID(), kernel.MustNewActorID("C2"), kernel.MoneyFromCents(200000),
		kernel.MoneyFromCents(0), "", kernel.MustNewActorID("admin-1"), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AwardRepository().Add(ctx, award))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().BidRepository().Get(ctx, bid.Number())
	suite.Require().NoError(err)
	suite.Equal(auction.Awarded, loaded.Status())
	suite.Equal("C2", loaded.ActiveAward().WinnerID().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAwardsProduceOneWinner() {
	suite.createBid("9001")

	const contenders = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := suite.award("9001", "C"+string(rune('A'+i)), int64(200000+i))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	suite.Equal(1, succeeded)
	suite.Equal(contenders-1, conflicts)

	var active int64
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT count(*) FROM awards WHERE bid_number = ? AND removed = false", "9001").Scan(&active).Error)
	suite.Equal(int64(1), active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAcceptsProduceOneAssignment() {
	offerID := suite.submitOffer("L100", "C1", 150000)

	const contenders = 6
	results := make(chan error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.accept(offerID)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(contenders-1, conflicts)

	var assignments int64
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT count(*) FROM assignments WHERE load_ref = ?", "L100").Scan(&assignments).Error)
	suite.Equal(int64(1), assignments)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAcceptsOfDifferentOffersOnOneLoadProduceOneAssignment() {
	first := suite.submitOffer("L100", "C1", 150000)
	second := suite.submitOffer("L100", "C2", 149000)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, id := range []kernel.UUID{first, second} {
		wg.Add(1)
		go func(i int, id kernel.UUID) {
			defer wg.Done()
			results[i] = suite.accept(id)
		}(i, id)
	}
	wg.Wait()

	failed := 0
	for _, err := range results {
		if err != nil {
			suite.True(errors.Is(err, errs.ErrConflict), "unexpected error: %v", err)
			failed++
		}
	}
	suite.Equal(1, failed)

	uow := suite.factory.Create()
	assignment, err := uow.AssignmentRepository().FindByLoad(context.Background(), kernel.MustNewBidNumber("L100"))
	suite.Require().NoError(err)
	suite.Contains([]string{"C1", "C2"}, assignment.CarrierID().String())

	var accepted int64
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT count(*) FROM offers WHERE load_ref = ? AND status = ?", "L100", offer.Accepted.String()).
		Scan(&accepted).Error)
	suite.Equal(int64(1), accepted)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
