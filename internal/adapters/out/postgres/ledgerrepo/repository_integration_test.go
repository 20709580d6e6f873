package ledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"loadboard/internal/adapters/out/postgres/ledgerrepo"
	"loadboard/internal/adapters/out/postgres/pgtest"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

func primaryDriver() ledger.DriverVehicle {
	return ledger.DriverVehicle{
		DriverName:          "Ana Ortiz",
		DriverPhone:         "+1 555 0100",
		DriverLicenseNumber: "D1234567",
		DriverLicenseState:  "TX",
		TruckNumber:         "T-42",
		TrailerNumber:       "TR-9",
	}
}

type LedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *ledgerrepo.GormLifecycleEventRepository
	number   kernel.BidNumber
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.number = kernel.MustNewBidNumber("9001")
}

func (suite *LedgerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repo = ledgerrepo.NewGormLifecycleEventRepository(suite.database.DB)

	// lifecycle_events references bids.
	suite.Require().NoError(suite.database.DB.Exec(
		`INSERT INTO bids (bid_number, origin, destination, stops, distance_miles, tag, expires_at, created_at)
		 VALUES (?, 'Dallas, TX', 'Denver, CO', '[]', 780, '', ?, ?)`,
		suite.number.String(), t0.Add(-time.Hour), t0.Add(-2*time.Hour)).Error)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *LedgerRepositoryIntegrationTestSuite) add(eventType ledger.EventType, details ledger.Details) *ledger.Event {
	event, err := ledger.NewEvent(kernel.NewUUID(), suite.number, eventType, details,
		kernel.MustNewActorID("C1"), t0.Add(12*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), event))
	return event
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestEmptyLedgerHasZeroTail() {
	tail, err := suite.repo.Tail(context.Background(), suite.number)

	suite.Require().NoError(err)
	suite.Nil(tail.Latest)
	suite.False(tail.Delivered)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestDetailsRoundTrip() {
	pickup := t0.Add(time.Hour)
	secondary := ledger.DriverVehicle{DriverName: "Bo Lee", TruckNumber: "T-7"}
	added := suite.add(ledger.Pickup, ledger.Details{
		Location:    "Dallas, TX",
		PickupTime:  &pickup,
		Primary:     primaryDriver(),
		Secondary:   &secondary,
		DriverEmail: "ana@example.com",
	})

	events, err := suite.repo.List(context.Background(), suite.number)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)

	got := events[0]
	suite.Equal(added.ID(), got.ID())
	suite.Equal(ledger.Pickup, got.Type())
	suite.True(got.OccurredAt().Equal(pickup))
	suite.Equal("Dallas, TX", got.Details().Location)
	suite.Equal(added.Details().Primary, got.Details().Primary)
	suite.Require().NotNil(got.Details().Secondary)
	suite.Equal("Bo Lee", got.Details().Secondary.DriverName)
	suite.Equal("ana@example.com", got.Details().DriverEmail)
	suite.Equal("C1", got.RecordedBy().String())
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestListOrdersByTimestampThenInsertion() {
	checkIn := t0
	pickup := t0.Add(time.Hour)
	sameAsPickup := pickup

	suite.add(ledger.CheckIn, ledger.Details{Location: "Dallas, TX", Timestamp: &checkIn})
	first := suite.add(ledger.Pickup, ledger.Details{PickupTime: &pickup, Primary: primaryDriver()})
	second := suite.add(ledger.Note, ledger.Details{Timestamp: &sameAsPickup, Notes: "loaded 22 pallets"})

	events, err := suite.repo.List(context.Background(), suite.number)
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal(ledger.CheckIn, events[0].Type())
	suite.Equal(first.ID(), events[1].ID())
	suite.Equal(second.ID(), events[2].ID())

	tail, err := suite.repo.Tail(context.Background(), suite.number)
	suite.Require().NoError(err)
	suite.Require().NotNil(tail.Latest)
	suite.Equal(second.ID(), tail.Latest.ID())
	suite.False(tail.Delivered)
}

func (suite *LedgerRepositoryIntegrationTestSuite) TestTailReportsDelivery() {
	delivered := t0.Add(10 * time.Hour)
	later := t0.Add(11 * time.Hour)

	suite.add(ledger.Delivery, ledger.Details{DeliveryTime: &delivered})
	note := suite.add(ledger.Note, ledger.Details{Timestamp: &later, Notes: "POD signed"})

	tail, err := suite.repo.Tail(context.Background(), suite.number)
	suite.Require().NoError(err)
	suite.True(tail.Delivered)
	suite.Equal(note.ID(), tail.Latest.ID())
}

func TestLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryIntegrationTestSuite))
}
