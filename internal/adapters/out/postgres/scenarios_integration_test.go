package postgres_test

import (
	"context"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/ledger"
	"loadboard/internal/core/domain/model/offer"
	"loadboard/internal/pkg/errs"
)

func (suite *UnitOfWorkIntegrationTestSuite) TestAcceptWithoutPriceAssignsOfferAmount() {
	ctx := context.Background()
	offerID := suite.submitOffer("L100", "C1", 150000)

	suite.Require().NoError(suite.accept(offerID))

	uow := suite.factory.Create()
	assignment, err := uow.AssignmentRepository().FindByLoad(ctx, kernel.MustNewBidNumber("L100"))
	suite.Require().NoError(err)
	suite.Equal("L100", assignment.LoadRef().String())
	suite.Equal("C1", assignment.CarrierID().String())
	suite.Equal(int64(150000), assignment.Price().Cents())
	suite.Equal(offerID, assignment.OfferID())

	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	o, err := uow.OfferRepository().GetForUpdate(ctx, offerID)
	suite.Require().NoError(err)
	suite.Equal(offer.Accepted, o.Status())

	var kinds []string
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT kind FROM notifications WHERE recipient_id = ? ORDER BY seq", "C1").Scan(&kinds).Error)
	suite.Equal([]string{"offer_accepted"}, kinds)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAwardIsExclusiveUntilRemoved() {
	ctx := context.Background()
	suite.createBid("9001")

	suite.Require().NoError(suite.award("9001", "C2", 200000))

	err := suite.award("9001", "C3", 210000)
	suite.ErrorIs(err, errs.ErrConflict)

	removeCmd, err := commands.NewRemoveAwardCommand("9001", "admin-1")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewRemoveAwardCommandHandler(suite.factories.award(), suite.notifier, suite.clock).
		Handle(ctx, removeCmd))

	suite.Require().NoError(suite.award("9001", "C3", 210000))

	bid, err := suite.factory.Create().BidRepository().Get(ctx, kernel.MustNewBidNumber("9001"))
	suite.Require().NoError(err)
	suite.Equal("C3", bid.ActiveAward().WinnerID().String())
	suite.Equal(int64(210000), bid.ActiveAward().Amount().Cents())

	var history int64
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT count(*) FROM awards WHERE bid_number = ? AND removed = true", "9001").Scan(&history).Error)
	suite.Equal(int64(1), history)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryBeforePickupIsOutOfOrder() {
	ctx := context.Background()
	suite.createBid("9001")
	suite.Require().NoError(suite.award("9001", "C2", 200000))

	handler := commands.NewAppendLifecycleEventCommandHandler(suite.factories.ledger(), suite.clock)
	t1 := time.Now().UTC().Truncate(time.Second).Add(2 * time.Hour)
	t0 := t1.Add(-30 * time.Minute)

	pickup, err := commands.NewAppendLifecycleEventCommand("9001", "pickup", ledger.Details{
		PickupTime: &t1,
		Primary: ledger.DriverVehicle{
			DriverName:          "Ana Ortiz",
			DriverPhone:         "+1 555 0100",
			DriverLicenseNumber: "D1234567",
			DriverLicenseState:  "TX",
			TruckNumber:         "T-42",
		},
	}, "C2", true)
	suite.Require().NoError(err)
	pickupID, err := handler.Handle(ctx, pickup)
	suite.Require().NoError(err)

	delivery, err := commands.NewAppendLifecycleEventCommand("9001", "delivery",
		ledger.Details{DeliveryTime: &t0}, "C2", true)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, delivery)
	suite.ErrorIs(err, errs.ErrOutOfOrder)

	events, err := suite.factory.Create().LifecycleEventRepository().List(ctx, kernel.MustNewBidNumber("9001"))
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal(pickupID, events[0].ID())
	suite.Equal(ledger.Pickup, events[0].Type())
}
