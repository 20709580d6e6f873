package notificationrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadboard/internal/adapters/out/postgres/notificationrepo"
	"loadboard/internal/adapters/out/postgres/pgtest"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/notification"
	"loadboard/internal/pkg/clock"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *notificationrepo.GormNotificationRepository
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repo = notificationrepo.NewGormNotificationRepository(suite.database.DB, clock.Fixed(now))
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestEnqueueAndFetchInOrder() {
	ctx := context.Background()
	awarded := notification.New(notification.BidAwarded, kernel.MustNewActorID("C2"),
		map[string]any{"bid_number": "9001", "amount": "2000.00"}, now)
	lost := notification.New(notification.BidLost, kernel.MustNewActorID("C3"),
		map[string]any{"bid_number": "9001"}, now)

	suite.Require().NoError(suite.repo.Enqueue(ctx, awarded, lost))

	pending, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(awarded.ID, pending[0].ID)
	suite.Equal(notification.BidAwarded, pending[0].Kind)
	suite.Equal("C2", pending[0].RecipientID.String())
	suite.Equal("2000.00", pending[0].Payload["amount"])
	suite.Equal(0, pending[0].Attempts)
	suite.Equal(lost.ID, pending[1].ID)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestEnqueueSameIDTwiceStoresOnce() {
	ctx := context.Background()
	n := notification.New(notification.OfferAccepted, kernel.MustNewActorID("C1"), nil, now)

	suite.Require().NoError(suite.repo.Enqueue(ctx, n))
	suite.Require().NoError(suite.repo.Enqueue(ctx, n))

	pending, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkDispatchedRemovesFromPending() {
	ctx := context.Background()
	first := notification.New(notification.BidLost, kernel.MustNewActorID("C1"), nil, now)
	second := notification.New(notification.BidLost, kernel.MustNewActorID("C2"), nil, now)
	suite.Require().NoError(suite.repo.Enqueue(ctx, first, second))

	suite.Require().NoError(suite.repo.MarkDispatched(ctx, []kernel.UUID{first.ID}))

	pending, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(second.ID, pending[0].ID)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkFailedCountsAttempts() {
	ctx := context.Background()
	n := notification.New(notification.OfferExpired, kernel.MustNewActorID("C1"), nil, now)
	suite.Require().NoError(suite.repo.Enqueue(ctx, n))

	cause := errors.New("broker unavailable")
	suite.Require().NoError(suite.repo.MarkFailed(ctx, []kernel.UUID{n.ID}, cause))
	suite.Require().NoError(suite.repo.MarkFailed(ctx, []kernel.UUID{n.ID}, cause))

	pending, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(2, pending[0].Attempts)

	var dto notificationrepo.NotificationDTO
	suite.Require().NoError(suite.database.DB.First(&dto, "id = ?", n.ID.Bytes()).Error)
	suite.Equal("broker unavailable", dto.LastError)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestFetchPendingHonoursLimit() {
	ctx := context.Background()
	for _, c := range []string{"C1", "C2", "C3"} {
		suite.Require().NoError(suite.repo.Enqueue(ctx,
			notification.New(notification.BidNoContest, kernel.MustNewActorID(c), nil, now)))
	}

	pending, err := suite.repo.FetchPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Len(pending, 2)
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
