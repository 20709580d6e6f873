package cmd

import (
	"log/slog"

	httpin "loadboard/internal/adapters/in/http"
	"loadboard/internal/adapters/out/kafka"
	"loadboard/internal/adapters/out/postgres"
	"loadboard/internal/adapters/out/postgres/notificationrepo"
	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/ports"
	"loadboard/internal/jobs"
	"loadboard/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	outbox     *notificationrepo.GormNotificationRepository
	notifier   commands.Notifier
	publisher  *kafka.NotificationPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	clk := clock.System{}
	outbox := notificationrepo.NewGormNotificationRepository(gormDB, clk)
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clk,
		outbox:     outbox,
		notifier:   commands.NewNotifier(outbox, logger),
		publisher:  kafka.NewNotificationPublisher(cfg.KafkaHost, cfg.KafkaNotificationsTopic),
		logger:     logger,
	}
}

func (c *CompositionRoot) bidUoWFactory() commands.BidUoWFactory {
	return FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) awardUoWFactory() commands.AwardUoWFactory {
	return FuncAwardUoWFactory(func() commands.AwardUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) offerUoWFactory() commands.OfferUoWFactory {
	return FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ledgerUoWFactory() commands.LedgerUoWFactory {
	return FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateBidCommandHandler() commands.CreateBidCommandHandler {
	return commands.NewCreateBidCommandHandler(c.bidUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePlaceBidCommandHandler() commands.PlaceBidCommandHandler {
	return commands.NewPlaceBidCommandHandler(c.bidUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAwardBidCommandHandler() commands.AwardBidCommandHandler {
	return commands.NewAwardBidCommandHandler(c.awardUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateMarkNoContestCommandHandler() commands.MarkNoContestCommandHandler {
	return commands.NewMarkNoContestCommandHandler(c.awardUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRemoveAwardCommandHandler() commands.RemoveAwardCommandHandler {
	return commands.NewRemoveAwardCommandHandler(c.awardUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCompleteBidCommandHandler() commands.CompleteBidCommandHandler {
	return commands.NewCompleteBidCommandHandler(c.awardUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateAppendLifecycleEventCommandHandler() commands.AppendLifecycleEventCommandHandler {
	return commands.NewAppendLifecycleEventCommandHandler(c.ledgerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSubmitOfferCommandHandler() commands.SubmitOfferCommandHandler {
	return commands.NewSubmitOfferCommandHandler(c.offerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCounterOfferCommandHandler() commands.CounterOfferCommandHandler {
	return commands.NewCounterOfferCommandHandler(c.offerUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.offerUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.offerUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRejectOtherOffersCommandHandler() commands.RejectOtherOffersCommandHandler {
	return commands.NewRejectOtherOffersCommandHandler(c.offerUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	return commands.NewExpireOffersCommandHandler(c.offerUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateGetBidSummaryQueryHandler() queries.GetBidSummaryQueryHandler {
	return queries.NewGetBidSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBidStatusQueryHandler() queries.GetBidStatusQueryHandler {
	return queries.NewGetBidStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBidsQueryHandler() queries.ListBidsQueryHandler {
	return queries.NewListBidsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLifecycleEventsQueryHandler() queries.ListLifecycleEventsQueryHandler {
	return queries.NewListLifecycleEventsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP surface.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateBid:           c.CreateCreateBidCommandHandler(),
		PlaceBid:            c.CreatePlaceBidCommandHandler(),
		AwardBid:            c.CreateAwardBidCommandHandler(),
		MarkNoContest:       c.CreateMarkNoContestCommandHandler(),
		RemoveAward:         c.CreateRemoveAwardCommandHandler(),
		CompleteBid:         c.CreateCompleteBidCommandHandler(),
		AppendEvent:         c.CreateAppendLifecycleEventCommandHandler(),
		SubmitOffer:         c.CreateSubmitOfferCommandHandler(),
		CounterOffer:        c.CreateCounterOfferCommandHandler(),
		AcceptOffer:         c.CreateAcceptOfferCommandHandler(),
		RejectOffer:         c.CreateRejectOfferCommandHandler(),
		RejectOtherOffers:   c.CreateRejectOtherOffersCommandHandler(),
		GetBidSummary:       c.CreateGetBidSummaryQueryHandler(),
		GetBidStatus:        c.CreateGetBidStatusQueryHandler(),
		ListBids:            c.CreateListBidsQueryHandler(),
		ListLifecycleEvents: c.CreateListLifecycleEventsQueryHandler(),
	}, c.logger)
}

// CreateJobManager wires the notification relay and the offer expiry job.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.outbox,
		c.publisher,
		c.cfg.NotificationRelayBatch,
		c.CreateExpireOffersCommandHandler(),
		c.logger,
	)
}

// Close releases the Kafka writer.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncAwardUoWFactory func() commands.AwardUoW

func (f FuncAwardUoWFactory) Create() commands.AwardUoW {
	return f()
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
