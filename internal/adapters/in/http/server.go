package http

import (
	"context"
	"log/slog"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/kernel"
)

// CommandHandler is a use case that returns only an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler is a use case or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers groups the use cases the HTTP surface exposes.
type Handlers struct {
	// Command handlers
	CreateBid         CommandHandler[commands.CreateBidCommand]
	PlaceBid          ResultHandler[commands.PlaceBidCommand, kernel.UUID]
	AwardBid          ResultHandler[commands.AwardBidCommand, kernel.UUID]
	MarkNoContest     CommandHandler[commands.MarkNoContestCommand]
	RemoveAward       CommandHandler[commands.RemoveAwardCommand]
	CompleteBid       CommandHandler[commands.CompleteBidCommand]
	AppendEvent       ResultHandler[commands.AppendLifecycleEventCommand, kernel.UUID]
	SubmitOffer       ResultHandler[commands.SubmitOfferCommand, kernel.UUID]
	CounterOffer      CommandHandler[commands.CounterOfferCommand]
	AcceptOffer       ResultHandler[commands.AcceptOfferCommand, kernel.UUID]
	RejectOffer       CommandHandler[commands.RejectOfferCommand]
	RejectOtherOffers ResultHandler[commands.RejectOtherOffersCommand, int]

	// Query handlers
	GetBidSummary       ResultHandler[queries.GetBidSummaryQuery, queries.BidSummary]
	GetBidStatus        ResultHandler[queries.GetBidStatusQuery, queries.GetBidStatusQueryResponse]
	ListBids            ResultHandler[queries.ListBidsQuery, queries.ListBidsQueryResponse]
	ListLifecycleEvents ResultHandler[queries.ListLifecycleEventsQuery, []queries.LifecycleEventView]
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http_server"),
	}
}
