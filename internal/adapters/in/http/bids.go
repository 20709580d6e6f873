package http

import (
	"errors"
	"net/http"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/model/auction"

	"github.com/labstack/echo/v4"
)

// bindBody decodes and validates a JSON request body.
func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return errors.New("invalid request body")
	}
	return ctx.Validate(dst)
}

// CreateBid handles POST /api/v1/bids.
func (s *Server) CreateBid(ctx echo.Context) error {
	var req CreateBidRequest
	if err := bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}

	meta, err := auction.NewMetadata(req.Origin, req.Destination, req.Stops, req.DistanceMiles,
		req.PickupAt, req.DeliveryAt, req.Tag)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateBidCommand(req.BidNumber, meta, req.ExpiresAt)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.CreateBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, BidStatusResponse{BidNumber: cmd.BidNumber().String(), Status: auction.Open.String()})
}

// ListBids handles GET /api/v1/bids.
func (s *Server) ListBids(ctx echo.Context) error {
	params, err := bindListBidsParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListBidsQuery(
		valueOr(params.Status, ""),
		valueOr(params.Q, ""),
		valueOr(params.Limit, 0),
		valueOr(params.Offset, 0),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.h.ListBids.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, bidListOf(page))
}

// GetBidSummary handles GET /api/v1/bids/{bidNumber}. Carriers see their own
// price; admins do not have one.
func (s *Server) GetBidSummary(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	callerID := ""
	if caller, ok := callerFrom(ctx); ok && caller.Role == RoleCarrier {
		callerID = caller.ID
	}

	query, err := queries.NewGetBidSummaryQuery(bidNumber, callerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	summary, err := s.h.GetBidSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, bidSummaryOf(summary))
}

// GetBidStatus handles GET /api/v1/bids/{bidNumber}/status.
func (s *Server) GetBidStatus(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetBidStatusQuery(bidNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.h.GetBidStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, BidStatusResponse{
		BidNumber: status.BidNumber,
		Status:    status.Status.String(),
		WinnerID:  status.WinnerID,
	})
}

// PlaceBid handles POST /api/v1/bids/{bidNumber}/carrier-bids. A carrier's
// second bid revises its first.
func (s *Server) PlaceBid(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req PlaceBidRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewPlaceBidCommand(bidNumber, caller.ID, req.AmountCents, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.PlaceBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, IDResponse{ID: id.String()})
}

// AwardBid handles POST /api/v1/bids/{bidNumber}/award.
func (s *Server) AwardBid(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req AwardBidRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewAwardBidCommand(bidNumber, req.WinnerID, req.AmountCents,
		caller.ID, req.AdminNotes, req.MarginCents)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.AwardBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// MarkNoContest handles POST /api/v1/bids/{bidNumber}/no-contest.
func (s *Server) MarkNoContest(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req NotesRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewMarkNoContestCommand(bidNumber, caller.ID, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.MarkNoContest.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveAward handles DELETE /api/v1/bids/{bidNumber}/award.
func (s *Server) RemoveAward(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewRemoveAwardCommand(bidNumber, caller.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RemoveAward.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteBid handles POST /api/v1/bids/{bidNumber}/complete.
func (s *Server) CompleteBid(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewCompleteBidCommand(bidNumber, caller.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CompleteBid.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListLifecycleEvents handles GET /api/v1/bids/{bidNumber}/events.
func (s *Server) ListLifecycleEvents(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewListLifecycleEventsQuery(bidNumber)
	if err != nil {
		return s.fail(ctx, err)
	}

	events, err := s.h.ListLifecycleEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, lifecycleEventsOf(events))
}

// AppendLifecycleEvent handles POST /api/v1/bids/{bidNumber}/events. Carriers
// may only record events on bids they won.
func (s *Server) AppendLifecycleEvent(ctx echo.Context) error {
	bidNumber, err := pathParam(ctx, "bidNumber")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req AppendLifecycleEventRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewAppendLifecycleEventCommand(bidNumber, req.EventType, req.details(),
		caller.ID, caller.Role == RoleCarrier)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.AppendEvent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}
