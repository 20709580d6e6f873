package http

import (
	"net/http"

	"loadboard/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// SubmitOffer handles POST /api/v1/loads/{loadRef}/offers.
func (s *Server) SubmitOffer(ctx echo.Context) error {
	loadRef, err := pathParam(ctx, "loadRef")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req SubmitOfferRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewSubmitOfferCommand(loadRef, caller.ID, req.AmountCents, req.Note, req.ExpiresAt)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.SubmitOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RejectOtherOffers handles POST /api/v1/loads/{loadRef}/offers/reject-others.
func (s *Server) RejectOtherOffers(ctx echo.Context) error {
	loadRef, err := pathParam(ctx, "loadRef")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req RejectOtherOffersRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewRejectOtherOffersCommand(loadRef, req.ExceptOfferID, caller.ID, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	n, err := s.h.RejectOtherOffers.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: n})
}

// CounterOffer handles POST /api/v1/offers/{offerId}/counter.
func (s *Server) CounterOffer(ctx echo.Context) error {
	offerID, err := pathParam(ctx, "offerId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req CounterOfferRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewCounterOfferCommand(offerID, req.CounterAmountCents, caller.ID, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CounterOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOffer handles POST /api/v1/offers/{offerId}/accept. The response
// carries the new assignment id.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	offerID, err := pathParam(ctx, "offerId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req AcceptOfferRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewAcceptOfferCommand(offerID, caller.ID, req.AcceptedPriceCents, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.h.AcceptOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RejectOffer handles POST /api/v1/offers/{offerId}/reject.
func (s *Server) RejectOffer(ctx echo.Context) error {
	offerID, err := pathParam(ctx, "offerId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var req NotesRequest
	if err = bindBody(ctx, &req); err != nil {
		return badRequest(ctx, err.Error())
	}
	caller, _ := callerFrom(ctx)

	cmd, err := commands.NewRejectOfferCommand(offerID, caller.ID, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RejectOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
