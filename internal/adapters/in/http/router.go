package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	// RequestTimeout bounds every /api/v1 request, including its store work.
	RequestTimeout time.Duration
	// Health is pinged by GET /health. Nil reports healthy unconditionally.
	Health Pinger
}

// NewRouter builds the echo instance with every route, the bearer token check
// and request validation against the embedded API description.
func NewRouter(server *Server, auth *Authenticator, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validate, err := openAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newBodyValidator()
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", healthHandler(cfg.Health))
	e.GET("/openapi.yaml", func(ctx echo.Context) error {
		return ctx.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", auth.Middleware())
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.ContextTimeout(cfg.RequestTimeout))
	}

	// Role checks run before request validation so that a caller without
	// access learns nothing about the expected payload.
	admin := []echo.MiddlewareFunc{RequireRole(RoleAdmin), validate}
	carrier := []echo.MiddlewareFunc{RequireRole(RoleCarrier), validate}
	anyone := []echo.MiddlewareFunc{RequireRole(RoleAdmin, RoleCarrier), validate}

	api.POST("/bids", server.CreateBid, admin...)
	api.GET("/bids", server.ListBids, anyone...)
	api.GET("/bids/:bidNumber", server.GetBidSummary, anyone...)
	api.GET("/bids/:bidNumber/status", server.GetBidStatus, anyone...)
	api.POST("/bids/:bidNumber/carrier-bids", server.PlaceBid, carrier...)
	api.POST("/bids/:bidNumber/award", server.AwardBid, admin...)
	api.DELETE("/bids/:bidNumber/award", server.RemoveAward, admin...)
	api.POST("/bids/:bidNumber/no-contest", server.MarkNoContest, admin...)
	api.POST("/bids/:bidNumber/complete", server.CompleteBid, admin...)
	api.GET("/bids/:bidNumber/events", server.ListLifecycleEvents, anyone...)
	api.POST("/bids/:bidNumber/events", server.AppendLifecycleEvent, anyone...)

	api.POST("/loads/:loadRef/offers", server.SubmitOffer, carrier...)
	api.POST("/loads/:loadRef/offers/reject-others", server.RejectOtherOffers, admin...)
	api.POST("/offers/:offerId/counter", server.CounterOffer, admin...)
	api.POST("/offers/:offerId/accept", server.AcceptOffer, admin...)
	api.POST("/offers/:offerId/reject", server.RejectOffer, admin...)

	return e, nil
}

func healthHandler(p Pinger) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if p != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
			defer cancel()
			if err := p.PingContext(pingCtx); err != nil {
				return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return ctx.String(http.StatusOK, "Healthy")
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	log := logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			log.LogAttrs(ctx.Request().Context(), level, "Request handled", attrs...)
			return nil
		},
	})
}
