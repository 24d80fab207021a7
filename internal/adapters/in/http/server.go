// Package http exposes the pipeline over HTTP with echo.
//
//	POST /api/v1/orders             submit an order             201, 400, 503
//	POST /api/v1/couriers/arrivals  report a courier arrival    202, 400, 404, 503
//	GET  /api/v1/couriers           fleet snapshot
//	GET  /api/v1/deliveries         delivery ledger
//	GET  /api/v1/metrics            counters and average waits
//	GET  /health
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the body of POST /api/v1/orders. PrepTime is in seconds.
type NewOrder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PrepTime float64 `json:"prepTime"`
}

// CourierArrival is the body of POST /api/v1/couriers/arrivals. ETA is the expected
// arrival time in Unix milliseconds.
type CourierArrival struct {
	CourierID int   `json:"courierId"`
	ETA       int64 `json:"eta"`
}

type Courier struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Delivery struct {
	CourierID     int       `json:"courierId"`
	ReservationID int64     `json:"reservationId"`
	FoodWaitMs    int64     `json:"foodWaitMs"`
	CourierWaitMs int64     `json:"courierWaitMs"`
	DeliveredAt   time.Time `json:"deliveredAt"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler   commands.SubmitOrderCommandHandler
	reportArrivalHandler commands.ReportCourierArrivalCommandHandler

	// Query handlers
	getCouriersHandler   queries.GetCouriersQueryHandler
	getDeliveriesHandler queries.GetDeliveriesQueryHandler
	getMetricsHandler    queries.GetMetricsQueryHandler
}

func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	reportArrivalHandler commands.ReportCourierArrivalCommandHandler,
	getCouriersHandler queries.GetCouriersQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getMetricsHandler queries.GetMetricsQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:   submitOrderHandler,
		reportArrivalHandler: reportArrivalHandler,
		getCouriersHandler:   getCouriersHandler,
		getDeliveriesHandler: getDeliveriesHandler,
		getMetricsHandler:    getMetricsHandler,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.SubmitOrder)
	api.POST("/couriers/arrivals", s.ReportCourierArrival)
	api.GET("/couriers", s.GetCouriers)
	api.GET("/deliveries", s.GetDeliveries)
	api.GET("/metrics", s.GetMetrics)
}

func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	prepTime := time.Duration(body.PrepTime * float64(time.Second))
	cmd, err := commands.NewSubmitOrderCommand(body.ID, body.Name, prepTime)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err = s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, commands.ErrOrderRejected) {
			return errorResponse(ctx, http.StatusServiceUnavailable, "Order queue is not accepting orders")
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to submit order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReportCourierArrival handles POST /api/v1/couriers/arrivals.
func (s *Server) ReportCourierArrival(ctx echo.Context) error {
	var body CourierArrival
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if body.ETA <= 0 {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid arrival data: eta is required")
	}

	cmd, err := commands.NewReportCourierArrivalCommand(body.CourierID, time.UnixMilli(body.ETA))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid arrival data: "+err.Error())
	}

	if err = s.reportArrivalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Courier is not on its way: "+err.Error())
		}
		if errors.Is(err, commands.ErrArrivalRejected) {
			return errorResponse(ctx, http.StatusServiceUnavailable, "Event queue is not accepting arrivals")
		}
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to report arrival")
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve couriers")
	}

	response := make([]Courier, len(couriers))
	for i, c := range couriers {
		response[i] = Courier{ID: c.ID, Name: c.Name, Status: c.Status}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeliveries handles GET /api/v1/deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), queries.NewGetDeliveriesQuery())
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}

	response := make([]Delivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = Delivery{
			CourierID:     d.CourierID,
			ReservationID: d.ReservationID,
			FoodWaitMs:    d.FoodWait.Milliseconds(),
			CourierWaitMs: d.CourierWait.Milliseconds(),
			DeliveredAt:   d.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMetrics handles GET /api/v1/metrics.
func (s *Server) GetMetrics(ctx echo.Context) error {
	snapshot, err := s.getMetricsHandler.Handle(ctx.Request().Context(), queries.NewGetMetricsQuery())
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve metrics")
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}
