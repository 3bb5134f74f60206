// Package http exposes the back-office HTTP API for the delivery-exception
// workflow. Endpoints mirror the background sweeps so operators can trigger
// processing manually and inspect their work queues.
package http

import (
	"errors"
	"net/http"
	"time"

	"backoffice/internal/core/application/monitoring"
	"backoffice/internal/core/application/services"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ingestPeriodDays bounds the manual auto-create sweep window, matching the
// scheduled sweep.
const ingestPeriodDays = 30

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	ingestion         *services.IngestionService
	monitoringService *monitoring.MonitoringService
	deliveries        ports.DeliveryRepository

	setTransferHandler      commands.SetTransferCommandHandler
	activeExceptionsHandler queries.GetActiveExceptionsQueryHandler

	// systemUserID is stamped on changes when a request names no acting user.
	systemUserID int64
}

// NewServer creates a new HTTP server with the required services and handlers.
func NewServer(
	ingestion *services.IngestionService,
	monitoringService *monitoring.MonitoringService,
	deliveries ports.DeliveryRepository,
	setTransferHandler commands.SetTransferCommandHandler,
	activeExceptionsHandler queries.GetActiveExceptionsQueryHandler,
	systemUserID int64,
) *Server {
	return &Server{
		ingestion:               ingestion,
		monitoringService:       monitoringService,
		deliveries:              deliveries,
		setTransferHandler:      setTransferHandler,
		activeExceptionsHandler: activeExceptionsHandler,
		systemUserID:            systemUserID,
	}
}

// RegisterRoutes wires the API endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/exceptions", s.GetActiveExceptions)
	api.POST("/exceptions/ingest", s.IngestMessage)
	api.POST("/exceptions/auto-create", s.RunAutoCreate)
	api.POST("/exceptions/monitoring", s.RunMonitoring)
	api.POST("/exceptions/transfer", s.SetTransfer)
}

// ErrorResponse is the JSON body returned on failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ExceptionResponse is one open case in an operator's work queue.
type ExceptionResponse struct {
	OrderID        int64     `json:"order_id"`
	CourierID      int       `json:"courier_id"`
	TrackingNumber string    `json:"tracking_number"`
	Message        string    `json:"message"`
	Owner          string    `json:"owner"`
	IsTransfer     bool      `json:"is_transfer"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetActiveExceptions handles GET /api/v1/exceptions - lists open cases,
// optionally filtered by owning role via the owner query parameter.
func (s *Server) GetActiveExceptions(ctx echo.Context) error {
	query := queries.NewGetActiveExceptionsQuery()
	if rawOwner := ctx.QueryParam("owner"); rawOwner != "" {
		owner, err := exception.OwnerFromString(rawOwner)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid owner filter: " + rawOwner,
			})
		}

		query, err = queries.NewGetActiveExceptionsQueryForOwner(owner)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid owner filter: " + rawOwner,
			})
		}
	}

	cases, err := s.activeExceptionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve exceptions",
		})
	}

	response := make([]ExceptionResponse, len(cases))
	for i, c := range cases {
		response[i] = ExceptionResponse{
			OrderID:        c.OrderID,
			CourierID:      c.CourierID,
			TrackingNumber: c.TrackingNumber,
			Message:        c.Message,
			Owner:          c.Owner.String(),
			IsTransfer:     c.IsTransfer,
			UpdatedAt:      c.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// IngestMessageRequest feeds one courier status text through exception
// processing on behalf of UserID, or the system user when UserID is zero.
type IngestMessageRequest struct {
	OrderID int64  `json:"order_id"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// IngestMessage handles POST /api/v1/exceptions/ingest.
func (s *Server) IngestMessage(ctx echo.Context) error {
	var req IngestMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	requestCtx := ctx.Request().Context()
	del, err := s.deliveries.GetByOrderID(requestCtx, req.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load delivery",
		})
	}

	if err := s.ingestion.Ingest(requestCtx, del, req.Message, s.actingUser(req.UserID)); err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process message: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RunAutoCreate handles POST /api/v1/exceptions/auto-create - sweeps recently
// dispatched orders for unprocessed courier status texts.
func (s *Server) RunAutoCreate(ctx echo.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -ingestPeriodDays)

	err := s.ingestion.RunAutoCreateForPeriod(ctx.Request().Context(), from, to, s.systemUserID)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Auto-create sweep failed",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RunMonitoringRequest triggers the monitoring rules for one order.
type RunMonitoringRequest struct {
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

// RunMonitoring handles POST /api/v1/exceptions/monitoring.
func (s *Server) RunMonitoring(ctx echo.Context) error {
	var req RunMonitoringRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	requestCtx := ctx.Request().Context()
	del, err := s.deliveries.GetByOrderID(requestCtx, req.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load delivery",
		})
	}

	if err := s.monitoringService.RunMonitoringForDelivery(requestCtx, del, s.actingUser(req.UserID)); err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Monitoring failed: " + err.Error(),
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetTransferRequest flips the transfer flag on an order's exception.
type SetTransferRequest struct {
	OrderID    int64 `json:"order_id"`
	IsTransfer bool  `json:"is_transfer"`
	UserID     int64 `json:"user_id"`
}

// SetTransfer handles POST /api/v1/exceptions/transfer.
func (s *Server) SetTransfer(ctx echo.Context) error {
	var req SetTransferRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSetTransferCommand(req.OrderID, req.IsTransfer, s.actingUser(req.UserID))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid transfer data: " + err.Error(),
		})
	}

	if err := s.setTransferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order has no exception",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update transfer flag",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actingUser resolves the user to attribute changes to.
func (s *Server) actingUser(requested int64) int64 {
	if requested > 0 {
		return requested
	}
	return s.systemUserID
}
