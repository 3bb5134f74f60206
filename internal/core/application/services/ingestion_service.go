package services

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// IngestionService is the message-processing entry point and its designated
// error boundary: every failure is logged with order context and never
// crashes a batch pass.
type IngestionService struct {
	deliveries ports.DeliveryRepository
	dispatch   *DispatchService
	logger     *slog.Logger
}

// NewIngestionService creates the ingestion boundary over the dispatch
// service.
func NewIngestionService(deliveries ports.DeliveryRepository, dispatch *DispatchService, logger *slog.Logger) (*IngestionService, error) {
	if deliveries == nil {
		return nil, errs.NewValueIsRequiredError("deliveries")
	}
	if dispatch == nil {
		return nil, errs.NewValueIsRequiredError("dispatch")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &IngestionService{
		deliveries: deliveries,
		dispatch:   dispatch,
		logger:     logger.With("component", "ingestion_service"),
	}, nil
}

// Ingest feeds one courier message through the dispatch service. Failures are
// logged with order context and returned so synchronous callers can surface
// them; batch callers continue with the next delivery.
func (s *IngestionService) Ingest(ctx context.Context, del *delivery.Delivery, message string, userID int64) error {
	err := s.dispatch.ProcessException(ctx, del, message, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Exception processing failed",
			"order_id", del.OrderID(), "error", err)
	}
	return err
}

// RunAutoCreateForPeriod sweeps orders dispatched inside [from, to) that
// carry unprocessed courier status text and feeds each through ingestion.
// A delivery's failure never aborts the batch.
func (s *IngestionService) RunAutoCreateForPeriod(ctx context.Context, from time.Time, to time.Time, userID int64) error {
	pending, err := s.deliveries.QueryPendingExceptionTexts(ctx, from, to)
	if err != nil {
		return err
	}

	for _, p := range pending {
		del, err := s.deliveries.GetByOrderID(ctx, p.OrderID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Delivery lookup failed",
				"order_id", p.OrderID, "error", err)
			continue
		}

		_ = s.Ingest(ctx, del, p.Message, userID)
	}

	return nil
}
