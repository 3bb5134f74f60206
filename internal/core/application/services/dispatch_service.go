package services

import (
	"context"
	"log/slog"
	"slices"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/pkg/errs"
)

// handlerPair holds both command variants of one courier's handler. The
// frozen variant is used when the delivery sits in a phase outside the
// exception-owner role set and automation must not move ownership.
type handlerPair struct {
	normal *CourierExceptionHandler
	frozen *CourierExceptionHandler
}

// DispatchService routes incoming courier messages to the registered handler
// for the delivery's courier. The registry is populated at construction for
// the known courier set; registering a new courier means producing a handler
// pair here and nothing else.
//
// Messages for deliveries without a courier, or for couriers without a
// registered handler, are logged and dropped.
type DispatchService struct {
	handlers map[courier.ID]handlerPair
	logger   *slog.Logger
}

// NewDispatchService builds the registry for the given couriers.
func NewDispatchService(factory *HandlerFactory, courierIDs []courier.ID, logger *slog.Logger) (*DispatchService, error) {
	if factory == nil {
		return nil, errs.NewValueIsRequiredError("factory")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	handlers := make(map[courier.ID]handlerPair, len(courierIDs))
	for _, id := range courierIDs {
		normal, err := factory.CreateHandler(id, false)
		if err != nil {
			return nil, err
		}
		frozen, err := factory.CreateHandler(id, true)
		if err != nil {
			return nil, err
		}
		handlers[id] = handlerPair{normal: normal, frozen: frozen}
	}

	return &DispatchService{
		handlers: handlers,
		logger:   logger.With("component", "dispatch_service"),
	}, nil
}

// ProcessException routes one courier message for one delivery.
//
// Re-delivery of the exact text already stored on the delivery's exception is
// skipped, so repeated scans of the same unresolved courier status do not
// pile up duplicate comments. Legitimately repeated statuses with a different
// message in between still produce their own comments; that dedup never
// happens at storage level.
func (s *DispatchService) ProcessException(ctx context.Context, del *delivery.Delivery, message string, userID int64) error {
	if err := del.Validate(); err != nil {
		return err
	}

	if del.HasException() && del.Exception().HasSameMessage(message) {
		return nil
	}

	if del.CourierID() == nil {
		s.logger.InfoContext(ctx, "Delivery has no courier assigned, message dropped",
			"order_id", del.OrderID())
		return nil
	}

	pair, ok := s.handlers[*del.CourierID()]
	if !ok {
		s.logger.InfoContext(ctx, "No handler registered for courier, message dropped",
			"order_id", del.OrderID(), "courier_id", int(*del.CourierID()))
		return nil
	}

	// Freezing only applies once an exception exists: a delivery whose
	// exception is yet to be created still gets its owner phase opened, even
	// from a phase outside the owner pair.
	handler := pair.normal
	if del.HasException() && !slices.Contains(exception.OwnerPhaseIDs(), del.PhaseID()) {
		handler = pair.frozen
	}

	return handler.HandleException(ctx, del, message, userID)
}

// SupportedCourierIDs returns the couriers with a registered handler.
func (s *DispatchService) SupportedCourierIDs() []courier.ID {
	ids := make([]courier.ID, 0, len(s.handlers))
	for id := range s.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
