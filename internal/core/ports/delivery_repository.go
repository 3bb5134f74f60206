// Package ports defines repository interfaces for the delivery-exception domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/delivery"
)

// PendingExceptionMessage pairs an order with the raw courier status text
// synced from the courier API but not yet fed through exception processing.
type PendingExceptionMessage struct {
	OrderID int64
	Message string
}

// DeliveryRepository defines the read contract over shipments in the external
// order system. Deliveries are loaded together with their active exception
// when one exists.
type DeliveryRepository interface {
	// GetByOrderID retrieves the delivery view for one order.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	GetByOrderID(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetByTrackingNumber retrieves the delivery carrying the given courier
	// tracking number. Returns errs.ObjectNotFoundError when no shipment
	// matches.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Delivery, error)

	// GetActiveWithExceptions retrieves all deliveries that currently carry
	// an exception. Used by the monitoring sweep.
	GetActiveWithExceptions(ctx context.Context) ([]*delivery.Delivery, error)

	// GetInStockWithoutExceptions retrieves deliveries that arrived in stock
	// but carry no exception yet. Feeds the courier-silence sweep.
	GetInStockWithoutExceptions(ctx context.Context) ([]*delivery.Delivery, error)

	// QueryPendingExceptionTexts retrieves orders dispatched inside the
	// [from, to) window that carry raw courier status text not yet processed
	// into exception state. Feeds the batch auto-create sweep.
	QueryPendingExceptionTexts(ctx context.Context, from time.Time, to time.Time) ([]PendingExceptionMessage, error)
}
