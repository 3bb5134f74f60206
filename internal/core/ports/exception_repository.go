package ports

import (
	"context"

	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
)

// ExceptionRepository defines the persistence contract for delivery-exception
// aggregates.
type ExceptionRepository interface {
	// Add persists a new exception aggregate to storage.
	// The exception must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *exception.DeliveryException) error

	// Update persists changes to an existing exception aggregate.
	Update(ctx context.Context, aggregate *exception.DeliveryException) error

	// Get retrieves an exception aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*exception.DeliveryException, error)

	// GetByOrderID retrieves the exception attached to the given order.
	// Returns errs.ObjectNotFoundError when the order has none.
	GetByOrderID(ctx context.Context, orderID int64) (*exception.DeliveryException, error)
}
