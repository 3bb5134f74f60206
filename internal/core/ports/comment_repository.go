package ports

import (
	"context"

	"backoffice/internal/core/domain/model/exception"
)

// CommentRepository defines the persistence contract for the exception audit
// trail kept in the shared order-comment store. All comments are filed under
// exception.CommentCategoryKey.
type CommentRepository interface {
	// Add appends a new comment to the order's audit trail.
	Add(ctx context.Context, comment *exception.Comment) error

	// GetAllByOrderID retrieves the order's exception comments, oldest first.
	GetAllByOrderID(ctx context.Context, orderID int64) ([]*exception.Comment, error)

	// GetLastByOrderID retrieves the most recent exception comment on the
	// order. Returns errs.ObjectNotFoundError when the order has none.
	GetLastByOrderID(ctx context.Context, orderID int64) (*exception.Comment, error)

	// CountByOrderID returns how many exception comments the order carries.
	CountByOrderID(ctx context.Context, orderID int64) (int, error)
}
