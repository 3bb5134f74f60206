// Package queries contains read-only operations for back-office views.
// Query handlers read the database directly with raw SQL, bypassing the
// aggregate repositories used on the write side.
package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/pkg/guard"
)

var ErrGetActiveExceptionsQueryIsNotConstructed = errors.New(
	"GetActiveExceptionsQuery must be created via NewGetActiveExceptionsQuery constructor",
)

// GetActiveExceptionsQuery retrieves the open delivery exceptions, optionally
// narrowed to one owning role. Feeds the back-office work queues: logists and
// operators each see the cases assigned to their role.
//
// Example:
//
//	query := NewGetActiveExceptionsQueryForOwner(exception.OwnerOperator)
//	handler := NewGetActiveExceptionsQueryHandler(db)
//	cases, err := handler.Handle(ctx, query)
type GetActiveExceptionsQuery struct {
	owner *exception.Owner

	guard guard.ConstructorGuard
}

// NewGetActiveExceptionsQuery creates a query returning exceptions of every
// owner.
func NewGetActiveExceptionsQuery() GetActiveExceptionsQuery {
	return GetActiveExceptionsQuery{guard: guard.NewConstructorGuard()}
}

// NewGetActiveExceptionsQueryForOwner creates a query narrowed to one owning
// role.
func NewGetActiveExceptionsQueryForOwner(owner exception.Owner) (GetActiveExceptionsQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetActiveExceptionsQuery{}, err
	}

	return GetActiveExceptionsQuery{
		owner: &owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetActiveExceptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveExceptionsQueryIsNotConstructed)
}

// Owner returns the owner filter, nil when the query spans all owners.
func (q GetActiveExceptionsQuery) Owner() *exception.Owner {
	return q.owner
}

// GetActiveExceptionsQueryResponse is one open case in a work queue.
type GetActiveExceptionsQueryResponse struct {
	OrderID        int64
	CourierID      int
	TrackingNumber string
	Message        string
	Owner          exception.Owner
	IsTransfer     bool
	UpdatedAt      time.Time
}
