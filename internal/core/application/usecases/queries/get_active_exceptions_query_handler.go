package queries

import (
	"context"

	"gorm.io/gorm"

	"backoffice/internal/core/domain/model/exception"
)

// GetActiveExceptionsQueryHandler reads open exception cases straight from
// the database.
type GetActiveExceptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveExceptionsQueryHandler creates a handler for work-queue reads.
// Requires a GORM database connection for query execution.
func NewGetActiveExceptionsQueryHandler(db *gorm.DB) GetActiveExceptionsQueryHandler {
	return GetActiveExceptionsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by last update, oldest first,
// so the longest-waiting cases surface at the top of the queue.
func (h GetActiveExceptionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveExceptionsQuery,
) ([]GetActiveExceptionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			order_id,
			courier_id,
			tracking_number,
			message,
			owner,
			is_transfer,
			updated_at
		FROM delivery_exceptions
	`
	args := make([]any, 0, 1)
	if query.Owner() != nil {
		sql += ` WHERE owner = ?`
		args = append(args, query.Owner().String())
	}
	sql += ` ORDER BY updated_at`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]GetActiveExceptionsQueryResponse, 0)
	for rows.Next() {
		var resp GetActiveExceptionsQueryResponse
		var rawOwner string

		err = rows.Scan(
			&resp.OrderID,
			&resp.CourierID,
			&resp.TrackingNumber,
			&resp.Message,
			&rawOwner,
			&resp.IsTransfer,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		owner, ownerErr := exception.OwnerFromString(rawOwner)
		if ownerErr != nil {
			return nil, ownerErr
		}
		resp.Owner = owner

		result = append(result, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
