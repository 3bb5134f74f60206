package ports

import (
	"context"

	"backoffice/internal/core/domain/model/courier"
)

// CSMessageRepository defines the contract over the courier-message
// classification dictionary. Each entry pairs a courier service with a
// message text and the type that text classifies as.
type CSMessageRepository interface {
	// GetTexts retrieves the dictionary texts for one courier, optionally
	// narrowed to a single message type. Passing a nil type returns texts of
	// every type.
	GetTexts(ctx context.Context, courierID courier.ID, msgType *courier.MessageType) ([]string, error)

	// Add persists a new dictionary entry. Used to record texts the
	// classifier has never seen so staff can categorize them later.
	Add(ctx context.Context, courierID courier.ID, msgType courier.MessageType, text string) error
}
