package exception

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrDeliveryExceptionIsNotConstructed is returned when a
	// DeliveryException was not created through a constructor.
	ErrDeliveryExceptionIsNotConstructed = errors.New(
		"DeliveryException must be created via NewDeliveryException or RestoreDeliveryException",
	)

	// ErrOwnerPhaseMismatch is returned when an owner change would leave the
	// owner column and the mirrored phase inconsistent.
	ErrOwnerPhaseMismatch = errors.New("owner and phase must stay consistent")
)

// DeliveryException is the aggregate for one flagged delivery. A delivery has
// at most one active exception; the exception carries the last courier
// message, the owning role, and a denormalized reference into the order's
// phase history.
//
// Invariants:
//   - Owner and phase id always match via the fixed owner-phase mapping;
//     both change together through SetOwnerAndPhase only.
//   - The delivered timestamp, once set, is only overwritten by a newer
//     value and never cleared.
type DeliveryException struct {
	id             kernel.UUID
	orderID        int64
	courierID      courier.ID
	trackingNumber string

	message string
	owner   Owner

	// phaseID mirrors owner; orderPhaseID points at the concrete row in the
	// external phase history. createdOrderPhaseID freezes the phase row the
	// exception was born under.
	phaseID             int
	orderPhaseID        int64
	createdOrderPhaseID int64

	deliveredAt   *time.Time
	isTransfer    bool
	sendInStockAt *time.Time

	createdAt     time.Time
	updatedAt     time.Time
	createdUserID int64

	guard guard.ConstructorGuard
}

// NewDeliveryException creates an exception for a delivery that does not have
// one yet. The owner defaults to Logist; the phase reference is snapshotted
// from the delivery's current order phase.
func NewDeliveryException(
	id kernel.UUID,
	orderID int64,
	courierID courier.ID,
	trackingNumber string,
	orderPhaseID int64,
	phaseID int,
	sendInStockAt *time.Time,
	createdUserID int64,
	now time.Time,
) (*DeliveryException, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("orderID")
	}
	if createdUserID <= 0 {
		return nil, errs.NewValueIsRequiredError("createdUserID")
	}

	return &DeliveryException{
		id:                  id,
		orderID:             orderID,
		courierID:           courierID,
		trackingNumber:      trackingNumber,
		owner:               OwnerLogist,
		phaseID:             phaseID,
		orderPhaseID:        orderPhaseID,
		createdOrderPhaseID: orderPhaseID,
		sendInStockAt:       sendInStockAt,
		createdAt:           now,
		updatedAt:           now,
		createdUserID:       createdUserID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryException reconstructs an exception from persistence without
// re-running creation defaults.
func RestoreDeliveryException(
	id kernel.UUID,
	orderID int64,
	courierID courier.ID,
	trackingNumber string,
	message string,
	owner Owner,
	phaseID int,
	orderPhaseID int64,
	createdOrderPhaseID int64,
	deliveredAt *time.Time,
	isTransfer bool,
	sendInStockAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	createdUserID int64,
) (*DeliveryException, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	return &DeliveryException{
		id:                  id,
		orderID:             orderID,
		courierID:           courierID,
		trackingNumber:      trackingNumber,
		message:             message,
		owner:               owner,
		phaseID:             phaseID,
		orderPhaseID:        orderPhaseID,
		createdOrderPhaseID: createdOrderPhaseID,
		deliveredAt:         deliveredAt,
		isTransfer:          isTransfer,
		sendInStockAt:       sendInStockAt,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		createdUserID:       createdUserID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the exception was created through a constructor.
func (e *DeliveryException) Validate() error {
	if e == nil {
		return ErrDeliveryExceptionIsNotConstructed
	}
	return e.guard.Validate(ErrDeliveryExceptionIsNotConstructed)
}

// SetMessage records the latest courier message on the exception.
func (e *DeliveryException) SetMessage(message string, now time.Time) {
	e.message = message
	e.updatedAt = now
}

// HasSameMessage reports whether the stored last message is string-identical
// to the incoming one. Used by the dispatch layer to skip re-delivery of the
// same unprocessed courier text.
func (e *DeliveryException) HasSameMessage(message string) bool {
	return e.message == message
}

// SetOwnerAndPhase transitions the exception to a new owning role together
// with the fresh phase reference returned by the phase workflow. The phase id
// must mirror the owner, otherwise ErrOwnerPhaseMismatch is returned.
func (e *DeliveryException) SetOwnerAndPhase(owner Owner, orderPhaseID int64, phaseID int, now time.Time) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	if owner.PhaseID() != phaseID {
		return fmt.Errorf("%w: owner %s maps to phase %d, got %d",
			ErrOwnerPhaseMismatch, owner, owner.PhaseID(), phaseID)
	}

	e.owner = owner
	e.phaseID = phaseID
	e.orderPhaseID = orderPhaseID
	e.updatedAt = now
	return nil
}

// SetDeliveredAt stamps or overwrites the delivered timestamp. There is
// deliberately no way to clear it.
func (e *DeliveryException) SetDeliveredAt(t time.Time) {
	e.deliveredAt = &t
}

// SetTransfer flips the courier-specific transfer flag.
func (e *DeliveryException) SetTransfer(isTransfer bool, now time.Time) {
	e.isTransfer = isTransfer
	e.updatedAt = now
}

// ID returns the exception's surrogate identifier.
func (e *DeliveryException) ID() kernel.UUID { return e.id }

// OrderID returns the owning delivery's order id.
func (e *DeliveryException) OrderID() int64 { return e.orderID }

// CourierID returns the courier service snapshotted at creation.
func (e *DeliveryException) CourierID() courier.ID { return e.courierID }

// TrackingNumber returns the tracking number snapshotted at creation.
func (e *DeliveryException) TrackingNumber() string { return e.trackingNumber }

// Message returns the last courier message recorded on the exception.
func (e *DeliveryException) Message() string { return e.message }

// Owner returns the role currently responsible for the exception.
func (e *DeliveryException) Owner() Owner { return e.owner }

// PhaseID returns the workflow phase mirroring the owner.
func (e *DeliveryException) PhaseID() int { return e.phaseID }

// OrderPhaseID returns the current row in the external phase history.
func (e *DeliveryException) OrderPhaseID() int64 { return e.orderPhaseID }

// CreatedOrderPhaseID returns the phase-history row the exception was created under.
func (e *DeliveryException) CreatedOrderPhaseID() int64 { return e.createdOrderPhaseID }

// DeliveredAt returns the delivered timestamp, nil when not set.
func (e *DeliveryException) DeliveredAt() *time.Time { return e.deliveredAt }

// IsTransfer returns the courier-specific transfer flag.
func (e *DeliveryException) IsTransfer() bool { return e.isTransfer }

// SendInStockAt returns the stock-dispatch timestamp snapshotted from the delivery.
func (e *DeliveryException) SendInStockAt() *time.Time { return e.sendInStockAt }

// CreatedAt returns the creation timestamp.
func (e *DeliveryException) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns the last-update timestamp.
func (e *DeliveryException) UpdatedAt() time.Time { return e.updatedAt }

// CreatedUserID returns the id of the user the exception was created by.
func (e *DeliveryException) CreatedUserID() int64 { return e.createdUserID }
