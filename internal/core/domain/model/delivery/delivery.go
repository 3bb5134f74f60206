package delivery

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through a constructor.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrExceptionAlreadyAttached is returned when a second exception is
	// attached to a delivery that already carries one.
	ErrExceptionAlreadyAttached = errors.New("delivery already has an exception")
)

// Delivery is a read-side view of one shipment in the external order system,
// keyed by order id, together with the delivery exception attached to it (if
// any). The order itself lives elsewhere; this aggregate only carries the
// fields the exception workflow needs.
//
// Delivery follows these invariants:
//   - Must reference a positive order id
//   - Carries at most one active exception
//   - The phase reference always points at the current row in the order's
//     phase history
type Delivery struct {
	orderID        int64
	courierID      *courier.ID
	trackingNumber string

	// orderPhaseID is the current row in the external phase history;
	// phaseID is the workflow phase that row is in.
	orderPhaseID int64
	phaseID      int

	sendInStockAt *time.Time
	inStockAt     *time.Time

	exception *exception.DeliveryException

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery view for the given order.
//
// Parameters:
//   - orderID: order id in the external system (must be positive)
//   - courierID: assigned courier service, nil when not yet assigned
//   - trackingNumber: courier tracking number, may be empty
//   - orderPhaseID, phaseID: current phase-history reference
//   - sendInStockAt: when the parcel was dispatched from stock, nil if not yet
//   - inStockAt: when the parcel arrived in stock, nil if unknown
func NewDelivery(
	orderID int64,
	courierID *courier.ID,
	trackingNumber string,
	orderPhaseID int64,
	phaseID int,
	sendInStockAt *time.Time,
	inStockAt *time.Time,
) (*Delivery, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("orderID")
	}
	if courierID != nil && !courierID.IsKnown() {
		return nil, errs.NewValueIsInvalidError("courierID")
	}

	return &Delivery{
		orderID:        orderID,
		courierID:      courierID,
		trackingNumber: trackingNumber,
		orderPhaseID:   orderPhaseID,
		phaseID:        phaseID,
		sendInStockAt:  sendInStockAt,
		inStockAt:      inStockAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Delivery instance was created through NewDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// AttachException attaches an exception to the delivery. A delivery carries
// at most one active exception.
func (d *Delivery) AttachException(exc *exception.DeliveryException) error {
	if err := exc.Validate(); err != nil {
		return err
	}
	if d.exception != nil {
		return ErrExceptionAlreadyAttached
	}

	d.exception = exc
	return nil
}

// HasException reports whether an active exception is attached.
func (d *Delivery) HasException() bool {
	return d.exception != nil
}

// Exception returns the attached exception, nil when the delivery has none.
func (d *Delivery) Exception() *exception.DeliveryException {
	return d.exception
}

// SetPhase updates the current phase reference after a phase transition.
func (d *Delivery) SetPhase(orderPhaseID int64, phaseID int) {
	d.orderPhaseID = orderPhaseID
	d.phaseID = phaseID
}

// OrderID returns the order id in the external system.
func (d *Delivery) OrderID() int64 { return d.orderID }

// CourierID returns the assigned courier service, nil when unassigned.
func (d *Delivery) CourierID() *courier.ID { return d.courierID }

// TrackingNumber returns the courier tracking number.
func (d *Delivery) TrackingNumber() string { return d.trackingNumber }

// OrderPhaseID returns the current row in the external phase history.
func (d *Delivery) OrderPhaseID() int64 { return d.orderPhaseID }

// PhaseID returns the workflow phase the delivery is currently in.
func (d *Delivery) PhaseID() int { return d.phaseID }

// SendInStockAt returns the stock-dispatch timestamp, nil when not dispatched.
func (d *Delivery) SendInStockAt() *time.Time { return d.sendInStockAt }

// InStockAt returns the stock-arrival timestamp, nil when unknown.
func (d *Delivery) InStockAt() *time.Time { return d.inStockAt }
