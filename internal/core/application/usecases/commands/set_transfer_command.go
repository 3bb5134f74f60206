package commands

import (
	"errors"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrSetTransferCommandIsNotConstructed = errors.New(
	"SetTransferCommand must be created via NewSetTransferCommand constructor",
)

// SetTransferCommand flips the courier-specific transfer flag on a delivery's
// exception. Used by back-office staff when a parcel is handed to a partner
// network; the flag is cleared automatically when the courier reports normal
// progress again.
type SetTransferCommand struct {
	orderID    int64
	isTransfer bool
	userID     int64

	guard guard.ConstructorGuard
}

// NewSetTransferCommand creates a command to set the transfer flag on the
// given order's exception.
func NewSetTransferCommand(orderID int64, isTransfer bool, userID int64) (SetTransferCommand, error) {
	if orderID <= 0 {
		return SetTransferCommand{}, errs.NewValueIsRequiredError("orderID")
	}
	if userID <= 0 {
		return SetTransferCommand{}, errs.NewValueIsRequiredError("userID")
	}

	return SetTransferCommand{
		orderID:    orderID,
		isTransfer: isTransfer,
		userID:     userID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetTransferCommandIsNotConstructed if validation fails.
func (c SetTransferCommand) Validate() error {
	return c.guard.Validate(ErrSetTransferCommandIsNotConstructed)
}

// OrderID returns the target delivery's order id.
func (c SetTransferCommand) OrderID() int64 {
	return c.orderID
}

// IsTransfer returns the requested flag value.
func (c SetTransferCommand) IsTransfer() bool {
	return c.isTransfer
}

// UserID returns the acting user.
func (c SetTransferCommand) UserID() int64 {
	return c.userID
}
