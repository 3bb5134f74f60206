package commands

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrHandleExceptionCommandIsNotConstructed = errors.New(
	"HandleExceptionCommand must be created via NewHandleExceptionCommand constructor",
)

// HandleExceptionCommand applies one state transition to a delivery's
// exception: create-if-absent, record a message as a comment, change the
// owning role, optionally stamp a delivered date. The optional parts are
// configured through With* copies before the command is handled.
//
// Example:
//
//	cmd, err := NewHandleExceptionCommand(orderID, userID)
//	if err != nil {
//	    return err
//	}
//	cmd = cmd.WithMessage("RIFIUTO PER COLLO DANNEGGIATO").
//	    WithOwner(exception.OwnerOperator)
//	err = handler.Handle(ctx, cmd)
type HandleExceptionCommand struct {
	orderID int64
	userID  int64

	message       *string
	owner         *exception.Owner
	deliveredDate *time.Time
	resetTransfer bool

	// freezeOwner turns the owner change into a no-op while keeping the
	// message and comment behavior. Used when the delivery sits in a phase
	// outside the exception-owner role set and automation must not move it.
	freezeOwner bool

	guard guard.ConstructorGuard
}

// NewHandleExceptionCommand creates a command targeting one delivery's
// exception on behalf of the given acting user.
func NewHandleExceptionCommand(orderID int64, userID int64) (HandleExceptionCommand, error) {
	if orderID <= 0 {
		return HandleExceptionCommand{}, errs.NewValueIsRequiredError("orderID")
	}
	if userID <= 0 {
		return HandleExceptionCommand{}, errs.NewValueIsRequiredError("userID")
	}

	return HandleExceptionCommand{
		orderID: orderID,
		userID:  userID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewFrozenOwnerHandleExceptionCommand creates a command whose owner change
// is a guaranteed no-op. Owner configuration is still accepted so callers can
// wire the same policy code against either variant.
func NewFrozenOwnerHandleExceptionCommand(orderID int64, userID int64) (HandleExceptionCommand, error) {
	cmd, err := NewHandleExceptionCommand(orderID, userID)
	if err != nil {
		return HandleExceptionCommand{}, err
	}

	cmd.freezeOwner = true
	return cmd, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrHandleExceptionCommandIsNotConstructed if validation fails.
func (c HandleExceptionCommand) Validate() error {
	return c.guard.Validate(ErrHandleExceptionCommandIsNotConstructed)
}

// WithMessage returns a copy of the command that records the message on the
// exception and appends it to the comment trail.
func (c HandleExceptionCommand) WithMessage(message string) HandleExceptionCommand {
	c.message = &message
	return c
}

// WithOwner returns a copy of the command that transitions the exception to
// the given owning role.
func (c HandleExceptionCommand) WithOwner(owner exception.Owner) HandleExceptionCommand {
	c.owner = &owner
	return c
}

// WithDeliveredDate returns a copy of the command that stamps the delivered
// timestamp. Only honored together with a message.
func (c HandleExceptionCommand) WithDeliveredDate(date time.Time) HandleExceptionCommand {
	c.deliveredDate = &date
	return c
}

// WithTransferReset returns a copy of the command that clears the
// courier-specific transfer flag.
func (c HandleExceptionCommand) WithTransferReset() HandleExceptionCommand {
	c.resetTransfer = true
	return c
}

// OrderID returns the target delivery's order id.
func (c HandleExceptionCommand) OrderID() int64 {
	return c.orderID
}

// UserID returns the acting user.
func (c HandleExceptionCommand) UserID() int64 {
	return c.userID
}

// Message returns the configured message, nil when unset.
func (c HandleExceptionCommand) Message() *string {
	return c.message
}

// Owner returns the configured owner, nil when unset.
func (c HandleExceptionCommand) Owner() *exception.Owner {
	return c.owner
}

// DeliveredDate returns the configured delivered date, nil when unset.
func (c HandleExceptionCommand) DeliveredDate() *time.Time {
	return c.deliveredDate
}

// ResetTransfer reports whether the transfer flag must be cleared.
func (c HandleExceptionCommand) ResetTransfer() bool {
	return c.resetTransfer
}

// FreezesOwner reports whether the owner change is a no-op variant.
func (c HandleExceptionCommand) FreezesOwner() bool {
	return c.freezeOwner
}
