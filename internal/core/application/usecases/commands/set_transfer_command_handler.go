package commands

import (
	"context"
	"time"
)

// SetTransferCommandHandler applies transfer-flag changes to an existing
// exception. The exception must already exist; flipping the flag never
// creates one.
type SetTransferCommandHandler struct {
	uowFactory ExceptionUoWFactory
}

// NewSetTransferCommandHandler creates a handler for transfer-flag changes.
func NewSetTransferCommandHandler(uowFactory ExceptionUoWFactory) SetTransferCommandHandler {
	return SetTransferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Returns errs.ObjectNotFoundError when the
// order has no exception.
func (h SetTransferCommandHandler) Handle(ctx context.Context, command SetTransferCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	excRepo := uow.ExceptionRepository()

	exc, err := excRepo.GetByOrderID(ctx, command.OrderID())
	if err != nil {
		return err
	}

	exc.SetTransfer(command.IsTransfer(), time.Now())

	if err = excRepo.Update(ctx, exc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
