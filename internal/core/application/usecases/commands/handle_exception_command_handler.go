package commands

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// HandleExceptionCommandHandler executes exception state transitions. Loading
// or creating the aggregate, appending the comment, moving the phase row and
// persisting all happen inside one transaction; a partially applied
// owner-phase change can never be observed.
//
// Example:
//
//	handler := NewHandleExceptionCommandHandler(uowFactory)
//	cmd, _ := NewHandleExceptionCommand(orderID, userID)
//	err := handler.Handle(ctx, cmd.WithMessage("IN CONSEGNA"))
type HandleExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
}

// NewHandleExceptionCommandHandler creates a handler for exception state
// transitions. Requires a unit of work factory for transactional updates.
func NewHandleExceptionCommandHandler(uowFactory ExceptionUoWFactory) HandleExceptionCommandHandler {
	return HandleExceptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command inside its own transaction.
func (h HandleExceptionCommandHandler) Handle(ctx context.Context, command HandleExceptionCommand) error {
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

	if err := h.HandleInTx(ctx, uow, command); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleInTx processes the command inside a transaction owned by the caller.
// Monitoring rules use this to run several actions atomically; the caller is
// responsible for Begin/Commit/Rollback.
func (h HandleExceptionCommandHandler) HandleInTx(ctx context.Context, uow ExceptionUoW, command HandleExceptionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	del, err := uow.DeliveryRepository().GetByOrderID(ctx, command.OrderID())
	if err != nil {
		return err
	}

	excRepo := uow.ExceptionRepository()

	now := time.Now()
	exc, created, err := h.loadOrCreate(ctx, uow, del, command.UserID(), now)
	if err != nil {
		return err
	}

	if command.Message() != nil {
		if err = h.recordMessage(ctx, uow, exc, command, now); err != nil {
			return err
		}
	}

	if command.Owner() != nil && !command.FreezesOwner() {
		if err = h.transitionOwner(ctx, uow, exc, *command.Owner(), command.UserID(), now); err != nil {
			return err
		}
	}

	if command.ResetTransfer() {
		exc.SetTransfer(false, now)
	}

	if created {
		return excRepo.Add(ctx, exc)
	}
	return excRepo.Update(ctx, exc)
}

// loadOrCreate fetches the delivery's exception or creates one pre-populated
// with the delivery snapshot, defaulting the owner to Logist.
func (h HandleExceptionCommandHandler) loadOrCreate(
	ctx context.Context,
	uow ExceptionUoW,
	del *delivery.Delivery,
	userID int64,
	now time.Time,
) (*exception.DeliveryException, bool, error) {
	exc, err := uow.ExceptionRepository().GetByOrderID(ctx, del.OrderID())
	if err == nil {
		return exc, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	var courierID courier.ID
	if del.CourierID() != nil {
		courierID = *del.CourierID()
	}

	exc, err = exception.NewDeliveryException(
		kernel.NewUUID(),
		del.OrderID(),
		courierID,
		del.TrackingNumber(),
		del.OrderPhaseID(),
		del.PhaseID(),
		del.SendInStockAt(),
		userID,
		now,
	)
	if err != nil {
		return nil, false, err
	}

	return exc, true, nil
}

// recordMessage appends the message to the order's comment trail, updates the
// exception's last-message field and stamps the delivered date when one was
// configured. Every message produces its own comment even when textually
// identical to an earlier one; dedup of re-delivered identical messages
// happens upstream at the dispatch layer.
func (h HandleExceptionCommandHandler) recordMessage(
	ctx context.Context,
	uow ExceptionUoW,
	exc *exception.DeliveryException,
	command HandleExceptionCommand,
	now time.Time,
) error {
	comment, err := exception.NewComment(
		kernel.NewUUID(),
		command.OrderID(),
		command.UserID(),
		*command.Message(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.CommentRepository().Add(ctx, comment); err != nil {
		return err
	}

	exc.SetMessage(*command.Message(), now)

	if command.DeliveredDate() != nil {
		exc.SetDeliveredAt(*command.DeliveredDate())
	}

	return nil
}

// transitionOwner moves the exception to the new owning role. The mirrored
// phase row is closed and reopened by the external workflow; when the order
// is already in the target phase the transition is a no-op.
func (h HandleExceptionCommandHandler) transitionOwner(
	ctx context.Context,
	uow ExceptionUoW,
	exc *exception.DeliveryException,
	owner exception.Owner,
	userID int64,
	now time.Time,
) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	if exc.Owner() == owner && exc.PhaseID() == owner.PhaseID() {
		return nil
	}

	transition, err := uow.PhaseTransitioner().Transition(ctx, exc.OrderID(), owner.PhaseID(), userID)
	if err != nil {
		return err
	}

	return exc.SetOwnerAndPhase(owner, transition.OrderPhaseID, transition.PhaseID, now)
}
