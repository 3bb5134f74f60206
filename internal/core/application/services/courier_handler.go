package services

import (
	"context"
	"time"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	domainservices "backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"
)

// ExceptionCommandRunner executes exception state transitions.
// commands.HandleExceptionCommandHandler satisfies it.
type ExceptionCommandRunner interface {
	Handle(ctx context.Context, command commands.HandleExceptionCommand) error
}

// CommandFactory builds the exception command a handler issues. The factory
// decides between the normal and the frozen-owner command variant.
type CommandFactory func(orderID int64, userID int64) (commands.HandleExceptionCommand, error)

// CourierExceptionHandler turns one courier's classified messages into
// exception commands according to the courier's ownership policy. Handlers do
// not catch errors; command failures propagate to the ingestion boundary.
type CourierExceptionHandler struct {
	classifier *domainservices.MessageClassifier
	policy     OwnerPolicy
	runner     ExceptionCommandRunner
	newCommand CommandFactory
}

// NewCourierExceptionHandler creates a handler applying the given policy.
func NewCourierExceptionHandler(
	classifier *domainservices.MessageClassifier,
	policy OwnerPolicy,
	runner ExceptionCommandRunner,
	newCommand CommandFactory,
) (*CourierExceptionHandler, error) {
	if classifier == nil {
		return nil, errs.NewValueIsRequiredError("classifier")
	}
	if runner == nil {
		return nil, errs.NewValueIsRequiredError("runner")
	}
	if newCommand == nil {
		return nil, errs.NewValueIsRequiredError("newCommand")
	}

	return &CourierExceptionHandler{
		classifier: classifier,
		policy:     policy,
		runner:     runner,
		newCommand: newCommand,
	}, nil
}

// HandleException classifies the message and, for problem and no-problem
// outcomes, issues one exception command carrying the message, the policy's
// owner decision and an inferred delivered date when applicable. Unknown,
// known-unknown, ignore and date-only outcomes end processing without
// touching the exception.
func (h *CourierExceptionHandler) HandleException(
	ctx context.Context,
	del *delivery.Delivery,
	message string,
	userID int64,
) error {
	if err := del.Validate(); err != nil {
		return err
	}
	if del.CourierID() == nil {
		return errs.NewValueIsRequiredError("courierID")
	}

	classification, err := h.classifier.Classify(ctx, *del.CourierID(), message)
	if err != nil {
		return err
	}

	switch classification.Kind {
	case domainservices.ClassKnownUnknown,
		domainservices.ClassUnknown,
		domainservices.ClassIgnore,
		domainservices.ClassDateOnly:
		return nil
	}

	cmd, err := h.newCommand(del.OrderID(), userID)
	if err != nil {
		return err
	}
	cmd = cmd.WithMessage(message)

	if date, ok := h.inferDeliveredDate(del, message, classification); ok {
		cmd = cmd.WithDeliveredDate(date)
	}

	ownerDecision, resetTransfer := h.decide(del.HasException(), classification.Kind)
	if ownerDecision != nil {
		cmd = cmd.WithOwner(*ownerDecision)
	}
	if resetTransfer {
		cmd = cmd.WithTransferReset()
	}

	return h.runner.Handle(ctx, cmd)
}

// decide picks the policy outcome for the (exception exists, problem kind)
// state pair.
func (h *CourierExceptionHandler) decide(exists bool, kind domainservices.ClassKind) (*exception.Owner, bool) {
	problem := kind == domainservices.ClassProblem

	switch {
	case !exists && problem:
		return h.policy.NewProblem, false
	case !exists:
		return h.policy.NewNoProblem, false
	case problem:
		return h.policy.ExistingProblem, false
	default:
		return h.policy.ExistingNoProblem, h.policy.ResetTransferOnExistingNoProblem
	}
}

// inferDeliveredDate extracts the date token from a set-delivery-date
// message. Once an operator owns the case, automated date inference must not
// override operator judgement, so the date is only taken while the exception
// is absent or owned by someone else. A missing token is not an error.
func (h *CourierExceptionHandler) inferDeliveredDate(
	del *delivery.Delivery,
	message string,
	classification domainservices.Classification,
) (time.Time, bool) {
	if !h.policy.InferDeliveredDate || !classification.SetsDeliveryDate {
		return time.Time{}, false
	}
	if del.HasException() && del.Exception().Owner() == exception.OwnerOperator {
		return time.Time{}, false
	}

	return courier.ExtractLastDeliveryDate(message)
}
