package services

import (
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/courier"
	domainservices "backoffice/internal/core/domain/services"
	"backoffice/internal/pkg/errs"
)

// HandlerFactory builds per-courier exception handlers, selecting the
// courier's ownership policy and the command variant (normal or frozen-owner)
// to inject.
type HandlerFactory struct {
	classifier *domainservices.MessageClassifier
	runner     ExceptionCommandRunner
}

// NewHandlerFactory creates a factory producing handlers backed by the given
// classifier and command runner.
func NewHandlerFactory(classifier *domainservices.MessageClassifier, runner ExceptionCommandRunner) (*HandlerFactory, error) {
	if classifier == nil {
		return nil, errs.NewValueIsRequiredError("classifier")
	}
	if runner == nil {
		return nil, errs.NewValueIsRequiredError("runner")
	}

	return &HandlerFactory{
		classifier: classifier,
		runner:     runner,
	}, nil
}

// CreateHandler builds the handler for one courier. With freezeOwner set the
// handler issues frozen-owner commands, so ownership never moves no matter
// what the policy decides.
func (f *HandlerFactory) CreateHandler(courierID courier.ID, freezeOwner bool) (*CourierExceptionHandler, error) {
	newCommand := CommandFactory(commands.NewHandleExceptionCommand)
	if freezeOwner {
		newCommand = commands.NewFrozenOwnerHandleExceptionCommand
	}

	return NewCourierExceptionHandler(
		f.classifier,
		PolicyForCourier(courierID),
		f.runner,
		newCommand,
	)
}
