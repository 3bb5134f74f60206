package monitoring

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
)

// ExceptionCommandAction executes one pre-built exception command inside the
// rule's transaction.
type ExceptionCommandAction struct {
	handler commands.HandleExceptionCommandHandler
	command commands.HandleExceptionCommand
}

// NewExceptionCommandAction wraps a command for rule execution.
func NewExceptionCommandAction(handler commands.HandleExceptionCommandHandler, command commands.HandleExceptionCommand) *ExceptionCommandAction {
	return &ExceptionCommandAction{handler: handler, command: command}
}

// Execute runs the command in the caller's transaction.
func (a *ExceptionCommandAction) Execute(ctx context.Context, uow commands.ExceptionUoW) error {
	return a.handler.HandleInTx(ctx, uow, a.command)
}
