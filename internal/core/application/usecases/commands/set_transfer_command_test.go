package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/pkg/errs"
)

func TestNewSetTransferCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewSetTransferCommand(1001, true, 7)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, int64(1001), cmd.OrderID())
		assert.True(t, cmd.IsTransfer())
		assert.Equal(t, int64(7), cmd.UserID())
	})

	t.Run("should require order id", func(t *testing.T) {
		_, err := commands.NewSetTransferCommand(0, true, 7)

		assert.Error(t, err)
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var cmd commands.SetTransferCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrSetTransferCommandIsNotConstructed)
	})
}

func TestSetTransferCommandHandler_Handle_SetsFlag(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSetTransferCommand(1001, true, 7)

	existing := newTestException(1001)

	excRepo := new(MockExceptionRepository)
	uow := new(MockExceptionUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ExceptionRepository").Return(excRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	excRepo.On("GetByOrderID", ctx, int64(1001)).Return(existing, nil).Once()
	excRepo.On("Update", ctx, existing).Return(nil).Once()

	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetTransferCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, existing.IsTransfer())
	excRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetTransferCommandHandler_Handle_MissingExceptionFails(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSetTransferCommand(1001, true, 7)

	excRepo := new(MockExceptionRepository)
	uow := new(MockExceptionUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ExceptionRepository").Return(excRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	excRepo.On("GetByOrderID", ctx, int64(1001)).
		Return(nil, errs.NewObjectNotFoundError("orderID", 1001)).Once()

	factory := new(MockExceptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetTransferCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}
