package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/exception"
)

func TestNewHandleExceptionCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewHandleExceptionCommand(1001, 7)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, int64(1001), cmd.OrderID())
		assert.Equal(t, int64(7), cmd.UserID())
		assert.Nil(t, cmd.Message())
		assert.Nil(t, cmd.Owner())
		assert.Nil(t, cmd.DeliveredDate())
		assert.False(t, cmd.FreezesOwner())
	})

	t.Run("should require order id", func(t *testing.T) {
		_, err := commands.NewHandleExceptionCommand(0, 7)

		assert.Error(t, err)
	})

	t.Run("should require user id", func(t *testing.T) {
		_, err := commands.NewHandleExceptionCommand(1001, 0)

		assert.Error(t, err)
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var cmd commands.HandleExceptionCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrHandleExceptionCommandIsNotConstructed)
	})

	t.Run("with-copies should not mutate the original", func(t *testing.T) {
		cmd, err := commands.NewHandleExceptionCommand(1001, 7)
		require.NoError(t, err)

		configured := cmd.WithMessage("IN CONSEGNA").
			WithOwner(exception.OwnerOperator).
			WithDeliveredDate(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)).
			WithTransferReset()

		assert.Nil(t, cmd.Message())
		assert.Nil(t, cmd.Owner())
		assert.Nil(t, cmd.DeliveredDate())
		assert.False(t, cmd.ResetTransfer())

		require.NotNil(t, configured.Message())
		assert.Equal(t, "IN CONSEGNA", *configured.Message())
		require.NotNil(t, configured.Owner())
		assert.Equal(t, exception.OwnerOperator, *configured.Owner())
		require.NotNil(t, configured.DeliveredDate())
		assert.True(t, configured.ResetTransfer())
	})

	t.Run("frozen variant keeps owner change disabled", func(t *testing.T) {
		cmd, err := commands.NewFrozenOwnerHandleExceptionCommand(1001, 7)
		require.NoError(t, err)

		configured := cmd.WithOwner(exception.OwnerOperator)

		assert.True(t, configured.FreezesOwner())
	})
}
