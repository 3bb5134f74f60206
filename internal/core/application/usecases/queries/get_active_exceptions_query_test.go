package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/exception"
)

func TestNewGetActiveExceptionsQuery(t *testing.T) {
	t.Run("should create unfiltered query", func(t *testing.T) {
		query := queries.NewGetActiveExceptionsQuery()

		assert.NoError(t, query.Validate())
		assert.Nil(t, query.Owner())
	})

	t.Run("should create owner-filtered query", func(t *testing.T) {
		query, err := queries.NewGetActiveExceptionsQueryForOwner(exception.OwnerOperator)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		require.NotNil(t, query.Owner())
		assert.Equal(t, exception.OwnerOperator, *query.Owner())
	})

	t.Run("should reject invalid owner", func(t *testing.T) {
		_, err := queries.NewGetActiveExceptionsQueryForOwner(exception.Owner("courier"))

		assert.Error(t, err)
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var query queries.GetActiveExceptionsQuery

		assert.ErrorIs(t, query.Validate(), queries.ErrGetActiveExceptionsQueryIsNotConstructed)
	})
}
