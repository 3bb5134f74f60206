package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/commentrepo"
	"backoffice/internal/adapters/out/postgres/csmessagerepo"
	"backoffice/internal/adapters/out/postgres/deliveryrepo"
	"backoffice/internal/adapters/out/postgres/exceptionrepo"
	"backoffice/internal/adapters/out/postgres/phaserepo"
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresIntegrationTestSuite exercises the GORM-based Unit of Work and its
// repositories against a real PostgreSQL database.
type PostgresIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *PostgresIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&exceptionrepo.ExceptionDTO{},
		&commentrepo.CommentDTO{},
		&deliveryrepo.DeliveryDTO{},
		&phaserepo.OrderPhaseDTO{},
		&csmessagerepo.CSMessageDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *PostgresIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE delivery_exceptions, order_comments, deliveries, order_phases, cs_messages",
	).Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *PostgresIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *PostgresIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.DeliveryRepository(), "First instance should provide delivery repository")
	suite.NotNil(uow1.ExceptionRepository(), "First instance should provide exception repository")
	suite.NotNil(uow2.CommentRepository(), "Second instance should provide comment repository")
	suite.NotNil(uow2.PhaseTransitioner(), "Second instance should provide phase transitioner")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *PostgresIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *PostgresIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_ExceptionLifecycle verifies that an exception and its audit
// comment persist atomically and that owner transitions move phase rows in
// the same transaction.
func (suite *PostgresIntegrationTestSuite) TestUnitOfWork_ExceptionLifecycle() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Open a phase row the exception snapshot can reference
	transition, err := uow.PhaseTransitioner().Transition(ctx, 1001, exception.PhaseLogist, 1)
	suite.Require().NoError(err)
	suite.True(transition.Changed)

	exc := suite.createTestException(1001, transition.OrderPhaseID, now)
	exc.SetMessage("giacenza", now)

	err = uow.ExceptionRepository().Add(ctx, exc)
	suite.Require().NoError(err)

	comment, err := exception.NewComment(kernel.NewUUID(), 1001, 1, "giacenza", now)
	suite.Require().NoError(err)
	err = uow.CommentRepository().Add(ctx, comment)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Escalate to operator in a second transaction
	uow = suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	stored, err := uow.ExceptionRepository().GetByOrderID(ctx, 1001)
	suite.Require().NoError(err)
	suite.Equal(exception.OwnerLogist, stored.Owner())
	suite.Equal("giacenza", stored.Message())

	transition, err = uow.PhaseTransitioner().Transition(ctx, 1001, exception.PhaseOperator, 1)
	suite.Require().NoError(err)
	suite.True(transition.Changed)

	err = stored.SetOwnerAndPhase(exception.OwnerOperator, transition.OrderPhaseID, transition.PhaseID, now)
	suite.Require().NoError(err)

	err = uow.ExceptionRepository().Update(ctx, stored)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify with a fresh unit of work
	reloaded, err := suite.factory.Create().ExceptionRepository().GetByOrderID(ctx, 1001)
	suite.Require().NoError(err)
	suite.Equal(exception.OwnerOperator, reloaded.Owner())
	suite.Equal(exception.PhaseOperator, reloaded.PhaseID())

	comments, err := suite.factory.Create().CommentRepository().GetAllByOrderID(ctx, 1001)
	suite.Require().NoError(err)
	suite.Len(comments, 1)
	suite.Equal("giacenza", comments[0].Content())
}

// TestUnitOfWork_RollbackDiscardsChanges verifies rollback leaves no trace of
// the aborted exception.
func (suite *PostgresIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	exc := suite.createTestException(2002, 1, now)
	err = uow.ExceptionRepository().Add(ctx, exc)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	_, err = suite.factory.Create().ExceptionRepository().GetByOrderID(ctx, 2002)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestPhaseTransitioner_ReusesOpenRow verifies that transitioning into the
// phase the order is already in does not grow the history.
func (suite *PostgresIntegrationTestSuite) TestPhaseTransitioner_ReusesOpenRow() {
	ctx := context.Background()
	transitioner := suite.factory.Create().PhaseTransitioner()

	first, err := transitioner.Transition(ctx, 3003, exception.PhaseLogist, 1)
	suite.Require().NoError(err)
	suite.True(first.Changed)

	second, err := transitioner.Transition(ctx, 3003, exception.PhaseLogist, 1)
	suite.Require().NoError(err)
	suite.False(second.Changed)
	suite.Equal(first.OrderPhaseID, second.OrderPhaseID)

	third, err := transitioner.Transition(ctx, 3003, exception.PhaseOperator, 1)
	suite.Require().NoError(err)
	suite.True(third.Changed)
	suite.NotEqual(first.OrderPhaseID, third.OrderPhaseID)

	var open int64
	err = suite.db.Model(&phaserepo.OrderPhaseDTO{}).
		Where("order_id = ? AND closed_at IS NULL", int64(3003)).
		Count(&open).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), open, "Exactly one phase row should stay open")
}

// TestDeliveryRepository_HydratesException verifies delivery rows load with
// their active exception attached.
func (suite *PostgresIntegrationTestSuite) TestDeliveryRepository_HydratesException() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	suite.insertDelivery(4004, courier.IDBRT, "BRT-4004", nil, nil)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.ExceptionRepository().Add(ctx, suite.createTestException(4004, 1, now))
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	del, err := suite.factory.Create().DeliveryRepository().GetByOrderID(ctx, 4004)
	suite.Require().NoError(err)
	suite.True(del.HasException())
	suite.Equal(int64(4004), del.Exception().OrderID())

	byTracking, err := suite.factory.Create().DeliveryRepository().GetByTrackingNumber(ctx, "BRT-4004")
	suite.Require().NoError(err)
	suite.Equal(int64(4004), byTracking.OrderID())

	withExceptions, err := suite.factory.Create().DeliveryRepository().GetActiveWithExceptions(ctx)
	suite.Require().NoError(err)
	suite.Len(withExceptions, 1)
}

// TestDeliveryRepository_QueryPendingExceptionTexts verifies the batch sweep
// query honors the dispatch window and skips texts already recorded.
func (suite *PostgresIntegrationTestSuite) TestDeliveryRepository_QueryPendingExceptionTexts() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	from := now.AddDate(0, 0, -30)

	pendingText := "smistamento anomalo"
	recordedText := "giacenza"
	inside := now.AddDate(0, 0, -5)
	outside := now.AddDate(0, 0, -45)

	suite.insertDelivery(5001, courier.IDBRT, "BRT-5001", &pendingText, &inside)
	suite.insertDelivery(5002, courier.IDBRT, "BRT-5002", &pendingText, &outside)
	suite.insertDelivery(5003, courier.IDBRT, "BRT-5003", nil, &inside)
	suite.insertDelivery(5004, courier.IDBRT, "BRT-5004", &recordedText, &inside)

	// Order 5004 already carries an exception with the same message
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	exc := suite.createTestException(5004, 1, now)
	exc.SetMessage(recordedText, now)
	suite.Require().NoError(uow.ExceptionRepository().Add(ctx, exc))
	suite.Require().NoError(uow.Commit(ctx))

	pending, err := suite.factory.Create().DeliveryRepository().QueryPendingExceptionTexts(ctx, from, now)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(int64(5001), pending[0].OrderID)
	suite.Equal(pendingText, pending[0].Message)
}

// TestCSMessageRepository verifies dictionary lookups by courier and type.
func (suite *PostgresIntegrationTestSuite) TestCSMessageRepository() {
	ctx := context.Background()
	repo := csmessagerepo.NewGormCSMessageRepository(suite.db)

	err := repo.Add(ctx, courier.IDBRT, courier.MessageTypeProblem, "giacenza")
	suite.Require().NoError(err)
	err = repo.Add(ctx, courier.IDBRT, courier.MessageTypeNoProblem, "in consegna")
	suite.Require().NoError(err)
	err = repo.Add(ctx, courier.IDSDA, courier.MessageTypeProblem, "rifiuto")
	suite.Require().NoError(err)

	problem := courier.MessageTypeProblem
	texts, err := repo.GetTexts(ctx, courier.IDBRT, &problem)
	suite.Require().NoError(err)
	suite.Equal([]string{"giacenza"}, texts)

	all, err := repo.GetTexts(ctx, courier.IDBRT, nil)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

// createTestException builds a valid exception aggregate for persistence tests.
func (suite *PostgresIntegrationTestSuite) createTestException(
	orderID int64,
	orderPhaseID int64,
	now time.Time,
) *exception.DeliveryException {
	exc, err := exception.NewDeliveryException(
		kernel.NewUUID(),
		orderID,
		courier.IDBRT,
		"BRT-TRACK",
		orderPhaseID,
		exception.PhaseLogist,
		nil,
		1,
		now,
	)
	suite.Require().NoError(err)
	return exc
}

// insertDelivery seeds a delivery row directly; the repository is read-only.
func (suite *PostgresIntegrationTestSuite) insertDelivery(
	orderID int64,
	courierID courier.ID,
	trackingNumber string,
	pendingText *string,
	sendInStockAt *time.Time,
) {
	rawCourierID := int(courierID)
	dto := deliveryrepo.DeliveryDTO{
		OrderID:              orderID,
		CourierID:            &rawCourierID,
		TrackingNumber:       trackingNumber,
		OrderPhaseID:         1,
		PhaseID:              exception.PhaseLogist,
		SendInStockAt:        sendInStockAt,
		PendingExceptionText: pendingText,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

// TestPostgresIntegrationTestSuite runs the integration test suite.
// Requires Docker to be available for testcontainers.
func TestPostgresIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	suite.Run(t, new(PostgresIntegrationTestSuite))
}
