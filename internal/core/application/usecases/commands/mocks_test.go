package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Delivery, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveWithExceptions(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetInStockWithoutExceptions(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) QueryPendingExceptionTexts(ctx context.Context, from time.Time, to time.Time) ([]ports.PendingExceptionMessage, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.PendingExceptionMessage), args.Error(1)
}

type MockExceptionRepository struct{ mock.Mock }

func (m *MockExceptionRepository) Add(ctx context.Context, aggregate *exception.DeliveryException) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockExceptionRepository) Update(ctx context.Context, aggregate *exception.DeliveryException) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockExceptionRepository) Get(ctx context.Context, id kernel.UUID) (*exception.DeliveryException, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exception.DeliveryException), args.Error(1)
}

func (m *MockExceptionRepository) GetByOrderID(ctx context.Context, orderID int64) (*exception.DeliveryException, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exception.DeliveryException), args.Error(1)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Add(ctx context.Context, comment *exception.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetAllByOrderID(ctx context.Context, orderID int64) ([]*exception.Comment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*exception.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetLastByOrderID(ctx context.Context, orderID int64) (*exception.Comment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exception.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByOrderID(ctx context.Context, orderID int64) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

type MockPhaseTransitioner struct{ mock.Mock }

func (m *MockPhaseTransitioner) Transition(ctx context.Context, orderID int64, phaseID int, userID int64) (ports.PhaseTransition, error) {
	args := m.Called(ctx, orderID, phaseID, userID)
	return args.Get(0).(ports.PhaseTransition), args.Error(1)
}

type MockExceptionUoW struct{ mock.Mock }

func (m *MockExceptionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExceptionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExceptionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExceptionUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockExceptionUoW) ExceptionRepository() ports.ExceptionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExceptionRepository)
}

func (m *MockExceptionUoW) CommentRepository() ports.CommentRepository {
	args := m.Called()
	return args.Get(0).(ports.CommentRepository)
}

func (m *MockExceptionUoW) PhaseTransitioner() ports.PhaseTransitioner {
	args := m.Called()
	return args.Get(0).(ports.PhaseTransitioner)
}

type MockExceptionUoWFactory struct{ mock.Mock }

func (m *MockExceptionUoWFactory) Create() commands.ExceptionUoW {
	args := m.Called()
	return args.Get(0).(commands.ExceptionUoW)
}

func newTestDelivery(orderID int64, courierID courier.ID) *delivery.Delivery {
	d, err := delivery.NewDelivery(orderID, &courierID, "TRK-42", 500, 10, nil, nil)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestException(orderID int64) *exception.DeliveryException {
	exc, err := exception.NewDeliveryException(
		kernel.NewUUID(), orderID, courier.IDBRT, "TRK-42", 500, 10, nil, 7,
		time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return exc
}
