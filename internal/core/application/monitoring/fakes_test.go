package monitoring_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// memStore is shared in-memory state behind the fake unit of work.
type memStore struct {
	deliveries map[int64]*delivery.Delivery
	exceptions map[int64]*exception.DeliveryException
	comments   []*exception.Comment

	nextOrderPhaseID int64

	begun      int
	committed  int
	rolledBack int
}

func newMemStore() *memStore {
	return &memStore{
		deliveries:       make(map[int64]*delivery.Delivery),
		exceptions:       make(map[int64]*exception.DeliveryException),
		nextOrderPhaseID: 1000,
	}
}

type memDeliveryRepo struct{ store *memStore }

func (r *memDeliveryRepo) GetByOrderID(_ context.Context, orderID int64) (*delivery.Delivery, error) {
	del, ok := r.store.deliveries[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	return del, nil
}

func (r *memDeliveryRepo) GetByTrackingNumber(_ context.Context, trackingNumber string) (*delivery.Delivery, error) {
	for _, del := range r.store.deliveries {
		if del.TrackingNumber() == trackingNumber {
			return del, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("trackingNumber", trackingNumber)
}

func (r *memDeliveryRepo) GetActiveWithExceptions(_ context.Context) ([]*delivery.Delivery, error) {
	var result []*delivery.Delivery
	for _, del := range r.store.deliveries {
		if del.HasException() {
			result = append(result, del)
		}
	}
	return result, nil
}

func (r *memDeliveryRepo) GetInStockWithoutExceptions(_ context.Context) ([]*delivery.Delivery, error) {
	var result []*delivery.Delivery
	for _, del := range r.store.deliveries {
		if !del.HasException() && del.InStockAt() != nil {
			result = append(result, del)
		}
	}
	return result, nil
}

func (r *memDeliveryRepo) QueryPendingExceptionTexts(_ context.Context, _ time.Time, _ time.Time) ([]ports.PendingExceptionMessage, error) {
	return nil, nil
}

type memExceptionRepo struct{ store *memStore }

func (r *memExceptionRepo) Add(_ context.Context, aggregate *exception.DeliveryException) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.store.exceptions[aggregate.OrderID()] = aggregate
	return nil
}

func (r *memExceptionRepo) Update(_ context.Context, aggregate *exception.DeliveryException) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.store.exceptions[aggregate.OrderID()] = aggregate
	return nil
}

func (r *memExceptionRepo) Get(_ context.Context, id kernel.UUID) (*exception.DeliveryException, error) {
	for _, exc := range r.store.exceptions {
		if exc.ID().IsEqual(id) {
			return exc, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("id", id.String())
}

func (r *memExceptionRepo) GetByOrderID(_ context.Context, orderID int64) (*exception.DeliveryException, error) {
	exc, ok := r.store.exceptions[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	return exc, nil
}

type memCommentRepo struct{ store *memStore }

func (r *memCommentRepo) Add(_ context.Context, comment *exception.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	r.store.comments = append(r.store.comments, comment)
	return nil
}

func (r *memCommentRepo) GetAllByOrderID(_ context.Context, orderID int64) ([]*exception.Comment, error) {
	var result []*exception.Comment
	for _, comment := range r.store.comments {
		if comment.OrderID() == orderID {
			result = append(result, comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result, nil
}

func (r *memCommentRepo) GetLastByOrderID(ctx context.Context, orderID int64) (*exception.Comment, error) {
	all, err := r.GetAllByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	return all[len(all)-1], nil
}

func (r *memCommentRepo) CountByOrderID(ctx context.Context, orderID int64) (int, error) {
	all, err := r.GetAllByOrderID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

type memPhaseTransitioner struct{ store *memStore }

func (t *memPhaseTransitioner) Transition(_ context.Context, _ int64, phaseID int, _ int64) (ports.PhaseTransition, error) {
	t.store.nextOrderPhaseID++
	return ports.PhaseTransition{
		Changed:      true,
		OrderPhaseID: t.store.nextOrderPhaseID,
		PhaseID:      phaseID,
	}, nil
}

type memUoW struct{ store *memStore }

func (u *memUoW) Begin(_ context.Context) error {
	u.store.begun++
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	u.store.committed++
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	u.store.rolledBack++
	return nil
}

func (u *memUoW) DeliveryRepository() ports.DeliveryRepository {
	return &memDeliveryRepo{store: u.store}
}

func (u *memUoW) ExceptionRepository() ports.ExceptionRepository {
	return &memExceptionRepo{store: u.store}
}

func (u *memUoW) CommentRepository() ports.CommentRepository {
	return &memCommentRepo{store: u.store}
}

func (u *memUoW) PhaseTransitioner() ports.PhaseTransitioner {
	return &memPhaseTransitioner{store: u.store}
}

type memUoWFactory struct{ store *memStore }

func (f *memUoWFactory) Create() commands.ExceptionUoW {
	return &memUoW{store: f.store}
}

func attachException(t *testing.T, del *delivery.Delivery) *exception.DeliveryException {
	t.Helper()

	var courierID courier.ID
	if del.CourierID() != nil {
		courierID = *del.CourierID()
	}

	exc, err := exception.NewDeliveryException(
		kernel.NewUUID(), del.OrderID(), courierID, del.TrackingNumber(),
		del.OrderPhaseID(), del.PhaseID(), del.SendInStockAt(), 7,
		time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, del.AttachException(exc))
	return exc
}

// fakeDictionary serves set-delivery-date phrases for the reschedule rule.
type fakeDictionary struct {
	texts map[courier.MessageType][]string
}

func (d *fakeDictionary) GetTexts(_ context.Context, _ courier.ID, msgType *courier.MessageType) ([]string, error) {
	if msgType == nil {
		var all []string
		for _, texts := range d.texts {
			all = append(all, texts...)
		}
		return all, nil
	}
	return d.texts[*msgType], nil
}

func (d *fakeDictionary) Add(_ context.Context, _ courier.ID, msgType courier.MessageType, text string) error {
	d.texts[msgType] = append(d.texts[msgType], text)
	return nil
}
