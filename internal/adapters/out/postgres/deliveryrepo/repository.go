package deliveryrepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM. Loaded
// deliveries are hydrated with their active exception through the exception
// repository bound to the same connection.
type GormDeliveryRepository struct {
	db         *gorm.DB
	exceptions ports.ExceptionRepository
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, exceptions ports.ExceptionRepository) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:         db,
		exceptions: exceptions,
	}
}

// GetByOrderID retrieves the delivery view for one order.
func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID int64) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", strconv.FormatInt(orderID, 10))
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

// GetByTrackingNumber retrieves the delivery carrying the given courier
// tracking number.
func (r *GormDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", trackingNumber)
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

// GetActiveWithExceptions retrieves all deliveries that currently carry an
// exception.
func (r *GormDeliveryRepository) GetActiveWithExceptions(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM delivery_exceptions e WHERE e.order_id = deliveries.order_id)").
		Order("order_id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		del, err := r.hydrate(ctx, dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, del)
	}

	return deliveries, nil
}

// GetInStockWithoutExceptions retrieves deliveries that arrived in stock but
// carry no exception yet.
func (r *GormDeliveryRepository) GetInStockWithoutExceptions(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("in_stock_at IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM delivery_exceptions e WHERE e.order_id = deliveries.order_id)").
		Order("order_id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		del, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, del)
	}

	return deliveries, nil
}

// QueryPendingExceptionTexts retrieves orders dispatched inside the [from, to)
// window whose synced courier status has not been recorded on an exception yet.
func (r *GormDeliveryRepository) QueryPendingExceptionTexts(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]ports.PendingExceptionMessage, error) {
	var pending []ports.PendingExceptionMessage
	err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Select("deliveries.order_id AS order_id, deliveries.pending_exception_text AS message").
		Joins("LEFT JOIN delivery_exceptions e ON e.order_id = deliveries.order_id").
		Where("deliveries.pending_exception_text IS NOT NULL AND deliveries.pending_exception_text <> ''").
		Where("deliveries.send_in_stock_at >= ? AND deliveries.send_in_stock_at < ?", from, to).
		Where("e.id IS NULL OR e.message <> deliveries.pending_exception_text").
		Order("deliveries.order_id ASC").
		Scan(&pending).Error
	if err != nil {
		return nil, err
	}

	return pending, nil
}

// hydrate attaches the order's active exception to the delivery when one
// exists.
func (r *GormDeliveryRepository) hydrate(ctx context.Context, dto DeliveryDTO) (*delivery.Delivery, error) {
	del, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	exc, err := r.exceptions.GetByOrderID(ctx, dto.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return del, nil
		}
		return nil, err
	}

	if err := del.AttachException(exc); err != nil {
		return nil, err
	}

	return del, nil
}
