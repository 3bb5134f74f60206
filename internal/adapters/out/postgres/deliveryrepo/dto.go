// Package deliveryrepo provides data transfer objects and mapping functions
// for the delivery read model. Deliveries mirror order state synced from the
// courier APIs; the repository only reads them and never writes.
package deliveryrepo

import (
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
)

// DeliveryDTO represents the database structure of the delivery read model.
// PendingExceptionText holds the raw courier status synced from the courier
// API until the exception workflow consumes it.
type DeliveryDTO struct {
	OrderID              int64 `gorm:"primaryKey"`
	CourierID            *int  `gorm:"index"`
	TrackingNumber       string `gorm:"index"`
	OrderPhaseID         int64
	PhaseID              int
	SendInStockAt        *time.Time
	InStockAt            *time.Time
	PendingExceptionText *string `gorm:"type:text"`
}

// TableName specifies the database table name for delivery rows.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// toDomain converts a database DTO to a delivery read-model entity.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	var courierID *courier.ID
	if dto.CourierID != nil {
		id := courier.ID(*dto.CourierID)
		courierID = &id
	}

	return delivery.NewDelivery(
		dto.OrderID,
		courierID,
		dto.TrackingNumber,
		dto.OrderPhaseID,
		dto.PhaseID,
		dto.SendInStockAt,
		dto.InStockAt,
	)
}
