// Package exceptionrepo provides data transfer objects and mapping functions
// for delivery-exception persistence. This package implements the repository
// pattern for the exception domain aggregate, handling the conversion between
// domain entities and database representations.
package exceptionrepo

import (
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ExceptionDTO represents the database structure for persisting exception
// aggregates. One order carries at most one exception row, enforced by the
// unique index on OrderID.
type ExceptionDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             int64     `gorm:"uniqueIndex"`
	CourierID           int       `gorm:"index"`
	TrackingNumber      string
	Message             string `gorm:"type:text"`
	Owner               string `gorm:"index"`
	PhaseID             int
	OrderPhaseID        int64
	CreatedOrderPhaseID int64
	DeliveredAt         *time.Time
	IsTransfer          bool
	SendInStockAt       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedUserID       int64
}

// TableName specifies the database table name for exception entities.
// Overrides GORM's default naming convention to use "delivery_exceptions".
func (ExceptionDTO) TableName() string {
	return "delivery_exceptions"
}

// fromDomain converts an exception domain aggregate to its database representation.
func fromDomain(exc *exception.DeliveryException) ExceptionDTO {
	return ExceptionDTO{
		ID:                  exc.ID().Bytes(),
		OrderID:             exc.OrderID(),
		CourierID:           int(exc.CourierID()),
		TrackingNumber:      exc.TrackingNumber(),
		Message:             exc.Message(),
		Owner:               exc.Owner().String(),
		PhaseID:             exc.PhaseID(),
		OrderPhaseID:        exc.OrderPhaseID(),
		CreatedOrderPhaseID: exc.CreatedOrderPhaseID(),
		DeliveredAt:         exc.DeliveredAt(),
		IsTransfer:          exc.IsTransfer(),
		SendInStockAt:       exc.SendInStockAt(),
		CreatedAt:           exc.CreatedAt(),
		UpdatedAt:           exc.UpdatedAt(),
		CreatedUserID:       exc.CreatedUserID(),
	}
}

// toDomain converts a database DTO to an exception domain aggregate.
// Reconstructs the complete aggregate using RestoreDeliveryException.
func toDomain(dto ExceptionDTO) (*exception.DeliveryException, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	owner, err := exception.OwnerFromString(dto.Owner)
	if err != nil {
		return nil, err
	}

	return exception.RestoreDeliveryException(
		id,
		dto.OrderID,
		courier.ID(dto.CourierID),
		dto.TrackingNumber,
		dto.Message,
		owner,
		dto.PhaseID,
		dto.OrderPhaseID,
		dto.CreatedOrderPhaseID,
		dto.DeliveredAt,
		dto.IsTransfer,
		dto.SendInStockAt,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CreatedUserID,
	)
}
