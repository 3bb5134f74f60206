// Package csmessagerepo provides data transfer objects and mapping functions
// for the per-courier message dictionary that drives status classification.
package csmessagerepo

import (
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CSMessageDTO represents the database structure for persisting dictionary
// entries. The composite index supports the classifier's per-courier,
// per-type text lookups.
type CSMessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID int       `gorm:"index:idx_cs_messages_courier_type"`
	Type      string    `gorm:"index:idx_cs_messages_courier_type"`
	Text      string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName specifies the database table name for dictionary entries.
// Overrides GORM's default naming convention to use "cs_messages".
func (CSMessageDTO) TableName() string {
	return "cs_messages"
}

// fromDomain converts a service message to its database representation.
func fromDomain(message *courier.ServiceMessage) CSMessageDTO {
	return CSMessageDTO{
		ID:        message.ID().Bytes(),
		CourierID: int(message.CourierID()),
		Type:      message.Type().String(),
		Text:      message.Text(),
	}
}

// toDomain converts a database DTO to a service message entity.
func toDomain(dto CSMessageDTO) (*courier.ServiceMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	msgType, err := courier.MessageTypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	return courier.NewServiceMessage(id, courier.ID(dto.CourierID), dto.Text, msgType)
}
