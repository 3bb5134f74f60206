package csmessagerepo

import (
	"context"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCSMessageRepository implements CSMessageRepository using GORM. The
// dictionary lives outside the exception transaction boundary, so the
// repository is constructed directly on the shared connection rather than
// through the unit of work.
type GormCSMessageRepository struct {
	db *gorm.DB
}

// NewGormCSMessageRepository creates a new GORM dictionary repository.
func NewGormCSMessageRepository(db *gorm.DB) *GormCSMessageRepository {
	return &GormCSMessageRepository{db: db}
}

// GetTexts retrieves the dictionary texts for one courier, optionally
// narrowed to a single message type.
func (r *GormCSMessageRepository) GetTexts(
	ctx context.Context,
	courierID courier.ID,
	msgType *courier.MessageType,
) ([]string, error) {
	query := r.db.WithContext(ctx).
		Model(&CSMessageDTO{}).
		Where("courier_id = ?", int(courierID))
	if msgType != nil {
		query = query.Where("type = ?", msgType.String())
	}

	var texts []string
	if err := query.Pluck("text", &texts).Error; err != nil {
		return nil, err
	}

	return texts, nil
}

// Add persists a new dictionary entry.
func (r *GormCSMessageRepository) Add(
	ctx context.Context,
	courierID courier.ID,
	msgType courier.MessageType,
	text string,
) error {
	message, err := courier.NewServiceMessage(kernel.NewUUID(), courierID, text, msgType)
	if err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}
