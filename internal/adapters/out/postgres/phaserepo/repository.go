package phaserepo

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/core/ports"

	"gorm.io/gorm"
)

// GormPhaseTransitioner implements PhaseTransitioner using GORM. It must run
// on the same transaction as the exception changes it mirrors, so the unit of
// work constructs it on the transactional connection.
type GormPhaseTransitioner struct {
	db *gorm.DB
}

// NewGormPhaseTransitioner creates a new GORM phase transitioner.
func NewGormPhaseTransitioner(db *gorm.DB) *GormPhaseTransitioner {
	return &GormPhaseTransitioner{db: db}
}

// Transition closes the order's open phase row and appends a row in the given
// phase. When the order is already in that phase the history is left
// untouched and the open row is returned with Changed set to false.
func (t *GormPhaseTransitioner) Transition(
	ctx context.Context,
	orderID int64,
	phaseID int,
	userID int64,
) (ports.PhaseTransition, error) {
	now := time.Now()

	var open OrderPhaseDTO
	err := t.db.WithContext(ctx).
		Where("order_id = ? AND closed_at IS NULL", orderID).
		Order("id DESC").
		First(&open).Error
	switch {
	case err == nil:
		if open.PhaseID == phaseID {
			return ports.PhaseTransition{
				Changed:      false,
				OrderPhaseID: open.ID,
				PhaseID:      open.PhaseID,
			}, nil
		}

		result := t.db.WithContext(ctx).
			Model(&OrderPhaseDTO{}).
			Where("id = ? AND closed_at IS NULL", open.ID).
			Updates(map[string]any{
				"closed_at":      now,
				"closed_user_id": userID,
			})
		if result.Error != nil {
			return ports.PhaseTransition{}, result.Error
		}
		if result.RowsAffected == 0 {
			return ports.PhaseTransition{}, gorm.ErrRecordNotFound
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No open row; the fresh row starts the chain.
	default:
		return ports.PhaseTransition{}, err
	}

	fresh := OrderPhaseDTO{
		OrderID:       orderID,
		PhaseID:       phaseID,
		CreatedUserID: userID,
		CreatedAt:     now,
	}
	if err := t.db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return ports.PhaseTransition{}, err
	}

	return ports.PhaseTransition{
		Changed:      true,
		OrderPhaseID: fresh.ID,
		PhaseID:      fresh.PhaseID,
	}, nil
}
