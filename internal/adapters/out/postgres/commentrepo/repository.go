package commentrepo

import (
	"context"
	"errors"
	"strconv"

	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCommentRepository implements CommentRepository using GORM. Every query
// is scoped to the delivery-exception category key so the workflow never sees
// comments written by other back-office features.
type GormCommentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommentRepository creates a new GORM comment repository.
func NewGormCommentRepository(db *gorm.DB, tracker aggregateTracker) *GormCommentRepository {
	return &GormCommentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new comment to the database.
func (r *GormCommentRepository) Add(ctx context.Context, comment *exception.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	dto := fromDomain(comment)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(comment.ID(), comment)
	return nil
}

// GetAllByOrderID retrieves the order's exception comments, oldest first.
func (r *GormCommentRepository) GetAllByOrderID(ctx context.Context, orderID int64) ([]*exception.Comment, error) {
	var dtos []CommentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND category_key = ?", orderID, exception.CommentCategoryKey).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*exception.Comment, 0, len(dtos))
	for _, dto := range dtos {
		comment, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, nil
}

// GetLastByOrderID retrieves the most recent exception comment on the order.
func (r *GormCommentRepository) GetLastByOrderID(ctx context.Context, orderID int64) (*exception.Comment, error) {
	var dto CommentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND category_key = ?", orderID, exception.CommentCategoryKey).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("comment", strconv.FormatInt(orderID, 10))
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountByOrderID returns how many exception comments the order carries.
func (r *GormCommentRepository) CountByOrderID(ctx context.Context, orderID int64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CommentDTO{}).
		Where("order_id = ? AND category_key = ?", orderID, exception.CommentCategoryKey).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
