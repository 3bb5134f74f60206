// Package commentrepo provides data transfer objects and mapping functions
// for the exception audit trail. Comments live in the shared order-comment
// table; rows owned by the exception workflow carry the delivery-exception
// category key.
package commentrepo

import (
	"time"

	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CommentDTO represents the database structure for persisting order comments.
type CommentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     int64     `gorm:"index"`
	AuthorID    int64
	CategoryKey string `gorm:"index"`
	Content     string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for comment entities.
// Overrides GORM's default naming convention to use "order_comments".
func (CommentDTO) TableName() string {
	return "order_comments"
}

// fromDomain converts a comment entity to its database representation,
// stamping the exception category key.
func fromDomain(comment *exception.Comment) CommentDTO {
	return CommentDTO{
		ID:          comment.ID().Bytes(),
		OrderID:     comment.OrderID(),
		AuthorID:    comment.AuthorID(),
		CategoryKey: exception.CommentCategoryKey,
		Content:     comment.Content(),
		CreatedAt:   comment.CreatedAt(),
	}
}

// toDomain converts a database DTO to a comment entity using RestoreComment.
func toDomain(dto CommentDTO) (*exception.Comment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return exception.RestoreComment(id, dto.OrderID, dto.AuthorID, dto.Content, dto.CreatedAt)
}
