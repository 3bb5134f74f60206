package exception

import (
	"errors"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// CommentCategoryKey is the category all exception comments are filed under
// in the shared order-comment store.
const CommentCategoryKey = "delivery-exception"

// ErrCommentIsNotConstructed is returned when a Comment was not created via NewComment.
var ErrCommentIsNotConstructed = errors.New("Comment must be created via NewComment or RestoreComment")

// Comment is an append-only audit record attached to an order. Every courier
// message that changes an exception, and every monitoring rule firing, lands
// here so back-office staff can reconstruct the history.
type Comment struct {
	id        kernel.UUID
	orderID   int64
	authorID  int64
	content   string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewComment creates a comment authored by the given user.
func NewComment(id kernel.UUID, orderID int64, authorID int64, content string, now time.Time) (*Comment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("orderID")
	}
	if authorID <= 0 {
		return nil, errs.NewValueIsRequiredError("authorID")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.NewValueIsRequiredError("content")
	}

	return &Comment{
		id:        id,
		orderID:   orderID,
		authorID:  authorID,
		content:   content,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreComment reconstructs a comment from persistence.
func RestoreComment(id kernel.UUID, orderID int64, authorID int64, content string, createdAt time.Time) (*Comment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Comment{
		id:        id,
		orderID:   orderID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the comment was created through a constructor.
func (c *Comment) Validate() error {
	if c == nil {
		return ErrCommentIsNotConstructed
	}
	return c.guard.Validate(ErrCommentIsNotConstructed)
}

// ID returns the comment identifier.
func (c *Comment) ID() kernel.UUID { return c.id }

// OrderID returns the order the comment is attached to.
func (c *Comment) OrderID() int64 { return c.orderID }

// AuthorID returns the id of the user who authored the comment.
func (c *Comment) AuthorID() int64 { return c.authorID }

// Content returns the comment text.
func (c *Comment) Content() string { return c.content }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
