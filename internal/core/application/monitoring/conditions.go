package monitoring

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/exception"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"
)

// ExceptionExistsCondition checks whether the delivery's exception presence
// matches the expectation.
type ExceptionExistsCondition struct {
	del      *delivery.Delivery
	expected bool
}

// NewExceptionExistsCondition creates the presence check.
func NewExceptionExistsCondition(del *delivery.Delivery, expected bool) *ExceptionExistsCondition {
	return &ExceptionExistsCondition{del: del, expected: expected}
}

func (c *ExceptionExistsCondition) IsSatisfied(_ context.Context) (bool, error) {
	return c.del.HasException() == c.expected, nil
}

// ExceptionOwnerCondition checks the exception's owning role. A delivery
// without an exception never satisfies it.
type ExceptionOwnerCondition struct {
	del      *delivery.Delivery
	expected exception.Owner
}

// NewExceptionOwnerCondition creates the owner check.
func NewExceptionOwnerCondition(del *delivery.Delivery, expected exception.Owner) *ExceptionOwnerCondition {
	return &ExceptionOwnerCondition{del: del, expected: expected}
}

func (c *ExceptionOwnerCondition) IsSatisfied(_ context.Context) (bool, error) {
	if !c.del.HasException() {
		return false, nil
	}
	return c.del.Exception().Owner() == c.expected, nil
}

// LastCommentContainsCondition checks whether the most recent exception
// comment contains a phrase, ignoring case. No comments means not satisfied.
type LastCommentContainsCondition struct {
	comments ports.CommentRepository
	orderID  int64
	phrase   string
}

// NewLastCommentContainsCondition creates the last-comment check.
func NewLastCommentContainsCondition(comments ports.CommentRepository, orderID int64, phrase string) *LastCommentContainsCondition {
	return &LastCommentContainsCondition{comments: comments, orderID: orderID, phrase: phrase}
}

func (c *LastCommentContainsCondition) IsSatisfied(ctx context.Context) (bool, error) {
	last, err := c.comments.GetLastByOrderID(ctx, c.orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return strings.Contains(strings.ToLower(last.Content()), strings.ToLower(c.phrase)), nil
}

// WorkingDaysElapsedCondition checks whether N working days have passed since
// a reference date. Saturdays and Sundays do not count; holidays do. The date
// source may defer its computation to evaluation time.
type WorkingDaysElapsedCondition struct {
	source kernel.DateSource
	days   int
	now    func() time.Time
}

// NewWorkingDaysElapsedCondition creates the working-day check. A nil now
// function defaults to time.Now.
func NewWorkingDaysElapsedCondition(source kernel.DateSource, days int, now func() time.Time) *WorkingDaysElapsedCondition {
	if now == nil {
		now = time.Now
	}
	return &WorkingDaysElapsedCondition{source: source, days: days, now: now}
}

func (c *WorkingDaysElapsedCondition) IsSatisfied(_ context.Context) (bool, error) {
	date, err := c.source.Resolve()
	if err != nil {
		return false, err
	}

	target := kernel.AddWorkingDays(date, c.days)
	return !c.now().Before(target), nil
}

// RescheduleCountCondition counts distinct delivery dates across the
// exception's comments that match a set-delivery-date courier phrase. Only
// the last date token per comment is significant.
type RescheduleCountCondition struct {
	comments   ports.CommentRepository
	dictionary services.MessageDictionary
	courierID  courier.ID
	orderID    int64
	threshold  int
}

// NewRescheduleCountCondition creates the distinct-reschedule-date check.
func NewRescheduleCountCondition(
	comments ports.CommentRepository,
	dictionary services.MessageDictionary,
	courierID courier.ID,
	orderID int64,
	threshold int,
) *RescheduleCountCondition {
	return &RescheduleCountCondition{
		comments:   comments,
		dictionary: dictionary,
		courierID:  courierID,
		orderID:    orderID,
		threshold:  threshold,
	}
}

func (c *RescheduleCountCondition) IsSatisfied(ctx context.Context) (bool, error) {
	msgType := courier.MessageTypeSetDeliveryDate
	phrases, err := c.dictionary.GetTexts(ctx, c.courierID, &msgType)
	if err != nil {
		return false, err
	}

	all, err := c.comments.GetAllByOrderID(ctx, c.orderID)
	if err != nil {
		return false, err
	}

	distinct := make(map[string]struct{})
	for _, comment := range all {
		if !matchesAny(comment.Content(), phrases) {
			continue
		}
		if date, ok := courier.ExtractLastDeliveryDate(comment.Content()); ok {
			distinct[date.Format("02.01.2006")] = struct{}{}
		}
	}

	return len(distinct) >= c.threshold, nil
}

func matchesAny(content string, phrases []string) bool {
	lowered := strings.ToLower(content)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// CommentCountCondition checks for an exact number of exception comments.
type CommentCountCondition struct {
	comments ports.CommentRepository
	orderID  int64
	expected int
}

// NewCommentCountCondition creates the exact-count check.
func NewCommentCountCondition(comments ports.CommentRepository, orderID int64, expected int) *CommentCountCondition {
	return &CommentCountCondition{comments: comments, orderID: orderID, expected: expected}
}

func (c *CommentCountCondition) IsSatisfied(ctx context.Context) (bool, error) {
	count, err := c.comments.CountByOrderID(ctx, c.orderID)
	if err != nil {
		return false, err
	}
	return count == c.expected, nil
}
