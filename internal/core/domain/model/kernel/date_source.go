package kernel

import (
	"time"

	"backoffice/internal/pkg/errs"
)

// ErrDateSourceIsNotConstructed is returned when a DateSource was not created
// through LiteralDate or DeferredDate.
var ErrDateSourceIsNotConstructed = errs.NewValueIsRequiredError(
	"DateSource must be created via LiteralDate or DeferredDate",
)

// DateSource carries a date for rule conditions either as a literal value or
// as a deferred computation. Deferred sources are useful when the date is not
// known at rule construction time, e.g. the timestamp of the latest comment,
// which may only appear after other rules have run.
//
// A DateSource is resolved exactly once per evaluation via Resolve; callers
// must not cache the result across evaluations.
//
// Example:
//
//	src := kernel.DeferredDate(func() (time.Time, error) {
//	    c, err := comments.FindLast(ctx, orderID, key)
//	    if err != nil {
//	        return time.Time{}, err
//	    }
//	    return c.CreatedAt(), nil
//	})
type DateSource struct {
	literal  time.Time
	deferred func() (time.Time, error)
}

// LiteralDate creates a DateSource holding a fixed date.
func LiteralDate(date time.Time) DateSource {
	return DateSource{literal: date}
}

// DeferredDate creates a DateSource that computes its date on Resolve.
func DeferredDate(fn func() (time.Time, error)) DateSource {
	return DateSource{deferred: fn}
}

// Resolve produces the date. For deferred sources the closure runs on every
// call; errors from the closure propagate to the caller.
func (s DateSource) Resolve() (time.Time, error) {
	if s.deferred != nil {
		return s.deferred()
	}
	if s.literal.IsZero() {
		return time.Time{}, ErrDateSourceIsNotConstructed
	}
	return s.literal, nil
}
