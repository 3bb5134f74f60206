package ports

import (
	"context"
)

// PhaseTransition is the fresh phase reference produced by a transition.
// Changed is false when the order was already in the requested phase, in
// which case the reference points at the existing row.
type PhaseTransition struct {
	Changed      bool
	OrderPhaseID int64
	PhaseID      int
}

// PhaseTransitioner drives the external order-phase workflow. Closing the
// current phase row and opening a new one is the order system's job; the
// exception workflow only consumes the resulting reference.
type PhaseTransitioner interface {
	// Transition closes the order's current phase row and opens a new row in
	// the given phase, stamping the acting user on both. When the order is
	// already in that phase the call is a no-op and returns the current row
	// with Changed set to false.
	Transition(ctx context.Context, orderID int64, phaseID int, userID int64) (PhaseTransition, error)
}
