// Package monitoring implements the proactive side of exception handling:
// rules that watch deliveries for stuck statuses, excessive reschedules and
// courier silence, and fire exception commands when no courier message would.
package monitoring

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/pkg/errs"
)

// Condition is a predicate over one delivery's exception state, parameterized
// at construction. Conditions are evaluated outside the action transaction.
type Condition interface {
	IsSatisfied(ctx context.Context) (bool, error)
}

// Action is one state change a triggered rule performs. Actions run inside
// the transaction owned by the rule; they must not manage it themselves.
type Action interface {
	Execute(ctx context.Context, uow commands.ExceptionUoW) error
}

// Rule is an evaluatable monitoring rule.
type Rule interface {
	Evaluate(ctx context.Context) error
}

// GenericRule combines enable conditions, trigger conditions and actions.
// Both condition lists AND together and short-circuit on the first false;
// later conditions must not be evaluated since they may be expensive or carry
// side effects. All actions of a triggered rule run in one transaction; any
// failure rolls back every action of that rule and propagates.
type GenericRule struct {
	enableConditions  []Condition
	triggerConditions []Condition
	actions           []Action
	uowFactory        commands.ExceptionUoWFactory
}

// NewGenericRule creates a rule from its condition and action lists.
func NewGenericRule(
	uowFactory commands.ExceptionUoWFactory,
	enableConditions []Condition,
	triggerConditions []Condition,
	actions []Action,
) (*GenericRule, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if len(actions) == 0 {
		return nil, errs.NewValueIsRequiredError("actions")
	}

	return &GenericRule{
		enableConditions:  enableConditions,
		triggerConditions: triggerConditions,
		actions:           actions,
		uowFactory:        uowFactory,
	}, nil
}

// IsEnabled reports whether every enable condition holds, short-circuiting on
// the first false.
func (r *GenericRule) IsEnabled(ctx context.Context) (bool, error) {
	return allSatisfied(ctx, r.enableConditions)
}

// ShouldTrigger reports whether every trigger condition holds, with the same
// short-circuit contract as IsEnabled.
func (r *GenericRule) ShouldTrigger(ctx context.Context) (bool, error) {
	return allSatisfied(ctx, r.triggerConditions)
}

// Evaluate runs the rule: when enabled and triggered, all actions execute
// inside one transaction. A failing action rolls everything back and the
// error propagates to the caller, who decides whether to continue with the
// next delivery or rule.
func (r *GenericRule) Evaluate(ctx context.Context) error {
	enabled, err := r.IsEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	triggered, err := r.ShouldTrigger(ctx)
	if err != nil {
		return err
	}
	if !triggered {
		return nil
	}

	uow := r.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, action := range r.actions {
		if err = action.Execute(ctx, uow); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func allSatisfied(ctx context.Context, conditions []Condition) (bool, error) {
	for _, condition := range conditions {
		ok, err := condition.IsSatisfied(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
