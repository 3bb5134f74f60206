package monitoring

import (
	"context"
	"errors"
)

// RuleManager collects the rules applicable to one delivery for one
// monitoring pass and evaluates them in list order.
type RuleManager struct {
	rules []Rule
}

// NewRuleManager creates an empty manager.
func NewRuleManager() *RuleManager {
	return &RuleManager{}
}

// Add appends a rule to the evaluation list.
func (m *RuleManager) Add(rule Rule) {
	m.rules = append(m.rules, rule)
}

// EvaluateAll evaluates every rule in order. A failing rule does not stop the
// others; all failures are joined into the returned error.
func (m *RuleManager) EvaluateAll(ctx context.Context) error {
	var errs []error
	for _, rule := range m.rules {
		if err := rule.Evaluate(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
