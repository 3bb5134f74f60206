package exception

import (
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
)

// Owner is the role currently responsible for resolving a delivery
// exception.
type Owner string

// Exception owner roles.
const (
	// OwnerLogist handles warehouse-side and carrier-side logistics issues.
	OwnerLogist Owner = "Logist"
	// OwnerOperator handles customer-facing issues.
	OwnerOperator Owner = "Operator"
)

// Workflow phase identifiers that mirror the owner roles. The owner column
// and the phase are kept in sync by the fixed mapping below; phases outside
// this pair belong to other workflows and freeze automatic owner changes.
const (
	// PhaseLogist is the order phase opened when a Logist owns the exception.
	PhaseLogist = 73
	// PhaseOperator is the order phase opened when an Operator owns the exception.
	PhaseOperator = 74
)

// getOwnerPhases returns the fixed owner-to-phase mapping.
func getOwnerPhases() map[Owner]int {
	return map[Owner]int{
		OwnerLogist:   PhaseLogist,
		OwnerOperator: PhaseOperator,
	}
}

// OwnerPhaseIDs returns the set of phase identifiers that represent exception
// owner roles. A delivery whose current phase is outside this set must not
// have its owner changed automatically.
func OwnerPhaseIDs() []int {
	return []int{PhaseLogist, PhaseOperator}
}

// OwnerFromString parses an owner stored as a raw string. Parsing is tolerant
// of surrounding whitespace and letter case since older rows were written by
// hand.
func OwnerFromString(s string) (Owner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "logist":
		return OwnerLogist, nil
	case "operator":
		return OwnerOperator, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"owner is invalid",
			fmt.Errorf("%q is not a valid exception owner", s),
		)
	}
}

// OwnerFromPhase returns the owner role mirrored by a phase identifier, or an
// error for phases outside the owner role set.
func OwnerFromPhase(phaseID int) (Owner, error) {
	switch phaseID {
	case PhaseLogist:
		return OwnerLogist, nil
	case PhaseOperator:
		return OwnerOperator, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause(
			"phase is invalid",
			fmt.Errorf("phase %d does not map to an exception owner", phaseID),
		)
	}
}

// Validate checks that the Owner is one of the defined roles.
func (o Owner) Validate() error {
	if _, ok := getOwnerPhases()[o]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"owner is invalid",
			fmt.Errorf("%q is not a valid exception owner", string(o)),
		)
	}
	return nil
}

// PhaseID returns the workflow phase mirroring this owner role.
func (o Owner) PhaseID() int {
	return getOwnerPhases()[o]
}

// String implements fmt.Stringer.
func (o Owner) String() string {
	return string(o)
}
