// Package services wires the message classifier, per-courier ownership
// policies and the exception command together into the message-processing
// pipeline: dispatch, per-courier handling and batch ingestion.
package services

import (
	"backoffice/internal/core/domain/model/courier"
	"backoffice/internal/core/domain/model/exception"
)

// OwnerPolicy holds one courier family's ownership decisions. Each field
// names the owner the exception moves to in that situation; nil leaves the
// owner untouched.
type OwnerPolicy struct {
	// NewProblem is applied when a problem message arrives for a delivery
	// without an exception.
	NewProblem *exception.Owner
	// NewNoProblem is applied when a no-problem message arrives for a
	// delivery without an exception.
	NewNoProblem *exception.Owner
	// ExistingProblem is applied when a problem message arrives for a
	// delivery that already has an exception.
	ExistingProblem *exception.Owner
	// ExistingNoProblem is applied when a no-problem message arrives for a
	// delivery that already has an exception.
	ExistingNoProblem *exception.Owner

	// ResetTransferOnExistingNoProblem clears the courier-specific transfer
	// flag when an existing exception receives a no-problem message.
	ResetTransferOnExistingNoProblem bool

	// InferDeliveredDate allows the handler to extract the delivery date
	// embedded in set-delivery-date messages.
	InferDeliveredDate bool
}

// GenericOwnerPolicy routes every message to Operator ownership. Used for
// couriers without a bespoke regulation.
func GenericOwnerPolicy() OwnerPolicy {
	operator := exception.OwnerOperator
	return OwnerPolicy{
		NewProblem:        &operator,
		NewNoProblem:      &operator,
		ExistingProblem:   &operator,
		ExistingNoProblem: &operator,
	}
}

// PrimaryCourierPolicy is the regulation agreed with the two largest
// couriers: problems escalate to Operator, fresh no-problem cases start with
// Logist, and a no-problem update on an existing case leaves the owner alone
// but clears the transfer flag.
func PrimaryCourierPolicy() OwnerPolicy {
	operator := exception.OwnerOperator
	logist := exception.OwnerLogist
	return OwnerPolicy{
		NewProblem:                       &operator,
		NewNoProblem:                     &logist,
		ExistingProblem:                  &operator,
		ExistingNoProblem:                nil,
		ResetTransferOnExistingNoProblem: true,
		InferDeliveredDate:               true,
	}
}

// getCourierPolicies maps couriers with a bespoke regulation to their policy.
func getCourierPolicies() map[courier.ID]OwnerPolicy {
	primary := PrimaryCourierPolicy()
	return map[courier.ID]OwnerPolicy{
		courier.IDBRT: primary,
		courier.IDSDA: primary,
	}
}

// PolicyForCourier returns the courier's ownership policy, falling back to
// the generic always-Operator policy.
func PolicyForCourier(id courier.ID) OwnerPolicy {
	if policy, ok := getCourierPolicies()[id]; ok {
		return policy
	}
	return GenericOwnerPolicy()
}
