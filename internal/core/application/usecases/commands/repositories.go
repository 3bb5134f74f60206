// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"backoffice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// ExceptionRepoFactory provides access to the exception repository within a transaction.
	ExceptionRepoFactory interface {
		ExceptionRepository() ports.ExceptionRepository
	}

	// CommentRepoFactory provides access to the comment repository within a transaction.
	CommentRepoFactory interface {
		CommentRepository() ports.CommentRepository
	}

	// PhaseTransitionerFactory provides a phase transitioner bound to the
	// current transaction, so phase rows move atomically with the exception
	// changes they mirror.
	PhaseTransitionerFactory interface {
		PhaseTransitioner() ports.PhaseTransitioner
	}

	// ExceptionUoW manages transactions for exception state changes. Every
	// command in this package mutates the exception aggregate, its comment
	// trail and the mirrored phase row together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   excRepo := uow.ExceptionRepository()
	//   commentRepo := uow.CommentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ExceptionUoW interface {
		TxManager
		DeliveryRepoFactory
		ExceptionRepoFactory
		CommentRepoFactory
		PhaseTransitionerFactory
	}

	// ExceptionUoWFactory creates new exception unit of work instances.
	ExceptionUoWFactory interface {
		Create() ExceptionUoW
	}
)
