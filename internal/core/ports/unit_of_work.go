package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a DeliveryRepository instance bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// ExceptionRepository returns an ExceptionRepository instance bound to the current transaction.
	ExceptionRepository() ExceptionRepository

	// CommentRepository returns a CommentRepository instance bound to the current transaction.
	CommentRepository() CommentRepository

	// PhaseTransitioner returns a PhaseTransitioner bound to the current transaction,
	// so phase rows move together with the exception changes they mirror.
	PhaseTransitioner() PhaseTransitioner
}
