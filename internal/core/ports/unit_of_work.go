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
// It provides transaction control and hands out repositories bound to the
// running transaction. Client code must explicitly manage the transaction
// lifecycle: order creation's four steps (stock reservation, number
// generation, order insert, item inserts) all execute inside one unit of
// work, so any failure rolls the whole set back.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// StockReservation returns a StockReservation bound to the current
	// transaction, so refused reservations and later failures roll back
	// every decrement.
	StockReservation() StockReservation

	// OrderNumberGenerator returns an OrderNumberGenerator bound to the
	// current transaction.
	OrderNumberGenerator() OrderNumberGenerator
}
