// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"commerce/internal/core/ports"
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

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StockReservationFactory provides access to stock reservation within a transaction.
	StockReservationFactory interface {
		StockReservation() ports.StockReservation
	}

	// OrderNumberFactory provides access to the order number sequence within a transaction.
	OrderNumberFactory interface {
		OrderNumberGenerator() ports.OrderNumberGenerator
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Used when commands only modify an existing order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW manages the order creation transaction: stock decrements,
	// number generation, and the order insert all commit or roll back together.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		StockReservationFactory
		OrderNumberFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
