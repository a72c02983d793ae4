// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the external
// collaborators the order engine consumes. These interfaces enable
// dependency inversion and testability; no implementation detail of
// storage or transport leaks into the core.
package ports

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted: cancellation and refund are terminal statuses,
// not removals.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle changes to an existing order aggregate.
	// Line items are immutable and are never rewritten by Update.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its opaque identifier,
	// with its complete item set.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUser retrieves an order scoped to its owning user. An order that
	// does not exist and an order owned by a different user are deliberately
	// indistinguishable: both return an object-not-found error, so callers
	// can never probe for other users' orders.
	GetForUser(ctx context.Context, userID, orderID kernel.UUID) (*order.Order, error)

	// GetAllPendingBefore retrieves orders still in Pending status that were
	// created before the cutoff. Used by the stale-order sweep.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
