package ports

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
)

// ErrInsufficientStock is returned when any requested product does not have
// enough stock to satisfy its line. The reservation is all-or-nothing: when
// one line fails, no product's stock is changed.
var ErrInsufficientStock = errors.New("insufficient stock for requested quantity")

// ReservationItem is one product/quantity pair to reserve.
type ReservationItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// StockReservation atomically verifies and decrements per-product inventory.
//
// Implementations must be race-safe under concurrent reservations on the same
// product: when two requests race for the last unit, exactly one succeeds and
// the other fails with ErrInsufficientStock, and final stock is never
// negative. Within a unit of work the decrements participate in the enclosing
// transaction, so a later failure rolls them back; implementations never
// compensate explicitly.
type StockReservation interface {
	// Reserve decrements stock for every item, or fails with
	// ErrInsufficientStock leaving every product unchanged.
	Reserve(ctx context.Context, items []ReservationItem) error
}
