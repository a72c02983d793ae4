package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNumberGeneration is returned when the order number sequence could not be
// advanced. It only signals storage failure; a duplicate number under
// concurrent load would be an invariant violation, not an error to tolerate.
var ErrNumberGeneration = errors.New("order number generation failed")

// OrderNumberGenerator produces collision-free, date-scoped sequential order
// numbers in the ORD-YYYYMMDD-NNNNN format, unique per UTC day across
// concurrently running service instances. Implementations must derive the
// sequence from a storage-level atomic increment, never an in-process counter.
type OrderNumberGenerator interface {
	// Next returns the next order number for the UTC day of the given instant.
	Next(ctx context.Context, day time.Time) (string, error)
}
