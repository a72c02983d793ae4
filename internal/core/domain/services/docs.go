// Package services provides domain services that implement business operations
// which don't naturally belong to a single aggregate root in the commerce system.
//
// The package includes:
//   - PricingCalculator: A pure domain service that prices a cart snapshot into order totals
//
// Domain services hold policy and computation only; they perform no I/O, making
// their behavior fully deterministic and testable in isolation.
package services
