// Package order provides domain entities and business logic for order management
// in the commerce system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, pricing, items, and lifecycle
//   - Item: An immutable line-item snapshot captured at order placement
//   - Status: A state machine that enforces valid order status transitions
//   - PaymentMethod / PaymentStatus: payment attributes with an externally driven lifecycle
//
// Key business rules:
//   - Orders must have a valid unique identifier, owner, address snapshot, and at least one item
//   - The total amount always equals subtotal + tax + delivery - discount - coupon discount
//   - Order status follows a defined workflow ending in Delivered, Cancelled, or Refunded
//   - Cancellation is permitted only while the order is Pending or Confirmed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
