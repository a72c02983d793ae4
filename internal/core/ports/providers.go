package ports

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

var (
	// ErrAddressNotFound is returned when the address does not exist or does
	// not belong to the requesting user.
	ErrAddressNotFound = errors.New("address not found for user")

	// ErrInvalidCoupon is returned when a supplied coupon code cannot be
	// applied: unknown, inactive, expired, or below its minimum order amount.
	ErrInvalidCoupon = errors.New("coupon cannot be applied")
)

// CartItem is one line of a customer's active cart as read at checkout.
type CartItem struct {
	ProductID    kernel.UUID
	ProductName  string
	ProductImage string
	UnitPrice    kernel.Money
	Quantity     int
}

// CartSnapshot is the product/quantity/price view of the customer's active
// cart at checkout time. The cart itself stays external and mutable; the
// snapshot is what the order engine prices and freezes into line items.
type CartSnapshot struct {
	Items       []CartItem
	TotalAmount kernel.Money
}

// IsEmpty reports whether the snapshot has no lines.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// CartProvider reads and clears the customer's active cart.
// Clearing happens outside the order transaction, best-effort: a stale cart
// is cosmetic, never a correctness violation.
type CartProvider interface {
	GetCart(ctx context.Context, userID kernel.UUID) (CartSnapshot, error)
	Clear(ctx context.Context, userID kernel.UUID) error
}

// Address is the delivery address snapshot referenced by an order.
type Address struct {
	ID      kernel.UUID
	UserID  kernel.UUID
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
	Phone   string
}

// AddressProvider looks up delivery addresses scoped to their owner.
type AddressProvider interface {
	// FindForUser returns the address only when it belongs to the user;
	// otherwise ErrAddressNotFound.
	FindForUser(ctx context.Context, userID, addressID kernel.UUID) (Address, error)
}

// CouponResult is a validated coupon's contribution to an order.
type CouponResult struct {
	DiscountAmount kernel.Money
	IsFreeShipping bool
}

// CouponValidator validates a coupon code against the order being placed and
// returns the discount it grants. Called only when a coupon code is supplied.
type CouponValidator interface {
	Apply(ctx context.Context, code string, subtotal kernel.Money, items []CartItem) (CouponResult, error)
}

// NotificationDispatcher informs the order owner about a status change.
// Dispatch failures are logged and swallowed by callers: a placed order is
// never undone by a downstream communication failure.
type NotificationDispatcher interface {
	NotifyStatusChange(ctx context.Context, userID, orderID kernel.UUID, newStatus order.Status) error
}
