package commands

import (
	"context"
	"log/slog"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for placing an order.
// Reads the cart, validates the delivery address and optional coupon, prices
// the cart, then runs the checkout transaction: stock is reserved, an order
// number is generated, and the order with its line items is inserted. The
// cart clear and the notification run after commit and are best-effort.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(
//	    uowFactory, carts, addresses, coupons, pricing, notifier, 72*time.Hour, logger,
//	)
//	cmd, _ := NewCreateOrderCommand(userID, addressID, "UPI", "", "")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory   CheckoutUoWFactory
	carts        ports.CartProvider
	addresses    ports.AddressProvider
	coupons      ports.CouponValidator
	pricing      services.PricingCalculator
	notifier     ports.NotificationDispatcher
	deliveryLead time.Duration
	logger       *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// deliveryLead is the fixed interval added to the placement instant to
// compute the estimated delivery date.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	carts ports.CartProvider,
	addresses ports.AddressProvider,
	coupons ports.CouponValidator,
	pricing services.PricingCalculator,
	notifier ports.NotificationDispatcher,
	deliveryLead time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		carts:        carts,
		addresses:    addresses,
		coupons:      coupons,
		pricing:      pricing,
		notifier:     notifier,
		deliveryLead: deliveryLead,
		logger:       logger.With("component", "create_order"),
	}
}

// CreateOrderResult is the placement outcome: the created order together with
// the delivery address it was placed against.
type CreateOrderResult struct {
	Order   *order.Order
	Address ports.Address
}

// Handle processes the order placement command and returns the created order
// with its delivery address.
// Any failure inside the checkout transaction rolls back the stock decrements,
// the consumed order number slot, and the order rows together.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := h.carts.GetCart(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, services.ErrCartIsEmpty
	}

	address, err := h.addresses.FindForUser(ctx, cmd.UserID(), cmd.AddressID())
	if err != nil {
		return nil, err
	}

	coupon, err := h.applyCoupon(ctx, cmd.CouponCode(), snapshot)
	if err != nil {
		return nil, err
	}

	totals, err := h.pricing.Calculate(pricingLines(snapshot), coupon)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderID := kernel.NewUUID()
	items, err := orderItems(orderID, snapshot)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StockReservation().Reserve(ctx, reservationItems(snapshot)); err != nil {
		return nil, err
	}

	orderNumber, err := uow.OrderNumberGenerator().Next(ctx, now)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		orderID,
		orderNumber,
		cmd.UserID(),
		cmd.AddressID(),
		cmd.PaymentMethod(),
		cmd.SpecialInstructions(),
		totals,
		items,
		now,
		now.Add(h.deliveryLead),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The order is committed; a stale cart or a missed notification must not
	// surface as a checkout failure.
	if err = h.carts.Clear(ctx, cmd.UserID()); err != nil {
		h.logger.Warn("failed to clear cart after checkout",
			"user_id", cmd.UserID().String(), "error", err)
	}
	if err = h.notifier.NotifyStatusChange(ctx, cmd.UserID(), orderID, aggregate.Status()); err != nil {
		h.logger.Warn("failed to dispatch order placement notification",
			"order_id", orderID.String(), "error", err)
	}

	return &CreateOrderResult{Order: aggregate, Address: address}, nil
}

func (h *CreateOrderCommandHandler) applyCoupon(
	ctx context.Context, code string, snapshot ports.CartSnapshot,
) (*services.CouponDiscount, error) {
	if code == "" {
		return nil, nil //nolint:nilnil //absent coupon is a valid outcome
	}

	subtotal := kernel.ZeroMoney()
	for _, line := range snapshot.Items {
		subtotal = subtotal.Add(line.UnitPrice.MulInt(line.Quantity))
	}

	result, err := h.coupons.Apply(ctx, code, subtotal, snapshot.Items)
	if err != nil {
		return nil, err
	}

	return &services.CouponDiscount{
		DiscountAmount: result.DiscountAmount,
		IsFreeShipping: result.IsFreeShipping,
	}, nil
}

func pricingLines(snapshot ports.CartSnapshot) []services.PricingLine {
	lines := make([]services.PricingLine, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, services.PricingLine{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return lines
}

func reservationItems(snapshot ports.CartSnapshot) []ports.ReservationItem {
	items := make([]ports.ReservationItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, ports.ReservationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return items
}

func orderItems(orderID kernel.UUID, snapshot ports.CartSnapshot) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		item, err := order.NewItem(
			kernel.NewUUID(),
			orderID,
			line.ProductID,
			line.ProductName,
			line.ProductImage,
			line.Quantity,
			line.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
