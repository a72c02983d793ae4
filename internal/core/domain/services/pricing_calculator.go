package services

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCartIsEmpty is returned when pricing is requested for a cart without lines.
var ErrCartIsEmpty = errors.New("cart is empty, nothing to price")

// PricingLine is one cart line as seen by the pricing calculator:
// the product reference, its unit price, and the ordered quantity.
type PricingLine struct {
	ProductID kernel.UUID
	UnitPrice kernel.Money
	Quantity  int
}

// CouponDiscount is an already-validated coupon as applied to an order.
// Eligibility validation is delegated to the coupon collaborator; the
// calculator only applies the resulting amounts.
type CouponDiscount struct {
	DiscountAmount kernel.Money
	IsFreeShipping bool
}

// PricingPolicy carries the pricing constants: the flat tax rate, the
// free-delivery threshold, and the flat delivery fee charged below it.
type PricingPolicy struct {
	TaxRate               decimal.Decimal
	FreeDeliveryThreshold kernel.Money
	DeliveryFlatFee       kernel.Money
}

// DefaultPricingPolicy returns the platform defaults: 10% tax, free delivery
// from 500.00, flat fee 50.00 below it.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.RequireFromString("0.10"),
		FreeDeliveryThreshold: kernel.MustMoneyFromString("500.00"),
		DeliveryFlatFee:       kernel.MustMoneyFromString("50.00"),
	}
}

// PricingCalculator is a pure domain service that prices a cart snapshot into
// order totals. It performs no I/O and is fully deterministic.
//
// Pricing rules:
//   - subtotal is the sum of unit price times quantity across all lines,
//     at currency precision
//   - tax is subtotal times the flat tax rate, rounded to currency precision
//   - delivery is free at or above the threshold (the boundary is >=, not >),
//     or when a free-shipping coupon applies; otherwise the flat fee
//   - a coupon contributes an already-validated discount amount, clamped so
//     the total never goes negative
//   - the totals carry a separate non-coupon DiscountAmount slot; no pricing
//     rule produces it yet, it is reserved for a future promotions input and
//     always zero today
type PricingCalculator struct {
	policy PricingPolicy
}

// NewPricingCalculator creates a calculator with the given pricing policy.
func NewPricingCalculator(policy PricingPolicy) PricingCalculator {
	return PricingCalculator{policy: policy}
}

// Calculate prices the cart lines into balanced order totals.
// The coupon may be nil when no coupon was supplied.
// Returns ErrCartIsEmpty for a cart without lines and a validation error for
// malformed lines.
func (c PricingCalculator) Calculate(lines []PricingLine, coupon *CouponDiscount) (order.Totals, error) {
	if len(lines) == 0 {
		return order.Totals{}, ErrCartIsEmpty
	}

	subtotal := kernel.ZeroMoney()
	for _, line := range lines {
		if err := line.validate(); err != nil {
			return order.Totals{}, err
		}
		subtotal = subtotal.Add(line.UnitPrice.MulInt(line.Quantity))
	}

	taxAmount := subtotal.MulRate(c.policy.TaxRate)

	deliveryCharge := c.policy.DeliveryFlatFee
	if subtotal.Cmp(c.policy.FreeDeliveryThreshold) >= 0 {
		deliveryCharge = kernel.ZeroMoney()
	}

	couponDiscount := kernel.ZeroMoney()
	if coupon != nil {
		if coupon.IsFreeShipping {
			deliveryCharge = kernel.ZeroMoney()
		}
		couponDiscount = coupon.DiscountAmount
	}

	// Reserved for a future promotions input; no rule produces it yet.
	discountAmount := kernel.ZeroMoney()

	// Clamp the coupon so the grand total never drops below zero.
	payable := subtotal.Add(taxAmount).Add(deliveryCharge).Sub(discountAmount)
	if couponDiscount.Cmp(payable) > 0 {
		couponDiscount = payable
	}

	return order.Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DeliveryCharge: deliveryCharge,
		DiscountAmount: discountAmount,
		CouponDiscount: couponDiscount,
		TotalAmount:    payable.Sub(couponDiscount),
	}, nil
}

func (l PricingLine) validate() error {
	if err := l.ProductID.Validate(); err != nil {
		return err
	}
	if l.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	if l.UnitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", l.UnitPrice))
	}
	return nil
}
