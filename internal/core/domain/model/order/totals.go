package order

import (
	"errors"
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ErrTotalsDoNotBalance is returned when the total amount does not equal
// subtotal + tax + delivery - discount - coupon discount.
var ErrTotalsDoNotBalance = errors.New(
	"total amount must equal subtotal + tax + delivery charge - discount - coupon discount",
)

// Totals carries the priced breakdown of an order. It is produced by the
// pricing calculator at placement time and frozen into the order; the total
// is checked at creation and never recomputed later.
type Totals struct {
	Subtotal       kernel.Money
	TaxAmount      kernel.Money
	DeliveryCharge kernel.Money
	DiscountAmount kernel.Money
	CouponDiscount kernel.Money
	TotalAmount    kernel.Money
}

// Validate checks that every amount is non-negative and that the total
// balances against its components.
func (t Totals) Validate() error {
	fields := map[string]kernel.Money{
		"subtotal":       t.Subtotal,
		"taxAmount":      t.TaxAmount,
		"deliveryCharge": t.DeliveryCharge,
		"discountAmount": t.DiscountAmount,
		"couponDiscount": t.CouponDiscount,
		"totalAmount":    t.TotalAmount,
	}
	for name, amount := range fields {
		if amount.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", amount))
		}
	}

	expected := t.Subtotal.
		Add(t.TaxAmount).
		Add(t.DeliveryCharge).
		Sub(t.DiscountAmount).
		Sub(t.CouponDiscount)
	if !t.TotalAmount.IsEqual(expected) {
		return fmt.Errorf("%w: have %s, want %s", ErrTotalsDoNotBalance, t.TotalAmount, expected)
	}

	return nil
}
