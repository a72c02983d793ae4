package services_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, price string, quantity int) services.PricingLine {
	t.Helper()
	return services.PricingLine{
		ProductID: kernel.NewUUID(),
		UnitPrice: kernel.MustMoneyFromString(price),
		Quantity:  quantity,
	}
}

func TestPricingCalculator_Calculate(t *testing.T) {
	calc := services.NewPricingCalculator(services.DefaultPricingPolicy())

	t.Run("should price a simple cart below the free-delivery threshold", func(t *testing.T) {
		// 2 x 100.00 -> subtotal 200.00, tax 20.00, delivery 50.00, total 270.00
		totals, err := calc.Calculate([]services.PricingLine{line(t, "100.00", 2)}, nil)

		require.NoError(t, err)
		assert.Equal(t, "200.00", totals.Subtotal.String())
		assert.Equal(t, "20.00", totals.TaxAmount.String())
		assert.Equal(t, "50.00", totals.DeliveryCharge.String())
		assert.Equal(t, "0.00", totals.DiscountAmount.String())
		assert.Equal(t, "0.00", totals.CouponDiscount.String())
		assert.Equal(t, "270.00", totals.TotalAmount.String())
		require.NoError(t, totals.Validate())
	})

	t.Run("should waive delivery exactly at the threshold", func(t *testing.T) {
		// boundary is >=, not >
		totals, err := calc.Calculate([]services.PricingLine{line(t, "500.00", 1)}, nil)

		require.NoError(t, err)
		assert.Equal(t, "0.00", totals.DeliveryCharge.String())
		assert.Equal(t, "550.00", totals.TotalAmount.String())
	})

	t.Run("should waive delivery above the threshold", func(t *testing.T) {
		totals, err := calc.Calculate([]services.PricingLine{line(t, "600.00", 1)}, nil)

		require.NoError(t, err)
		assert.Equal(t, "0.00", totals.DeliveryCharge.String())
	})

	t.Run("should charge the flat fee one unit below the threshold", func(t *testing.T) {
		totals, err := calc.Calculate([]services.PricingLine{line(t, "499.99", 1)}, nil)

		require.NoError(t, err)
		assert.Equal(t, "50.00", totals.DeliveryCharge.String())
	})

	t.Run("should sum multiple lines into the subtotal", func(t *testing.T) {
		totals, err := calc.Calculate([]services.PricingLine{
			line(t, "100.00", 2),
			line(t, "49.50", 3),
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "348.50", totals.Subtotal.String())
		require.NoError(t, totals.Validate())
	})

	t.Run("should round tax to currency precision", func(t *testing.T) {
		totals, err := calc.Calculate([]services.PricingLine{line(t, "33.33", 1)}, nil)

		require.NoError(t, err)
		// 3.333 rounds to 3.33
		assert.Equal(t, "3.33", totals.TaxAmount.String())
		require.NoError(t, totals.Validate())
	})

	t.Run("should apply an already-validated coupon discount", func(t *testing.T) {
		coupon := &services.CouponDiscount{DiscountAmount: kernel.MustMoneyFromString("30.00")}

		totals, err := calc.Calculate([]services.PricingLine{line(t, "100.00", 2)}, coupon)

		require.NoError(t, err)
		assert.Equal(t, "30.00", totals.CouponDiscount.String())
		assert.Equal(t, "240.00", totals.TotalAmount.String())
		require.NoError(t, totals.Validate())
	})

	t.Run("should waive delivery for a free-shipping coupon", func(t *testing.T) {
		coupon := &services.CouponDiscount{IsFreeShipping: true}

		totals, err := calc.Calculate([]services.PricingLine{line(t, "100.00", 2)}, coupon)

		require.NoError(t, err)
		assert.Equal(t, "0.00", totals.DeliveryCharge.String())
		assert.Equal(t, "220.00", totals.TotalAmount.String())
	})

	t.Run("should clamp an oversized coupon so the total never goes negative", func(t *testing.T) {
		coupon := &services.CouponDiscount{DiscountAmount: kernel.MustMoneyFromString("9999.00")}

		totals, err := calc.Calculate([]services.PricingLine{line(t, "10.00", 1)}, coupon)

		require.NoError(t, err)
		assert.Equal(t, "0.00", totals.TotalAmount.String())
		assert.False(t, totals.TotalAmount.IsNegative())
		require.NoError(t, totals.Validate())
	})

	t.Run("should fail on an empty cart", func(t *testing.T) {
		_, err := calc.Calculate(nil, nil)

		require.ErrorIs(t, err, services.ErrCartIsEmpty)
	})

	t.Run("should reject a line with a non-positive quantity", func(t *testing.T) {
		_, err := calc.Calculate([]services.PricingLine{line(t, "10.00", 0)}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		lines := []services.PricingLine{line(t, "123.45", 7)}

		first, err := calc.Calculate(lines, nil)
		require.NoError(t, err)
		second, err := calc.Calculate(lines, nil)
		require.NoError(t, err)

		assert.Equal(t, first.TotalAmount.String(), second.TotalAmount.String())
		assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	})
}
