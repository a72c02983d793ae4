package order_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should compute the line total from unit price and quantity", func(t *testing.T) {
		item, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Filter Coffee 500g", "/images/coffee.png",
			3, kernel.MustMoneyFromString("249.50"),
		)

		require.NoError(t, err)
		assert.Equal(t, "748.50", item.TotalPrice().String())
		assert.Equal(t, 3, item.Quantity())
		require.NoError(t, item.Validate())
	})

	t.Run("should reject a non-positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			_, err := order.NewItem(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				"Filter Coffee 500g", "",
				quantity, kernel.MustMoneyFromString("249.50"),
			)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "quantity %d", quantity)
		}
	})

	t.Run("should reject an empty product name", func(t *testing.T) {
		_, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", "", 1, kernel.MustMoneyFromString("10.00"),
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a negative unit price", func(t *testing.T) {
		_, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Filter Coffee 500g", "", 1, kernel.MustMoneyFromString("-1.00"),
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreItem(t *testing.T) {
	t.Run("should reject a persisted total that no longer balances", func(t *testing.T) {
		_, err := order.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Filter Coffee 500g", "", 2,
			kernel.MustMoneyFromString("100.00"),
			kernel.MustMoneyFromString("150.00"),
		)

		require.ErrorIs(t, err, order.ErrItemTotalPriceMismatch)
	})
}

func TestItem_Validate(t *testing.T) {
	t.Run("should reject a zero-value item", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}
