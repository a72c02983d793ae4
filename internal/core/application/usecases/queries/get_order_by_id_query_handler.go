package queries

import (
	"context"
	"database/sql"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler reads one order's full detail from the database.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the detail query. Returns errs.ErrObjectNotFound when no
// order with the given id belongs to the user.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response, err := h.readOrder(ctx, query)
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	items, err := h.readItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderByIDQueryHandler) readOrder(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			address_id,
			status,
			payment_method,
			payment_status,
			special_instructions,
			subtotal,
			tax_amount,
			delivery_charge,
			discount_amount,
			coupon_discount,
			total_amount,
			estimated_delivery_date,
			delivered_at,
			cancelled_at,
			cancellation_reason,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND user_id = ?
	`, query.OrderID().String(), query.UserID().String()).Row()

	var response GetOrderByIDQueryResponse
	var id, addressID uuid.UUID
	var subtotal, taxAmount, deliveryCharge, discountAmount, couponDiscount, totalAmount decimal.Decimal
	var deliveredAt, cancelledAt sql.NullTime

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&addressID,
		&response.Status,
		&response.PaymentMethod,
		&response.PaymentStatus,
		&response.SpecialInstructions,
		&subtotal,
		&taxAmount,
		&deliveryCharge,
		&discountAmount,
		&couponDiscount,
		&totalAmount,
		&response.EstimatedDeliveryDate,
		&deliveredAt,
		&cancelledAt,
		&response.CancellationReason,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	deliveryAddressID, err := kernel.UUIDFromBytes(addressID[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response.ID = orderID
	response.AddressID = deliveryAddressID
	response.Totals = OrderTotalsDetail{
		Subtotal:       kernel.NewMoneyFromDecimal(subtotal),
		TaxAmount:      kernel.NewMoneyFromDecimal(taxAmount),
		DeliveryCharge: kernel.NewMoneyFromDecimal(deliveryCharge),
		DiscountAmount: kernel.NewMoneyFromDecimal(discountAmount),
		CouponDiscount: kernel.NewMoneyFromDecimal(couponDiscount),
		TotalAmount:    kernel.NewMoneyFromDecimal(totalAmount),
	}
	if deliveredAt.Valid {
		response.DeliveredAt = &deliveredAt.Time
	}
	if cancelledAt.Valid {
		response.CancelledAt = &cancelledAt.Time
	}

	return response, nil
}

func (h GetOrderByIDQueryHandler) readItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemDetail, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			product_image,
			quantity,
			unit_price,
			total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemDetail, 0)
	for rows.Next() {
		var item OrderItemDetail
		var id, productID uuid.UUID
		var unitPrice, totalPrice decimal.Decimal

		err = rows.Scan(
			&id,
			&productID,
			&item.ProductName,
			&item.ProductImage,
			&item.Quantity,
			&unitPrice,
			&totalPrice,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		itemProductID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}

		item.ID = itemID
		item.ProductID = itemProductID
		item.UnitPrice = kernel.NewMoneyFromDecimal(unitPrice)
		item.TotalPrice = kernel.NewMoneyFromDecimal(totalPrice)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
