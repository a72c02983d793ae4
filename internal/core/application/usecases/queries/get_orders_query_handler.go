package queries

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads pages of a user's order history from the
// database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Orders are returned newest first;
// a page past the end of the result set is empty, not an error.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	statusArg := statusFilterArg(query.StatusFilter())

	var totalItems int
	err := h.db.WithContext(ctx).Raw(`
		SELECT count(*)
		FROM orders
		WHERE user_id = ?
		  AND (? = '' OR status = ?)
	`, query.UserID().String(), statusArg, statusArg).Scan(&totalItems).Error
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	skip := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.payment_method,
			o.payment_status,
			o.total_amount,
			(SELECT count(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.estimated_delivery_date,
			o.created_at
		FROM orders o
		WHERE o.user_id = ?
		  AND (? = '' OR o.status = ?)
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, query.UserID().String(), statusArg, statusArg, query.PageSize(), skip).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0, query.PageSize())
	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID
		var totalAmount decimal.Decimal

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&summary.Status,
			&summary.PaymentMethod,
			&summary.PaymentStatus,
			&totalAmount,
			&summary.ItemCount,
			&summary.EstimatedDeliveryDate,
			&summary.CreatedAt,
		)
		if err != nil {
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}
		summary.ID = orderID
		summary.TotalAmount = kernel.NewMoneyFromDecimal(totalAmount)
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	totalPages := totalItems / query.PageSize()
	if totalItems%query.PageSize() != 0 {
		totalPages++
	}

	return GetOrdersQueryResponse{
		Orders: orders,
		Pagination: Pagination{
			CurrentPage: query.Page(),
			PageSize:    query.PageSize(),
			TotalItems:  totalItems,
			TotalPages:  totalPages,
		},
	}, nil
}

func statusFilterArg(status order.Status) string {
	if status == order.Unknown {
		return ""
	}
	return status.String()
}
