package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrGetOrderByIDQueryIsNotConstructed = errors.New(
	"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
)

// GetOrderByIDQuery retrieves the full detail of a single order, scoped to
// its owning user. An order that does not exist and an order owned by someone
// else are indistinguishable to the caller.
type GetOrderByIDQuery struct { //nolint:recvcheck //using for validation
	userID  kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order's detail.
func NewGetOrderByIDQuery(userID, orderID kernel.UUID) (GetOrderByIDQuery, error) {
	detailQuery := GetOrderByIDQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		detailQuery.setUserID(userID),
		detailQuery.setOrderID(orderID),
	); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return detailQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// UserID returns the identifier of the requesting user.
func (q GetOrderByIDQuery) UserID() kernel.UUID {
	return q.userID
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderByIDQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

func (q *GetOrderByIDQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// OrderItemDetail is one frozen line item of an order.
type OrderItemDetail struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	ProductName  string
	ProductImage string
	Quantity     int
	UnitPrice    kernel.Money
	TotalPrice   kernel.Money
}

// OrderTotalsDetail is the priced breakdown of an order.
type OrderTotalsDetail struct {
	Subtotal       kernel.Money
	TaxAmount      kernel.Money
	DeliveryCharge kernel.Money
	DiscountAmount kernel.Money
	CouponDiscount kernel.Money
	TotalAmount    kernel.Money
}

// GetOrderByIDQueryResponse is the full detail of one order.
type GetOrderByIDQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	AddressID             kernel.UUID
	Status                string
	PaymentMethod         string
	PaymentStatus         string
	SpecialInstructions   string
	Totals                OrderTotalsDetail
	Items                 []OrderItemDetail
	EstimatedDeliveryDate time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancellationReason    string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
