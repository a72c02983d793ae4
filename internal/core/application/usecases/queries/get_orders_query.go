// Package queries contains read-only operations in the CQRS architecture.
// Query handlers own a database connection and read projection rows directly,
// bypassing the aggregate and the unit of work.
package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

const (
	minPageSize = 1
	maxPageSize = 100
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves a page of the user's order history, newest first,
// optionally filtered by lifecycle status.
//
// Example:
//
//	query, err := NewGetOrdersQuery(userID, 1, 20, "DELIVERED")
//	if err != nil {
//	    return fmt.Errorf("invalid listing request: %w", err)
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("page %d of %d\n", page.Pagination.CurrentPage, page.Pagination.TotalPages)
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	userID       kernel.UUID
	page         int
	pageSize     int
	statusFilter order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a page of the user's orders.
// statusFilter is optional: an empty string means no filtering; any other
// value must be a known lifecycle status string.
func NewGetOrdersQuery(userID kernel.UUID, page, pageSize int, statusFilter string) (GetOrdersQuery, error) {
	ordersQuery := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ordersQuery.setUserID(userID),
		ordersQuery.setPage(page),
		ordersQuery.setPageSize(pageSize),
		ordersQuery.setStatusFilter(statusFilter),
	); err != nil {
		return GetOrdersQuery{}, err
	}

	return ordersQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are listed.
func (q GetOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Page returns the requested page number, starting at 1.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the requested page size.
func (q GetOrdersQuery) PageSize() int {
	return q.pageSize
}

// StatusFilter returns the lifecycle status to filter by; order.Unknown means
// no filtering.
func (q GetOrdersQuery) StatusFilter() order.Status {
	return q.statusFilter
}

func (q *GetOrdersQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

func (q *GetOrdersQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}

	q.page = page
	return nil
}

func (q *GetOrdersQuery) setPageSize(pageSize int) error {
	if pageSize < minPageSize || pageSize > maxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", pageSize, minPageSize, maxPageSize)
	}

	q.pageSize = pageSize
	return nil
}

func (q *GetOrdersQuery) setStatusFilter(statusFilter string) error {
	if statusFilter == "" {
		q.statusFilter = order.Unknown
		return nil
	}

	status, err := order.StatusFromString(statusFilter)
	if err != nil {
		return err
	}

	q.statusFilter = status
	return nil
}

// OrderSummary is one row of the user's order history.
type OrderSummary struct {
	ID                    kernel.UUID
	OrderNumber           string
	Status                string
	PaymentMethod         string
	PaymentStatus         string
	TotalAmount           kernel.Money
	ItemCount             int
	EstimatedDeliveryDate time.Time
	CreatedAt             time.Time
}

// Pagination describes the position of a page within the full result set.
type Pagination struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

// GetOrdersQueryResponse is one page of order history with its pagination
// metadata.
type GetOrdersQueryResponse struct {
	Orders     []OrderSummary
	Pagination Pagination
}
