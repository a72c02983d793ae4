// Package http exposes the order engine over a REST API.
// It coordinates between Echo handlers and application use cases, translating
// domain error kinds into HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the authenticated customer's identity. Authentication
// itself happens upstream; the API trusts the header the gateway injects.
const userIDHeader = "X-User-ID"

// Server handles HTTP requests for the order API.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrdersHandler    queries.GetOrdersQueryHandler
	getOrderByIDHandler queries.GetOrderByIDQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderByIDHandler:      getOrderByIDHandler,
	}
}

// RegisterRoutes mounts the order API on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderID", s.GetOrderByID)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.PATCH("/admin/orders/:orderID/status", s.UpdateOrderStatus)
}

// ErrorResponse is the API's error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	AddressID           string `json:"address_id"`
	PaymentMethod       string `json:"payment_method"`
	CouponCode          string `json:"coupon_code,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/{id}/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// UpdateOrderStatusRequest is the body of PATCH /api/v1/admin/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

// OrderItemResponse is one line item in an order payload.
type OrderItemResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	TotalPrice   string `json:"total_price"`
}

// OrderTotalsResponse is the priced breakdown in an order payload.
type OrderTotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"tax_amount"`
	DeliveryCharge string `json:"delivery_charge"`
	DiscountAmount string `json:"discount_amount"`
	CouponDiscount string `json:"coupon_discount"`
	TotalAmount    string `json:"total_amount"`
}

// AddressResponse is the delivery address snapshot attached to a newly
// created order.
type AddressResponse struct {
	ID      string `json:"id"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// OrderResponse is the full order payload returned by the command and detail
// endpoints.
type OrderResponse struct {
	ID                    string              `json:"id"`
	OrderNumber           string              `json:"order_number"`
	AddressID             string              `json:"address_id"`
	Address               *AddressResponse    `json:"address,omitempty"`
	Status                string              `json:"status"`
	PaymentMethod         string              `json:"payment_method"`
	PaymentStatus         string              `json:"payment_status"`
	SpecialInstructions   string              `json:"special_instructions,omitempty"`
	Totals                OrderTotalsResponse `json:"totals"`
	Items                 []OrderItemResponse `json:"items"`
	EstimatedDeliveryDate time.Time           `json:"estimated_delivery_date"`
	DeliveredAt           *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt           *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason    string              `json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// OrderSummaryResponse is one row of the listing payload.
type OrderSummaryResponse struct {
	ID                    string    `json:"id"`
	OrderNumber           string    `json:"order_number"`
	Status                string    `json:"status"`
	PaymentMethod         string    `json:"payment_method"`
	PaymentStatus         string    `json:"payment_status"`
	TotalAmount           string    `json:"total_amount"`
	ItemCount             int       `json:"item_count"`
	EstimatedDeliveryDate time.Time `json:"estimated_delivery_date"`
	CreatedAt             time.Time `json:"created_at"`
}

// PaginationResponse is the listing payload's page metadata.
type PaginationResponse struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// OrderListResponse is the body of GET /api/v1/orders.
type OrderListResponse struct {
	Orders     []OrderSummaryResponse `json:"orders"`
	Pagination PaginationResponse     `json:"pagination"`
}

// CreateOrder handles POST /api/v1/orders - places a new order from the
// user's active cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	userID, err := requestUserID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+userIDHeader+" header")
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return badRequest(ctx, "Invalid address_id")
	}

	cmd, err := commands.NewCreateOrderCommand(
		userID, addressID, req.PaymentMethod, req.CouponCode, req.SpecialInstructions,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := orderToResponse(result.Order)
	response.Address = addressToResponse(result.Address)
	return ctx.JSON(http.StatusCreated, response)
}

// GetOrders handles GET /api/v1/orders - lists the user's order history.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, err := requestUserID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+userIDHeader+" header")
	}

	page, err := queryInt(ctx, "page", 1)
	if err != nil {
		return badRequest(ctx, "Invalid page parameter")
	}
	pageSize, err := queryInt(ctx, "page_size", 10)
	if err != nil {
		return badRequest(ctx, "Invalid page_size parameter")
	}

	query, err := queries.NewGetOrdersQuery(userID, page, pageSize, ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "Invalid listing request: "+err.Error())
	}

	result, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	orders := make([]OrderSummaryResponse, len(result.Orders))
	for i, summary := range result.Orders {
		orders[i] = OrderSummaryResponse{
			ID:                    summary.ID.String(),
			OrderNumber:           summary.OrderNumber,
			Status:                summary.Status,
			PaymentMethod:         summary.PaymentMethod,
			PaymentStatus:         summary.PaymentStatus,
			TotalAmount:           summary.TotalAmount.String(),
			ItemCount:             summary.ItemCount,
			EstimatedDeliveryDate: summary.EstimatedDeliveryDate,
			CreatedAt:             summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, OrderListResponse{
		Orders: orders,
		Pagination: PaginationResponse{
			CurrentPage: result.Pagination.CurrentPage,
			PageSize:    result.Pagination.PageSize,
			TotalItems:  result.Pagination.TotalItems,
			TotalPages:  result.Pagination.TotalPages,
		},
	})
}

// GetOrderByID handles GET /api/v1/orders/:orderID - returns one order's
// detail, scoped to the requesting user.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	userID, err := requestUserID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+userIDHeader+" header")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderByIDQuery(userID, orderID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	detail, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]OrderItemResponse, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = OrderItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.String(),
			TotalPrice:   item.TotalPrice.String(),
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                  detail.ID.String(),
		OrderNumber:         detail.OrderNumber,
		AddressID:           detail.AddressID.String(),
		Status:              detail.Status,
		PaymentMethod:       detail.PaymentMethod,
		PaymentStatus:       detail.PaymentStatus,
		SpecialInstructions: detail.SpecialInstructions,
		Totals: OrderTotalsResponse{
			Subtotal:       detail.Totals.Subtotal.String(),
			TaxAmount:      detail.Totals.TaxAmount.String(),
			DeliveryCharge: detail.Totals.DeliveryCharge.String(),
			DiscountAmount: detail.Totals.DiscountAmount.String(),
			CouponDiscount: detail.Totals.CouponDiscount.String(),
			TotalAmount:    detail.Totals.TotalAmount.String(),
		},
		Items:                 items,
		EstimatedDeliveryDate: detail.EstimatedDeliveryDate,
		DeliveredAt:           detail.DeliveredAt,
		CancelledAt:           detail.CancelledAt,
		CancellationReason:    detail.CancellationReason,
		CreatedAt:             detail.CreatedAt,
		UpdatedAt:             detail.UpdatedAt,
	})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel - customer
// cancellation of their own order. Replies with the cancelled order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	userID, err := requestUserID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+userIDHeader+" header")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(userID, orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation request: "+err.Error())
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:orderID/status -
// operator-driven lifecycle transitions. Replies with the updated order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, req.Status, req.CancellationReason)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items[i] = OrderItemResponse{
			ID:           item.ID().String(),
			ProductID:    item.ProductID().String(),
			ProductName:  item.ProductName(),
			ProductImage: item.ProductImage(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().String(),
			TotalPrice:   item.TotalPrice().String(),
		}
	}

	totals := aggregate.Totals()
	return OrderResponse{
		ID:                  aggregate.ID().String(),
		OrderNumber:         aggregate.OrderNumber(),
		AddressID:           aggregate.AddressID().String(),
		Status:              aggregate.Status().String(),
		PaymentMethod:       aggregate.PaymentMethod().String(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Totals: OrderTotalsResponse{
			Subtotal:       totals.Subtotal.String(),
			TaxAmount:      totals.TaxAmount.String(),
			DeliveryCharge: totals.DeliveryCharge.String(),
			DiscountAmount: totals.DiscountAmount.String(),
			CouponDiscount: totals.CouponDiscount.String(),
			TotalAmount:    totals.TotalAmount.String(),
		},
		Items:                 items,
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
		DeliveredAt:           aggregate.DeliveredAt(),
		CancelledAt:           aggregate.CancelledAt(),
		CancellationReason:    aggregate.CancellationReason(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}
}

func addressToResponse(address ports.Address) *AddressResponse {
	return &AddressResponse{
		ID:      address.ID.String(),
		Line1:   address.Line1,
		Line2:   address.Line2,
		City:    address.City,
		State:   address.State,
		Pincode: address.Pincode,
		Phone:   address.Phone,
	}
}

func requestUserID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(userIDHeader))
}

func queryInt(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application error kinds to HTTP statuses: unknown resources
// are 404, rejected input is 400, business-rule conflicts are 409, anything
// else is 500.
func writeError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, ports.ErrAddressNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrCartIsEmpty),
		errors.Is(err, ports.ErrInvalidCoupon),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderNotCancellable):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
