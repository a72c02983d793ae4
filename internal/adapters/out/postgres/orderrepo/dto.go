// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns use numeric(12,2) so stored amounts carry exactly the scale
// the domain computes. Line items live in their own table and are written
// together with the order row.
type OrderDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber           string    `gorm:"size:18;uniqueIndex"`
	UserID                uuid.UUID `gorm:"type:uuid;index"`
	AddressID             uuid.UUID `gorm:"type:uuid"`
	Status                string    `gorm:"size:32;index"`
	PaymentMethod         string    `gorm:"size:16"`
	PaymentStatus         string    `gorm:"size:16"`
	SpecialInstructions   string
	Subtotal              decimal.Decimal `gorm:"type:numeric(12,2)"`
	TaxAmount             decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryCharge        decimal.Decimal `gorm:"type:numeric(12,2)"`
	DiscountAmount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	CouponDiscount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalAmount           decimal.Decimal `gorm:"type:numeric(12,2)"`
	EstimatedDeliveryDate time.Time
	DeliveredAt           *time.Time
	CancelledAt           *time.Time
	CancellationReason    string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	Items                 []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one frozen line item row of an order.
type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ProductID    uuid.UUID `gorm:"type:uuid"`
	ProductName  string
	ProductImage string
	Quantity     int
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      item.OrderID().Bytes(),
			ProductID:    item.ProductID().Bytes(),
			ProductName:  item.ProductName(),
			ProductImage: item.ProductImage(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Decimal(),
			TotalPrice:   item.TotalPrice().Decimal(),
		})
	}

	totals := aggregate.Totals()
	return OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderNumber:           aggregate.OrderNumber(),
		UserID:                aggregate.UserID().Bytes(),
		AddressID:             aggregate.AddressID().Bytes(),
		Status:                aggregate.Status().String(),
		PaymentMethod:         aggregate.PaymentMethod().String(),
		PaymentStatus:         aggregate.PaymentStatus().String(),
		SpecialInstructions:   aggregate.SpecialInstructions(),
		Subtotal:              totals.Subtotal.Decimal(),
		TaxAmount:             totals.TaxAmount.Decimal(),
		DeliveryCharge:        totals.DeliveryCharge.Decimal(),
		DiscountAmount:        totals.DiscountAmount.Decimal(),
		CouponDiscount:        totals.CouponDiscount.Decimal(),
		TotalAmount:           totals.TotalAmount.Decimal(),
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
		DeliveredAt:           aggregate.DeliveredAt(),
		CancelledAt:           aggregate.CancelledAt(),
		CancellationReason:    aggregate.CancellationReason(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		Items:                 items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder, which re-validates
// every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		OrderNumber:         dto.OrderNumber,
		UserID:              userID,
		AddressID:           addressID,
		Status:              status,
		PaymentMethod:       paymentMethod,
		PaymentStatus:       paymentStatus,
		SpecialInstructions: dto.SpecialInstructions,
		Totals: order.Totals{
			Subtotal:       kernel.NewMoneyFromDecimal(dto.Subtotal),
			TaxAmount:      kernel.NewMoneyFromDecimal(dto.TaxAmount),
			DeliveryCharge: kernel.NewMoneyFromDecimal(dto.DeliveryCharge),
			DiscountAmount: kernel.NewMoneyFromDecimal(dto.DiscountAmount),
			CouponDiscount: kernel.NewMoneyFromDecimal(dto.CouponDiscount),
			TotalAmount:    kernel.NewMoneyFromDecimal(dto.TotalAmount),
		},
		Items:                 items,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		DeliveredAt:           dto.DeliveredAt,
		CancelledAt:           dto.CancelledAt,
		CancellationReason:    dto.CancellationReason,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		orderID,
		productID,
		dto.ProductName,
		dto.ProductImage,
		dto.Quantity,
		kernel.NewMoneyFromDecimal(dto.UnitPrice),
		kernel.NewMoneyFromDecimal(dto.TotalPrice),
	)
}
