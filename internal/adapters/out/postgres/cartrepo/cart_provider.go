// Package cartrepo reads and clears the customer's active cart. The cart rows
// are joined with the catalog at read time, so checkout always prices the
// product's current name, image, and unit price.
package cartrepo

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemDTO represents one row of a user's active cart.
type CartItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for cart rows.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartProvider implements ports.CartProvider against the platform's own
// cart and product tables.
type GormCartProvider struct {
	db *gorm.DB
}

// NewGormCartProvider creates a cart provider backed by the given connection.
func NewGormCartProvider(db *gorm.DB) *GormCartProvider {
	return &GormCartProvider{db: db}
}

// GetCart reads the user's active cart joined with the catalog. An empty cart
// returns an empty snapshot, not an error.
func (p *GormCartProvider) GetCart(ctx context.Context, userID kernel.UUID) (ports.CartSnapshot, error) {
	if err := userID.Validate(); err != nil {
		return ports.CartSnapshot{}, err
	}

	rows, err := p.db.WithContext(ctx).Raw(`
		SELECT
			c.product_id,
			p.name,
			p.image_url,
			p.price,
			c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.created_at
	`, userID.String()).Rows()
	if err != nil {
		return ports.CartSnapshot{}, err
	}
	defer rows.Close()

	snapshot := ports.CartSnapshot{
		Items:       make([]ports.CartItem, 0),
		TotalAmount: kernel.ZeroMoney(),
	}
	for rows.Next() {
		var item ports.CartItem
		var productID uuid.UUID
		var price decimal.Decimal

		err = rows.Scan(&productID, &item.ProductName, &item.ProductImage, &price, &item.Quantity)
		if err != nil {
			return ports.CartSnapshot{}, err
		}

		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return ports.CartSnapshot{}, idErr
		}
		item.ProductID = id
		item.UnitPrice = kernel.NewMoneyFromDecimal(price)

		snapshot.Items = append(snapshot.Items, item)
		snapshot.TotalAmount = snapshot.TotalAmount.Add(item.UnitPrice.MulInt(item.Quantity))
	}

	if err = rows.Err(); err != nil {
		return ports.CartSnapshot{}, err
	}

	return snapshot, nil
}

// Clear removes every cart row of the user. Clearing an already empty cart is
// a no-op.
func (p *GormCartProvider) Clear(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	return p.db.WithContext(ctx).Delete(&CartItemDTO{}, "user_id = ?", userID.Bytes()).Error
}
