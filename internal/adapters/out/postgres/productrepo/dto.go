// Package productrepo persists the product catalog rows the order engine
// reserves stock against. Only the stock-affecting operations live here;
// catalog management itself is a separate surface.
package productrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"size:255"`
	ImageURL      string
	Price         decimal.Decimal `gorm:"type:numeric(12,2)"`
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}
