package productrepo

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/ports"

	"gorm.io/gorm"
)

// GormStockReservation implements ports.StockReservation with conditional
// decrements. Each line runs
//
//	UPDATE products SET stock_quantity = stock_quantity - ?
//	WHERE id = ? AND stock_quantity >= ?
//
// so the check and the decrement are one atomic statement; stock can never
// go negative, and two requests racing for the last unit resolve to exactly
// one winner at the database. Run it inside a transaction so a refused line
// rolls back the lines already decremented.
type GormStockReservation struct {
	db *gorm.DB
}

// NewGormStockReservation creates a stock reservation backed by the given
// connection, usually a running transaction.
func NewGormStockReservation(db *gorm.DB) *GormStockReservation {
	return &GormStockReservation{db: db}
}

// Reserve decrements stock for every item or fails with
// ports.ErrInsufficientStock on the first line that cannot be satisfied.
func (r *GormStockReservation) Reserve(ctx context.Context, items []ports.ReservationItem) error {
	for _, item := range items {
		result := r.db.WithContext(ctx).Exec(`
			UPDATE products
			SET stock_quantity = stock_quantity - ?, updated_at = ?
			WHERE id = ? AND stock_quantity >= ?
		`, item.Quantity, time.Now().UTC(), item.ProductID.Bytes(), item.Quantity)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: product %s, quantity %d",
				ports.ErrInsufficientStock, item.ProductID.String(), item.Quantity)
		}
	}

	return nil
}
