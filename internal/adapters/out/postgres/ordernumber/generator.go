// Package ordernumber issues date-scoped sequential order numbers from a
// per-day counter table.
package ordernumber

import (
	"context"
	"fmt"
	"time"

	"commerce/internal/core/ports"

	"gorm.io/gorm"
)

// CounterDTO represents the per-day order number counter row.
type CounterDTO struct {
	Day       string `gorm:"size:8;primaryKey"`
	LastValue int64
}

// TableName specifies the database table name for order number counters.
func (CounterDTO) TableName() string {
	return "order_number_counters"
}

// GormOrderNumberGenerator implements ports.OrderNumberGenerator with an
// atomic upsert on the counter table. The increment happens at the database,
// so concurrent checkouts across service instances each receive a distinct
// sequence value.
type GormOrderNumberGenerator struct {
	db *gorm.DB
}

// NewGormOrderNumberGenerator creates a generator backed by the given
// connection, usually a running transaction.
func NewGormOrderNumberGenerator(db *gorm.DB) *GormOrderNumberGenerator {
	return &GormOrderNumberGenerator{db: db}
}

// Next returns the next number for the UTC day of the given instant, in the
// ORD-YYYYMMDD-NNNNN format.
func (g *GormOrderNumberGenerator) Next(ctx context.Context, day time.Time) (string, error) {
	dayKey := day.UTC().Format("20060102")

	var lastValue int64
	err := g.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_counters (day, last_value)
		VALUES (?, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_value = order_number_counters.last_value + 1
		RETURNING last_value
	`, dayKey).Scan(&lastValue).Error
	if err != nil {
		return "", fmt.Errorf("%w: %w", ports.ErrNumberGeneration, err)
	}

	return fmt.Sprintf("ORD-%s-%05d", dayKey, lastValue), nil
}
