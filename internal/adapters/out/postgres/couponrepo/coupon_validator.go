// Package couponrepo validates coupon codes against the platform's coupon
// table and computes the discount they grant.
package couponrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount types supported by the coupon table.
const (
	DiscountTypeFlat         = "FLAT"
	DiscountTypePercent      = "PERCENT"
	DiscountTypeFreeShipping = "FREE_SHIPPING"
)

// CouponDTO represents one coupon row.
type CouponDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code           string          `gorm:"size:64;uniqueIndex"`
	DiscountType   string          `gorm:"size:16"`
	DiscountValue  decimal.Decimal `gorm:"type:numeric(12,2)"`
	MinOrderAmount decimal.Decimal `gorm:"type:numeric(12,2)"`
	ValidFrom      time.Time
	ValidUntil     time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for coupon rows.
func (CouponDTO) TableName() string {
	return "coupons"
}

// GormCouponValidator implements ports.CouponValidator against the platform's
// own coupon table.
type GormCouponValidator struct {
	db *gorm.DB
}

// NewGormCouponValidator creates a coupon validator backed by the given
// connection.
func NewGormCouponValidator(db *gorm.DB) *GormCouponValidator {
	return &GormCouponValidator{db: db}
}

// Apply validates the code against the order's subtotal and returns the
// discount it grants. Unknown, inactive, expired, and below-minimum coupons
// all fail with ports.ErrInvalidCoupon.
func (v *GormCouponValidator) Apply(
	ctx context.Context, code string, subtotal kernel.Money, _ []ports.CartItem,
) (ports.CouponResult, error) {
	var dto CouponDTO
	err := v.db.WithContext(ctx).First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CouponResult{}, fmt.Errorf("%w: unknown code %q", ports.ErrInvalidCoupon, code)
		}
		return ports.CouponResult{}, err
	}

	now := time.Now().UTC()
	switch {
	case !dto.IsActive:
		return ports.CouponResult{}, fmt.Errorf("%w: code %q is inactive", ports.ErrInvalidCoupon, code)
	case now.Before(dto.ValidFrom) || now.After(dto.ValidUntil):
		return ports.CouponResult{}, fmt.Errorf("%w: code %q is outside its validity window", ports.ErrInvalidCoupon, code)
	case subtotal.Decimal().LessThan(dto.MinOrderAmount):
		return ports.CouponResult{}, fmt.Errorf("%w: order subtotal %s is below the %s minimum for code %q",
			ports.ErrInvalidCoupon, subtotal, dto.MinOrderAmount.StringFixed(2), code)
	}

	switch dto.DiscountType {
	case DiscountTypeFlat:
		return ports.CouponResult{DiscountAmount: kernel.NewMoneyFromDecimal(dto.DiscountValue)}, nil
	case DiscountTypePercent:
		rate := dto.DiscountValue.Div(decimal.NewFromInt(100))
		return ports.CouponResult{DiscountAmount: subtotal.MulRate(rate)}, nil
	case DiscountTypeFreeShipping:
		return ports.CouponResult{DiscountAmount: kernel.ZeroMoney(), IsFreeShipping: true}, nil
	default:
		return ports.CouponResult{}, fmt.Errorf("%w: code %q has unsupported discount type %q",
			ports.ErrInvalidCoupon, code, dto.DiscountType)
	}
}
