package kernel

import (
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept for monetary amounts.
const moneyScale = 2

// Money is a value object representing a fixed-point monetary amount at
// currency precision (two decimal places). All arithmetic stays in decimal
// space; a binary float never enters the money path.
//
// Money is immutable: every operation returns a new value rounded to currency
// precision. The zero value is a valid 0.00 amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns the 0.00 amount.
func ZeroMoney() Money {
	return Money{}
}

// NewMoneyFromDecimal creates a Money from a decimal, rounding to currency precision.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(moneyScale)}
}

// NewMoneyFromString parses a decimal string such as "100.00" into a Money.
// Returns a ValueIsInvalidError if the string is not a valid decimal number.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoneyFromDecimal(d), nil
}

// MustMoneyFromString parses a decimal string and panics on failure.
// Intended for constants and tests where the literal is known to be valid.
func MustMoneyFromString(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns the amount multiplied by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRate returns the amount multiplied by a fractional rate,
// rounded to currency precision.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(moneyScale)}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two decimal places, e.g. "270.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
