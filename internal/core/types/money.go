// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; all price, revenue
// and profit arithmetic goes through this type end-to-end.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits stored for prices and
// amounts (matches NUMERIC(10,2) in the database).
const MoneyScale = 2

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MoneyFromInt creates a Money value from an integer amount of major units.
func MoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney rounds to the storage scale (2 fractional digits, half up).
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// MulInt multiplies a Money value by an integer quantity without passing
// through a binary float intermediate.
func MulInt(m Money, qty int) Money {
	return m.Mul(decimal.NewFromInt(int64(qty)))
}
