package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a dollar amount with exact decimal precision. All
// deterministic planning math stays in Money; only the Monte Carlo engine
// works in float64, and Float64/New are the two crossing points of that
// boundary.
type Money struct {
	decimal.Decimal
}

// New creates a Money amount from a float64. Intended for converting
// simulation output back to the precise representation; deterministic
// inputs should come from FromString or FromDecimal.
func New(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromInt creates a Money amount from whole dollars.
func FromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// FromString parses a Money amount from its string form.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Float64 converts to float64 for the simulation boundary. Precision loss
// here is acceptable: Monte Carlo output is statistical.
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Float64()
	return f
}

// Round rounds to cents, halves away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Add adds another amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor.
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// GrowPct applies a percentage growth rate, e.g. GrowPct(3) adds 3%.
func (m Money) GrowPct(pct decimal.Decimal) Money {
	factor := decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
	return Money{m.Decimal.Mul(factor)}
}

// Pct returns the given percentage of the amount, e.g. Pct(4) is 4%.
func (m Money) Pct(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(decimal.NewFromInt(100))}
}

// GreaterThan reports whether this amount exceeds another.
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan reports whether this amount is below another.
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal reports whether two amounts are equal.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsPositive reports whether the amount is positive.
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// IsNegative reports whether the amount is negative.
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// String returns the amount fixed to cents.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format returns the amount with a leading dollar sign.
func (m Money) Format() string {
	if m.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2)
	}
	return "$" + m.String()
}
