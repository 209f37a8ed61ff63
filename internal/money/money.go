// Package money converts between the integer cents stored by the API and the
// decimal currency amounts used by clients.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal amount to integer cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromCents converts integer cents to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// OptionalToCents is ToCents for optional amounts. A nil amount stays nil.
func OptionalToCents(amount *decimal.Decimal) *int64 {
	if amount == nil {
		return nil
	}
	cents := ToCents(*amount)
	return &cents
}

// OptionalFromCents is FromCents for optional amounts. A nil value stays nil.
func OptionalFromCents(cents *int64) *decimal.Decimal {
	if cents == nil {
		return nil
	}
	amount := FromCents(*cents)
	return &amount
}

// ParseCents parses a decimal string such as "12.5" into cents.
func ParseCents(value string) (int64, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	return ToCents(amount), nil
}

// Format renders cents as a fixed two-decimal string.
func Format(cents int64) string {
	return FromCents(cents).StringFixed(2)
}
