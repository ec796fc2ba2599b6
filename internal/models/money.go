package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDecimalPlaces is the smallest currency unit used when rounding for display.
const DefaultDecimalPlaces int32 = 2

// AddMoney adds two monetary amounts exactly.
// The result does not depend on the order in which a sequence of amounts is accumulated.
func AddMoney(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// SumMoney adds any number of amounts, starting from zero.
func SumMoney(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = AddMoney(total, v)
	}
	return total
}

// OrZero is the single coalesce-to-zero accessor for optional amounts.
// Every optional numeric field on a record must be read through it.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// RoundMoney rounds an amount half away from zero to the given number of places.
// Aggregation never rounds; this is only used when presenting figures.
func RoundMoney(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// FormatMoney returns the amount with a fixed number of decimal places
func FormatMoney(d decimal.Decimal, places int32) string {
	return RoundMoney(d, places).StringFixed(places)
}

// ParseMoney parses a decimal string into an amount.
// An empty string yields a nil amount so callers can tell "absent" from "zero".
func ParseMoney(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount string '%s': %w", s, err)
	}
	return &d, nil
}

// Amount returns a pointer to a decimal built from a string literal.
// It panics on invalid input and is meant for fixtures and constants.
func Amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
