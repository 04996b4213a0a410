// Package core holds the dashboard's domain types: monetary values,
// filter state, and the tabular shapes handed to the rendering layer.
package core

import (
	"fmt"
	"math"
	"strconv"
)

// Money is a monetary amount in cents. Aggregates cross the store
// boundary as float64 dollars; they are converted to cents once, at the
// edge, and every later comparison and format works on integers.
type Money struct {
	Cents int64
}

// MoneyFromDollars converts a dollar amount to cents, rounding half away
// from zero on the third decimal.
func MoneyFromDollars(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Dollars returns the dollar value as a float64 for chart scaling.
// Use cents for comparisons to avoid floating-point drift.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount as a dollar string with thousands grouping,
// e.g. "$1,234.56".
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100
	s := groupThousands(whole) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// groupThousands formats a non-negative integer with comma separators.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	first := len(s) % 3
	if first == 0 {
		first = 3
	}
	out := s[:first]
	for i := first; i < len(s); i += 3 {
		out += "," + s[i:i+3]
	}
	return out
}

// FormatCount renders an integer with thousands grouping, e.g. "1,204".
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	return groupThousands(n)
}
