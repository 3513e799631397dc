// Package money provides a fixed-point monetary value type with exact
// decimal semantics. Amounts are stored as an integer number of cents
// (scale 2), which avoids binary floating-point error in balance
// arithmetic. The application is single-currency (EUR).
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"
)

var (
	// ErrInvalidAmount is returned when an amount is malformed, non-finite
	// or otherwise not a usable decimal value.
	ErrInvalidAmount = errors.New("Le montant est invalide")

	// ErrTooManyDecimals is returned when an amount carries more than two
	// fractional digits. Input amounts are rejected rather than silently
	// rounded; rounding applies only to already-valid internal amounts.
	ErrTooManyDecimals = errors.New("Le montant ne peut pas avoir plus de 2 décimales")
)

// decimals is the fixed scale of every amount.
const decimals = 2

// Money is a monetary value with exactly two fractional digits.
// The zero value is 0.00.
type Money struct {
	cents int64
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// FromCents builds a Money from an integer number of cents. Used for
// hydration from the data store, where balances are persisted as cents.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// amountPattern is the only accepted input grammar: an optional sign,
// digits, an optional fraction. big.Rat.SetString alone is far too liberal
// for money (base prefixes, exponents, digit separators, fractions).
var amountPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Parse builds a Money from a plain decimal string such as "20.50".
// It rejects malformed input with ErrInvalidAmount and input with more
// than two fractional digits with ErrTooManyDecimals.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return Money{}, ErrInvalidAmount
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Money{}, ErrInvalidAmount
	}
	scaled := new(big.Rat).Mul(r, big.NewRat(100, 1))
	if !scaled.IsInt() {
		return Money{}, ErrTooManyDecimals
	}
	num := scaled.Num()
	if !num.IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: num.Int64()}, nil
}

// FromFloat builds a Money from a float64, applying the same boundary rule
// as Parse: more than two fractional digits is an error, not a rounding.
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, ErrInvalidAmount
	}
	// Render at high precision to detect digits beyond the scale.
	s := strings.TrimRight(fmt.Sprintf("%.10f", f), "0")
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac = s[i+1:]
	}
	if len(frac) > decimals {
		return Money{}, ErrTooManyDecimals
	}
	return RoundHalfUp(f), nil
}

// RoundHalfUp normalizes an already-valid float amount to scale 2 using
// round-half-up. Callers validating user input must use Parse or FromFloat
// instead; this is for internal computations only.
func RoundHalfUp(f float64) Money {
	if f < 0 {
		return Money{cents: -int64(math.Floor(-f*100 + 0.5))}
	}
	return Money{cents: int64(math.Floor(f*100 + 0.5))}
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount in euros. Display only; arithmetic stays on cents.
func (m Money) Float() float64 {
	return float64(m.cents) / math.Pow10(decimals)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns m - other. The result may be negative; callers mutating
// a balance must reject a negative result before committing it.
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Cmp compares two amounts, returning -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// Equals reports whether two amounts are identical.
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Format renders the amount with exactly two decimals, e.g. "10.00".
// This is the form embedded in user-facing messages.
func (m Money) Format() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// String renders the amount with its currency symbol, e.g. "10.00 €".
func (m Money) String() string {
	return m.Format() + " €"
}
