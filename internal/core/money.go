// Package core holds the expense domain: money, categories, the expense
// entity, the free-text parser and the repository contract.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an immutable amount in cents paired with a currency code.
// The currency is stored verbatim: no normalization, no ISO validation,
// which keeps the core currency-agnostic.
type Money struct {
	Cents    int64
	Currency string
}

// NewMoney validates that the amount is non-negative.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, NewValidationError("Amount cannot be negative")
	}
	return Money{Cents: cents, Currency: currency}, nil
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, NewValidationError(fmt.Sprintf(
			"Cannot operate on different currencies: %s vs %s", m.Currency, other.Currency))
	}
	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}, nil
}

// Format renders "<CURRENCY> <amount to 2 decimals>", locale-independent.
// The text is echoed verbatim to users.
func (m Money) Format() string {
	return fmt.Sprintf("%s %d.%02d", m.Currency, m.Cents/100, m.Cents%100)
}

// ParseAmount converts a decimal string to cents. It accepts both dot
// (12.34) and comma (12,34) separators and performs half-up rounding on the
// third decimal place. Negative values are rejected; zero is allowed.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, NewValidationError("Invalid amount")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, NewValidationError("Invalid amount")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, NewValidationError("Invalid amount")
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, NewValidationError("Invalid amount")
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, NewValidationError("Invalid amount")
	}
	// Prevent overflow when multiplying by 100 and adding up to 99 cents
	if iv > (math.MaxInt64-99)/100 {
		return 0, NewValidationError("Invalid amount")
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
