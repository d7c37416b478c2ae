package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits money columns store.
const AmountScale = 8

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a decimal string and requires it to be strictly positive
// and representable in AmountScale fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.Equal(d.Truncate(AmountScale)) {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, AmountScale)
	}
	return d.Truncate(AmountScale), nil
}

// Percent returns amount * pct / 100.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Money rounds to cents, half away from zero.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
