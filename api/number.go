package api

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/finkit"
	"github.com/shopspring/decimal"
)

// Number is a decimal read from JSON or YAML. It accepts numbers, numeric
// strings with thousand separators ("1 000 000") and percentages ("10%" is
// 0.10).
type Number struct {
	decimal.Decimal
}

// N returns a Number holding d.
func N(d decimal.Decimal) Number { return Number{d} }

// ParseNumber parses a number or a percentage.
func ParseNumber(s string) (decimal.Decimal, error) {
	if strings.HasSuffix(strings.TrimSpace(s), "%") {
		return finkit.ParsePercent(s)
	}
	return finkit.ParseAmount(s)
}

// UnmarshalJSON accepts a JSON number or string. null leaves n unchanged.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		return nil
	}
	d, err := ParseNumber(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	n.Decimal = d
	return nil
}

// UnmarshalYAML accepts any YAML scalar.
func (n *Number) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("%w: %v", finkit.ErrInvalidInput, err)
	}
	d, err := ParseNumber(s)
	if err != nil {
		return err
	}
	n.Decimal = d
	return nil
}

// decimals converts numbers into decimals.
func decimals(ns []Number) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ns))
	for i, n := range ns {
		out[i] = n.Decimal
	}
	return out
}

// numbers converts decimals into numbers.
func numbers(ds ...decimal.Decimal) []Number {
	out := make([]Number, len(ds))
	for i, d := range ds {
		out[i] = N(d)
	}
	return out
}
