package finkit

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// D converts a constant into a decimal. It panics on NaN or infinite floats,
// use Number for values coming from users.
func D[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	return newDecimal(value)
}

// Ds converts constants into a slice of decimals.
func Ds[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](values ...T) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = newDecimal(v)
	}
	return out
}

// Number converts a float coming from outside the engine into a decimal,
// rejecting NaN and infinities.
func Number(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v is not a finite number", ErrInvalidInput, f)
	}
	return decimal.NewFromFloat(f), nil
}

// ParseAmount parses a monetary amount or a plain number.
//
// Spaces, underscores and apostrophes are accepted as thousand separators so
// that "1 000 000", "1_000_000" and "1'000'000" all parse.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '\'', '\u00a0':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("%w: empty number", ErrInvalidInput)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return d, nil
}

// ParsePercent parses a percentage into a fraction: "10", "10%" and "10 %"
// all return 0.10.
func ParsePercent(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(hundred), nil
}
