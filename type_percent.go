package finkit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a rate expressed in percent, for display: Percent(15.24) is 15.24%.
type Percent float64

// P converts a fractional rate into a Percent.
func P(rate decimal.Decimal) Percent {
	return Percent(rate.Shift(2).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
