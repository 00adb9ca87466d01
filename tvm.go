package finkit

// this file holds the time value of money primitives every engine is built on.

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// checkRate returns ErrInvalidRate when 1+rate <= 0.
func checkRate(rate decimal.Decimal) error {
	if !one.Add(rate).IsPositive() {
		return fmt.Errorf("%w: got %s%%", ErrInvalidRate, rate.Shift(2).String())
	}
	return nil
}

// pow returns base^n for any integer n, by repeated squaring. base must not be
// zero when n is negative.
func pow(base decimal.Decimal, n int) decimal.Decimal {
	if n < 0 {
		return one.Div(pow(base, -n))
	}
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// DiscountFactor returns 1/(1+rate)^period.
func DiscountFactor(rate decimal.Decimal, period int) (decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, err
	}
	return one.Div(pow(one.Add(rate), period)), nil
}

// PresentValue returns amount/(1+rate)^period.
func PresentValue(amount, rate decimal.Decimal, period int) (decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, err
	}
	return amount.Div(pow(one.Add(rate), period)), nil
}

// Compound returns amount*(1+rate)^period.
func Compound(amount, rate decimal.Decimal, period int) (decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(pow(one.Add(rate), period)), nil
}

// AnnuityPresentValue returns the present value of payment received at the end
// of each of the periods 1..periods: Σ payment/(1+rate)^t.
func AnnuityPresentValue(payment, rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	flows := make([]decimal.Decimal, periods)
	for i := range flows {
		flows[i] = payment
	}
	pv, _, err := discount(flows, rate)
	return pv, err
}

// discount returns the sum of the present values of flows, flows[i] being
// received at the end of period i+1, and the present value of each of them.
func discount(flows []decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, []decimal.Decimal, error) {
	if err := checkRate(rate); err != nil {
		return decimal.Zero, nil, err
	}
	growth := one.Add(rate)
	factor := one
	sum := decimal.Zero
	pvs := make([]decimal.Decimal, len(flows))
	for i, cf := range flows {
		factor = factor.Mul(growth)
		pvs[i] = cf.Div(factor)
		sum = sum.Add(pvs[i])
	}
	return sum, pvs, nil
}
