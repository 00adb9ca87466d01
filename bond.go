package finkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the number of coupon payments per year.
type Frequency int

// Supported coupon frequencies.
const (
	Annual     Frequency = 1
	SemiAnnual Frequency = 2
	Quarterly  Frequency = 4
)

func (f Frequency) String() string {
	switch f {
	case Annual:
		return "annual"
	case SemiAnnual:
		return "semi-annual"
	case Quarterly:
		return "quarterly"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// ParseFrequency parses a frequency from its name or its number of payments
// per year.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual", "annually", "yearly", "1":
		return Annual, nil
	case "semi-annual", "semiannual", "semi-annually", "2":
		return SemiAnnual, nil
	case "quarterly", "4":
		return Quarterly, nil
	default:
		return 0, fmt.Errorf("%w: unknown coupon frequency %q, want annual, semi-annual or quarterly", ErrInvalidInput, s)
	}
}

// BondSpec describes a plain vanilla fixed coupon bond.
type BondSpec struct {
	FaceValue  decimal.Decimal `json:"faceValue"`
	CouponRate decimal.Decimal `json:"couponRate"` // annual
	YieldRate  decimal.Decimal `json:"yieldRate"`  // annual yield to maturity
	Years      decimal.Decimal `json:"years"`      // to maturity
	Frequency  Frequency       `json:"frequency"`
}

// DefaultBondSpec returns a ten year bond paying 5% annually, priced at a 4%
// yield.
func DefaultBondSpec() BondSpec {
	return BondSpec{
		FaceValue:  D(1000),
		CouponRate: D(0.05),
		YieldRate:  D(0.04),
		Years:      D(10),
		Frequency:  Annual,
	}
}

// MaxYears bounds the horizon of a bond maturity or a DCF forecast.
const MaxYears = 100

// periods returns Years × Frequency, which must be a positive integer of at
// most MaxYears × Frequency.
func (b BondSpec) periods() (int, error) {
	if b.Years.GreaterThan(decimal.NewFromInt(MaxYears)) {
		return 0, fmt.Errorf("%w: years to maturity must not exceed %d, got %s", ErrInvalidInput, MaxYears, b.Years)
	}
	n := b.Years.Mul(decimal.NewFromInt(int64(b.Frequency)))
	if !n.IsInteger() || !n.IsPositive() {
		return 0, fmt.Errorf("%w: %s years at %s frequency is not a whole number of coupon periods", ErrInvalidInput, b.Years, b.Frequency)
	}
	return int(n.IntPart()), nil
}

// Validate checks the bond can be priced.
func (b BondSpec) Validate() error {
	var errs []error
	if b.FaceValue.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: face value must not be negative, got %s", ErrInvalidInput, b.FaceValue))
	}
	if b.CouponRate.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: coupon rate must not be negative, got %s%%", ErrInvalidInput, b.CouponRate.Shift(2)))
	}
	if b.YieldRate.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: yield must not be negative, got %s%%", ErrInvalidInput, b.YieldRate.Shift(2)))
	}
	switch b.Frequency {
	case Annual, SemiAnnual, Quarterly:
		if b.Years.LessThan(one) {
			errs = append(errs, fmt.Errorf("%w: years to maturity must be at least 1, got %s", ErrInvalidInput, b.Years))
		} else if _, err := b.periods(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported coupon frequency %d, want 1, 2 or 4", ErrInvalidInput, int(b.Frequency)))
	}
	return errors.Join(errs...)
}

// BondPayment is one period of the payment schedule.
type BondPayment struct {
	Period         int             `json:"period"`
	Time           decimal.Decimal `json:"time"` // in years
	CashFlow       decimal.Decimal `json:"cashFlow"`
	DiscountFactor decimal.Decimal `json:"discountFactor"`
	PresentValue   decimal.Decimal `json:"presentValue"`
}

// BondPriceResult is the fair price of a bond and its sensitivity to the
// yield.
type BondPriceResult struct {
	Spec             BondSpec            `json:"spec"`
	Price            decimal.Decimal     `json:"price"`
	Coupon           decimal.Decimal     `json:"coupon"` // per period
	Periods          int                 `json:"periods"`
	PeriodicYield    decimal.Decimal     `json:"periodicYield"`
	PVCoupons        decimal.Decimal     `json:"pvCoupons"`
	PVFace           decimal.Decimal     `json:"pvFace"`
	MacaulayDuration decimal.NullDecimal `json:"macaulayDuration"` // in years, undefined for a zero price
	ModifiedDuration decimal.NullDecimal `json:"modifiedDuration"`
	Schedule         []BondPayment       `json:"schedule"`
}

// priceScale is the number of decimal places the price is rounded to.
const priceScale = 10

// PriceBond discounts the coupons and the face value at the periodic yield:
//
//	price = Σ C/(1+y)^t + F/(1+y)^N,  C = F×c/f, y = Y/f, N = years×f
//
// Years × frequency must be a whole number of periods, fractional periods
// are rejected with ErrInvalidInput.
func PriceBond(b BondSpec) (BondPriceResult, error) {
	if err := b.Validate(); err != nil {
		return BondPriceResult{}, err
	}
	n, _ := b.periods()
	f := decimal.NewFromInt(int64(b.Frequency))
	res := BondPriceResult{
		Spec:          b,
		Coupon:        b.FaceValue.Mul(b.CouponRate).Div(f),
		Periods:       n,
		PeriodicYield: b.YieldRate.Div(f),
		Schedule:      make([]BondPayment, n),
	}

	growth, factor := one.Add(res.PeriodicYield), one
	weighted := decimal.Zero // Σ time × present value
	for t := 1; t <= n; t++ {
		factor = factor.Mul(growth)
		p := BondPayment{
			Period:         t,
			Time:           decimal.NewFromInt(int64(t)).Div(f),
			CashFlow:       res.Coupon,
			DiscountFactor: one.Div(factor),
		}
		couponPV := res.Coupon.Div(factor)
		res.PVCoupons = res.PVCoupons.Add(couponPV)
		p.PresentValue = couponPV
		if t == n {
			res.PVFace = b.FaceValue.Div(factor)
			p.CashFlow = p.CashFlow.Add(b.FaceValue)
			p.PresentValue = p.PresentValue.Add(res.PVFace)
		}
		weighted = weighted.Add(p.Time.Mul(p.PresentValue))
		res.Schedule[t-1] = p
	}
	value := res.PVCoupons.Add(res.PVFace)
	res.Price = value.Round(priceScale)

	if res.Price.IsPositive() {
		mac := weighted.Div(value)
		res.MacaulayDuration = decimal.NewNullDecimal(mac)
		res.ModifiedDuration = decimal.NewNullDecimal(mac.Div(growth))
	}
	return res, nil
}
