package renderer

import (
	"github.com/etnz/finkit"
)

// Bond is a bond price prepared for rendering.
type Bond struct {
	FaceValue        finkit.Money   `json:"faceValue"`
	CouponRate       finkit.Percent `json:"couponRate"`
	YieldRate        finkit.Percent `json:"yieldRate"`
	Years            string         `json:"years"`
	Frequency        string         `json:"frequency"`
	Price            finkit.Money   `json:"price"`
	Position         string         `json:"position"`
	Coupon           finkit.Money   `json:"coupon"`
	Periods          int            `json:"periods"`
	PeriodicYield    finkit.Percent `json:"periodicYield"`
	PVCoupons        finkit.Money   `json:"pvCoupons"`
	PVFace           finkit.Money   `json:"pvFace"`
	MacaulayDuration string         `json:"macaulayDuration"`
	ModifiedDuration string         `json:"modifiedDuration"`
	Schedule         []BondPayment  `json:"schedule"`
}

// BondPayment is one row of the payment schedule.
type BondPayment struct {
	Period         int          `json:"period"`
	Time           string       `json:"time"`
	CashFlow       finkit.Money `json:"cashFlow"`
	DiscountFactor string       `json:"discountFactor"`
	PresentValue   finkit.Money `json:"presentValue"`
}

func NewBond(res finkit.BondPriceResult, currency string) *Bond {
	m, b := money{currency}, res.Spec
	v := &Bond{
		FaceValue:        m.of(b.FaceValue),
		CouponRate:       finkit.P(b.CouponRate),
		YieldRate:        finkit.P(b.YieldRate),
		Years:            b.Years.String(),
		Frequency:        b.Frequency.String(),
		Price:            m.of(res.Price),
		Coupon:           m.of(res.Coupon),
		Periods:          res.Periods,
		PeriodicYield:    finkit.P(res.PeriodicYield),
		PVCoupons:        m.of(res.PVCoupons),
		PVFace:           m.of(res.PVFace),
		MacaulayDuration: undefined(finkit.ErrRatioUndefined),
		ModifiedDuration: undefined(finkit.ErrRatioUndefined),
	}
	switch res.Price.Round(2).Cmp(b.FaceValue.Round(2)) {
	case 1:
		v.Position = "premium"
	case -1:
		v.Position = "discount"
	default:
		v.Position = "par"
	}
	if res.MacaulayDuration.Valid {
		v.MacaulayDuration = res.MacaulayDuration.Decimal.StringFixed(2) + " years"
	}
	if res.ModifiedDuration.Valid {
		v.ModifiedDuration = res.ModifiedDuration.Decimal.StringFixed(2)
	}
	for _, p := range res.Schedule {
		v.Schedule = append(v.Schedule, BondPayment{
			Period:         p.Period,
			Time:           p.Time.StringFixed(2),
			CashFlow:       m.of(p.CashFlow),
			DiscountFactor: p.DiscountFactor.StringFixed(4),
			PresentValue:   m.of(p.PresentValue),
		})
	}
	return v
}

// RenderBond renders a bond price to markdown.
func RenderBond(v *Bond) string {
	partials := map[string]string{
		"bond_schedule": "bond_schedule.md",
	}
	return renderTemplate("bond", "bond.md", partials, v)
}
