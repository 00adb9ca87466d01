package finkit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DCFAssumptions drive a discounted cash flow valuation. Every rate and
// percentage is a fraction of revenue or a fraction per year.
type DCFAssumptions struct {
	Years             int             `json:"years"`
	StartingRevenue   decimal.Decimal `json:"startingRevenue"`
	RevenueGrowth     decimal.Decimal `json:"revenueGrowth"`
	EBITMargin        decimal.Decimal `json:"ebitMargin"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	CapexPct          decimal.Decimal `json:"capexPct"`
	WorkingCapitalPct decimal.Decimal `json:"workingCapitalPct"`
	DAPct             decimal.Decimal `json:"daPct"`
	WACC              decimal.Decimal `json:"wacc"`
	TerminalGrowth    decimal.Decimal `json:"terminalGrowth"`
	NetDebt           decimal.Decimal `json:"netDebt"`
	SharesOutstanding decimal.Decimal `json:"sharesOutstanding"`
}

// DefaultDCFAssumptions returns a five year forecast of a company with one
// million of revenue.
func DefaultDCFAssumptions() DCFAssumptions {
	return DCFAssumptions{
		Years:             5,
		StartingRevenue:   D(1_000_000),
		RevenueGrowth:     D(0.05),
		EBITMargin:        D(0.15),
		TaxRate:           D(0.20),
		CapexPct:          D(0.05),
		WorkingCapitalPct: D(0.02),
		DAPct:             D(0.04),
		WACC:              D(0.10),
		TerminalGrowth:    D(0.02),
		NetDebt:           D(500_000),
		SharesOutstanding: D(100_000),
	}
}

// DCFYear is one year of the explicit forecast.
type DCFYear struct {
	Year           int             `json:"year"`
	Revenue        decimal.Decimal `json:"revenue"`
	EBIT           decimal.Decimal `json:"ebit"`
	Tax            decimal.Decimal `json:"tax"` // tax on EBIT
	DA             decimal.Decimal `json:"da"`
	Capex          decimal.Decimal `json:"capex"`
	WorkingCapital decimal.Decimal `json:"workingCapital"` // increase in working capital
	FCF            decimal.Decimal `json:"fcf"`
	DiscountFactor decimal.Decimal `json:"discountFactor"`
	PresentValue   decimal.Decimal `json:"presentValue"`
}

// DCFResult is the valuation of a firm from its projected free cash flows.
//
// When TerminalErr is set, only the forecast (Years and PVForecast) is
// defined.
type DCFResult struct {
	Assumptions     DCFAssumptions
	Years           []DCFYear
	PVForecast      decimal.Decimal // Σ present value of the forecast FCF
	TerminalValue   decimal.Decimal // Gordon growth value at the end of the forecast
	PVTerminal      decimal.Decimal
	EnterpriseValue decimal.Decimal // PVForecast + PVTerminal
	EquityValue     decimal.Decimal // EnterpriseValue - NetDebt
	ValuePerShare   decimal.NullDecimal
	ImpliedMultiple decimal.NullDecimal // TerminalValue / terminal year EBITDA
	TerminalErr     error
}

// MarshalJSON writes the result with undefined values as error codes.
func (r DCFResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("assumptions", r.Assumptions)
	w.Append("years", r.Years)
	w.Append("pvForecast", r.PVForecast)
	if r.TerminalErr != nil {
		w.Variant("terminalValue", nil, r.TerminalErr)
		return w.MarshalJSON()
	}
	w.Append("terminalValue", r.TerminalValue)
	w.Append("pvTerminal", r.PVTerminal)
	w.Append("enterpriseValue", r.EnterpriseValue)
	w.Append("equityValue", r.EquityValue)
	w.Variant("valuePerShare", r.ValuePerShare.Decimal, nullErr(r.ValuePerShare, ErrRatioUndefined))
	w.Variant("impliedMultiple", r.ImpliedMultiple.Decimal, nullErr(r.ImpliedMultiple, ErrRatioUndefined))
	return w.MarshalJSON()
}

// nullErr returns err when v is not valid.
func nullErr(v decimal.NullDecimal, err error) error {
	if v.Valid {
		return nil
	}
	return err
}

// Validate checks that the assumptions describe a computable forecast.
func (a DCFAssumptions) Validate() error {
	var errs []error
	if a.Years < 1 || a.Years > MaxYears {
		errs = append(errs, fmt.Errorf("%w: years must be between 1 and %d, got %d", ErrInvalidInput, MaxYears, a.Years))
	}
	if a.StartingRevenue.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: starting revenue must not be negative, got %s", ErrInvalidInput, a.StartingRevenue))
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"revenue growth", a.RevenueGrowth},
		{"EBIT margin", a.EBITMargin},
		{"tax rate", a.TaxRate},
		{"capex", a.CapexPct},
		{"working capital", a.WorkingCapitalPct},
		{"D&A", a.DAPct},
		{"terminal growth", a.TerminalGrowth},
	} {
		if f.value.LessThan(one.Neg()) {
			errs = append(errs, fmt.Errorf("%w: %s must not be below -100%%, got %s%%", ErrInvalidInput, f.name, f.value.Shift(2)))
		}
	}
	if err := checkRate(a.WACC); err != nil {
		errs = append(errs, fmt.Errorf("WACC: %w", err))
	}
	if a.SharesOutstanding.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: shares outstanding must not be negative, got %s", ErrInvalidInput, a.SharesOutstanding))
	}
	return errors.Join(errs...)
}

// ProjectDCF projects revenue, EBIT and free cash flow to the firm over the
// forecast years, discounts them at the WACC and adds the Gordon growth
// terminal value of the last year's FCF:
//
//	FCF = EBIT × (1 - tax) + D&A - capex - ΔWC
//	TV  = FCF_N × (1 + g) / (WACC - g)
//
// When the WACC does not exceed the terminal growth rate the forecast is
// still returned, together with ErrTerminalValueUndefined.
func ProjectDCF(a DCFAssumptions) (DCFResult, error) {
	if err := a.Validate(); err != nil {
		return DCFResult{}, err
	}
	res := DCFResult{Assumptions: a, Years: make([]DCFYear, a.Years)}

	growth, discount := one.Add(a.RevenueGrowth), one.Add(a.WACC)
	revenue, factor := a.StartingRevenue, one
	for i := range res.Years {
		revenue = revenue.Mul(growth)
		factor = factor.Mul(discount)
		y := DCFYear{
			Year:           i + 1,
			Revenue:        revenue,
			EBIT:           revenue.Mul(a.EBITMargin),
			DA:             revenue.Mul(a.DAPct),
			Capex:          revenue.Mul(a.CapexPct),
			WorkingCapital: revenue.Mul(a.WorkingCapitalPct),
			DiscountFactor: one.Div(factor),
		}
		y.Tax = y.EBIT.Mul(a.TaxRate)
		y.FCF = y.EBIT.Sub(y.Tax).Add(y.DA).Sub(y.Capex).Sub(y.WorkingCapital)
		y.PresentValue = y.FCF.Div(factor)
		res.PVForecast = res.PVForecast.Add(y.PresentValue)
		res.Years[i] = y
	}

	if !a.WACC.GreaterThan(a.TerminalGrowth) {
		res.TerminalErr = fmt.Errorf("%w: WACC %s%% <= growth %s%%", ErrTerminalValueUndefined, a.WACC.Shift(2), a.TerminalGrowth.Shift(2))
		return res, res.TerminalErr
	}
	last := res.Years[len(res.Years)-1]
	res.TerminalValue = last.FCF.Mul(one.Add(a.TerminalGrowth)).Div(a.WACC.Sub(a.TerminalGrowth))
	res.PVTerminal = res.TerminalValue.Div(factor)
	res.EnterpriseValue = res.PVForecast.Add(res.PVTerminal)
	res.EquityValue = res.EnterpriseValue.Sub(a.NetDebt)
	if a.SharesOutstanding.IsPositive() {
		res.ValuePerShare = decimal.NewNullDecimal(res.EquityValue.Div(a.SharesOutstanding))
	}
	if ebitda := last.EBIT.Add(last.DA); !ebitda.IsZero() {
		res.ImpliedMultiple = decimal.NewNullDecimal(res.TerminalValue.Div(ebitda))
	}
	return res, nil
}
