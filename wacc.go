package finkit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CapitalStructure is the market value and cost of a firm's equity and debt.
type CapitalStructure struct {
	Equity       decimal.Decimal `json:"equity"`
	Debt         decimal.Decimal `json:"debt"`
	CostOfEquity decimal.Decimal `json:"costOfEquity"`
	CostOfDebt   decimal.Decimal `json:"costOfDebt"`
	TaxRate      decimal.Decimal `json:"taxRate"`
}

// DefaultCapitalStructure returns a firm financed two thirds by equity.
func DefaultCapitalStructure() CapitalStructure {
	return CapitalStructure{
		Equity:       D(1_000_000),
		Debt:         D(500_000),
		CostOfEquity: D(0.10),
		CostOfDebt:   D(0.05),
		TaxRate:      D(0.20),
	}
}

// Validate checks values are not negative and the tax rate is within [0, 1].
func (c CapitalStructure) Validate() error {
	var errs []error
	if c.Equity.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: equity value must not be negative, got %s", ErrInvalidInput, c.Equity))
	}
	if c.Debt.IsNegative() {
		errs = append(errs, fmt.Errorf("%w: debt value must not be negative, got %s", ErrInvalidInput, c.Debt))
	}
	if err := checkRate(c.CostOfEquity); err != nil {
		errs = append(errs, fmt.Errorf("cost of equity: %w", err))
	}
	if err := checkRate(c.CostOfDebt); err != nil {
		errs = append(errs, fmt.Errorf("cost of debt: %w", err))
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(one) {
		errs = append(errs, fmt.Errorf("%w: tax rate must be within [0%%, 100%%], got %s%%", ErrInvalidInput, c.TaxRate.Shift(2)))
	}
	return errors.Join(errs...)
}

// WACCResult is the weighted average cost of capital of a CapitalStructure.
//
// When the total capital is zero, UndefinedWeights is set and the weights and
// the WACC are zero.
type WACCResult struct {
	Structure        CapitalStructure
	WeightEquity     decimal.Decimal // E / (E + D)
	WeightDebt       decimal.Decimal // D / (E + D)
	AfterTaxDebt     decimal.Decimal // Rd × (1 - tax)
	WACC             decimal.Decimal
	UndefinedWeights bool
}

// Err returns ErrUndefinedWeights when the weights are undefined.
func (r WACCResult) Err() error {
	if r.UndefinedWeights {
		return ErrUndefinedWeights
	}
	return nil
}

// MarshalJSON writes the result, or the structure and the error code when the
// weights are undefined.
func (r WACCResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("structure", r.Structure)
	w.Variant("weightEquity", r.WeightEquity, r.Err())
	w.Variant("weightDebt", r.WeightDebt, r.Err())
	w.Append("afterTaxCostOfDebt", r.AfterTaxDebt)
	w.Variant("wacc", r.WACC, r.Err())
	return w.MarshalJSON()
}

// ComputeWACC returns E/V × Re + D/V × Rd × (1 - tax), V = E + D.
//
// Zero total capital is not an error: the result reports UndefinedWeights.
func ComputeWACC(c CapitalStructure) (WACCResult, error) {
	if err := c.Validate(); err != nil {
		return WACCResult{}, err
	}
	res := WACCResult{
		Structure:    c,
		AfterTaxDebt: c.CostOfDebt.Mul(one.Sub(c.TaxRate)),
	}
	total := c.Equity.Add(c.Debt)
	if total.IsZero() {
		res.UndefinedWeights = true
		return res, nil
	}
	res.WeightEquity = c.Equity.Div(total)
	// weights sum to exactly one
	res.WeightDebt = one.Sub(res.WeightEquity)
	res.WACC = res.WeightEquity.Mul(c.CostOfEquity).Add(res.WeightDebt.Mul(res.AfterTaxDebt))
	return res, nil
}
