package renderer

import (
	"github.com/etnz/finkit"
)

// WACC is a weighted average cost of capital prepared for rendering.
type WACC struct {
	Equity       finkit.Money   `json:"equity"`
	Debt         finkit.Money   `json:"debt"`
	Total        finkit.Money   `json:"total"`
	CostOfEquity finkit.Percent `json:"costOfEquity"`
	CostOfDebt   finkit.Percent `json:"costOfDebt"`
	TaxRate      finkit.Percent `json:"taxRate"`
	AfterTaxDebt finkit.Percent `json:"afterTaxDebt"`
	WeightEquity string         `json:"weightEquity"`
	WeightDebt   string         `json:"weightDebt"`
	WACC         string         `json:"wacc"`
}

func NewWACC(res finkit.WACCResult, currency string) *WACC {
	m, s := money{currency}, res.Structure
	return &WACC{
		Equity:       m.of(s.Equity),
		Debt:         m.of(s.Debt),
		Total:        m.of(s.Equity.Add(s.Debt)),
		CostOfEquity: finkit.P(s.CostOfEquity),
		CostOfDebt:   finkit.P(s.CostOfDebt),
		TaxRate:      finkit.P(s.TaxRate),
		AfterTaxDebt: finkit.P(res.AfterTaxDebt),
		WeightEquity: orUndefined(finkit.P(res.WeightEquity), res.Err()),
		WeightDebt:   orUndefined(finkit.P(res.WeightDebt), res.Err()),
		WACC:         orUndefined(finkit.P(res.WACC), res.Err()),
	}
}

// RenderWACC renders a WACC to markdown.
func RenderWACC(v *WACC) string {
	return renderTemplate("wacc", "wacc.md", nil, v)
}
