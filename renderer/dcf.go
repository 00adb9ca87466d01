package renderer

import (
	"github.com/etnz/finkit"
)

// DCF is a discounted cash flow valuation prepared for rendering.
type DCF struct {
	Growth          finkit.Percent `json:"growth"`
	EBITMargin      finkit.Percent `json:"ebitMargin"`
	TaxRate         finkit.Percent `json:"taxRate"`
	WACC            finkit.Percent `json:"wacc"`
	TerminalGrowth  finkit.Percent `json:"terminalGrowth"`
	Years           []DCFYear      `json:"years"`
	PVForecast      finkit.Money   `json:"pvForecast"`
	TerminalValue   string         `json:"terminalValue"`
	PVTerminal      string         `json:"pvTerminal"`
	EnterpriseValue string         `json:"enterpriseValue"`
	NetDebt         finkit.Money   `json:"netDebt"`
	EquityValue     string         `json:"equityValue"`
	ValuePerShare   string         `json:"valuePerShare"`
	ImpliedMultiple string         `json:"impliedMultiple"`
	TerminalShare   string         `json:"terminalShare"` // of the enterprise value
}

// DCFYear is one column of the forecast.
type DCFYear struct {
	Year           int          `json:"year"`
	Revenue        finkit.Money `json:"revenue"`
	EBIT           finkit.Money `json:"ebit"`
	Tax            finkit.Money `json:"tax"`
	DA             finkit.Money `json:"da"`
	Capex          finkit.Money `json:"capex"`
	WorkingCapital finkit.Money `json:"workingCapital"`
	FCF            finkit.Money `json:"fcf"`
	DiscountFactor string       `json:"discountFactor"`
	PresentValue   finkit.Money `json:"presentValue"`
}

func NewDCF(res finkit.DCFResult, currency string) *DCF {
	m, a := money{currency}, res.Assumptions
	v := &DCF{
		Growth:         finkit.P(a.RevenueGrowth),
		EBITMargin:     finkit.P(a.EBITMargin),
		TaxRate:        finkit.P(a.TaxRate),
		WACC:           finkit.P(a.WACC),
		TerminalGrowth: finkit.P(a.TerminalGrowth),
		PVForecast:     m.of(res.PVForecast),
		NetDebt:        m.of(a.NetDebt),
	}
	for _, y := range res.Years {
		v.Years = append(v.Years, DCFYear{
			Year:           y.Year,
			Revenue:        m.of(y.Revenue),
			EBIT:           m.of(y.EBIT),
			Tax:            m.of(y.Tax.Neg()),
			DA:             m.of(y.DA),
			Capex:          m.of(y.Capex.Neg()),
			WorkingCapital: m.of(y.WorkingCapital.Neg()),
			FCF:            m.of(y.FCF),
			DiscountFactor: y.DiscountFactor.StringFixed(4),
			PresentValue:   m.of(y.PresentValue),
		})
	}
	if res.TerminalErr != nil {
		u := undefined(res.TerminalErr)
		v.TerminalValue, v.PVTerminal, v.EnterpriseValue, v.EquityValue, v.ValuePerShare, v.ImpliedMultiple, v.TerminalShare = u, u, u, u, u, u, u
		return v
	}
	v.TerminalValue = m.of(res.TerminalValue).String()
	v.PVTerminal = m.of(res.PVTerminal).String()
	v.EnterpriseValue = m.of(res.EnterpriseValue).String()
	v.EquityValue = m.of(res.EquityValue).String()
	v.ValuePerShare = undefined(finkit.ErrRatioUndefined)
	if res.ValuePerShare.Valid {
		v.ValuePerShare = m.of(res.ValuePerShare.Decimal).String()
	}
	v.ImpliedMultiple = undefined(finkit.ErrRatioUndefined)
	if res.ImpliedMultiple.Valid {
		v.ImpliedMultiple = res.ImpliedMultiple.Decimal.StringFixed(1) + "x EBITDA"
	}
	v.TerminalShare = undefined(finkit.ErrRatioUndefined)
	if !res.EnterpriseValue.IsZero() {
		v.TerminalShare = finkit.P(res.PVTerminal.Div(res.EnterpriseValue)).String()
	}
	return v
}

// RenderDCF renders a DCF valuation to markdown.
func RenderDCF(v *DCF) string {
	partials := map[string]string{
		"dcf_forecast": "dcf_forecast.md",
	}
	return renderTemplate("dcf", "dcf.md", partials, v)
}
