package renderer

import (
	"github.com/etnz/finkit"
)

// NPV is the NPV appraisal prepared for rendering.
type NPV struct {
	Investment  finkit.Money     `json:"investment"`
	Rate        finkit.Percent   `json:"rate"`
	NPV         finkit.Money     `json:"npv"`
	Verdict     string           `json:"verdict"`
	IRR         string           `json:"irr"`
	Payback     string           `json:"payback"`
	Flows       []NPVFlow        `json:"flows"`
	TotalFlows  finkit.Money     `json:"totalFlows"`
	TotalPV     finkit.Money     `json:"totalPv"`
	Sensitivity []SensitivityBar `json:"sensitivity,omitempty"`
	Shock       finkit.Percent   `json:"shock"`
}

// NPVFlow is one row of the cash flow table.
type NPVFlow struct {
	Period       int          `json:"period"`
	CashFlow     finkit.Money `json:"cashFlow"`
	PresentValue finkit.Money `json:"presentValue"`
}

// SensitivityBar is one row of the tornado table, widest last.
type SensitivityBar struct {
	Variable   string       `json:"variable"`
	Low        finkit.Money `json:"low"`
	High       finkit.Money `json:"high"`
	LowImpact  string       `json:"lowImpact"`
	HighImpact string       `json:"highImpact"`
	Range      finkit.Money `json:"range"`
	Bar        string       `json:"bar"`
	Undefined  string       `json:"undefined,omitempty"`
}

const tornadoWidth = 20

// NewNPV prepares an NPV result and its sensitivity entries for rendering.
// sens may be nil, shock is the perturbation used to compute them.
func NewNPV(res finkit.NPVResult, sens []finkit.SensitivityEntry, shock finkit.Percent, currency string) *NPV {
	m := money{currency}
	v := &NPV{
		Investment: m.of(res.Investment),
		Rate:       finkit.P(res.Rate),
		NPV:        m.of(res.NPV),
		IRR:        orUndefined(finkit.P(res.IRR), res.IRRErr),
		TotalFlows: m.of(finkit.D(0)),
		TotalPV:    m.of(finkit.D(0)),
		Shock:      shock,
	}
	switch {
	case res.NPV.IsPositive():
		v.Verdict = "creates value: accept"
	case res.NPV.IsNegative():
		v.Verdict = "destroys value: reject"
	default:
		v.Verdict = "breaks even"
	}
	if res.PaybackErr != nil {
		v.Payback = undefined(res.PaybackErr)
	} else {
		v.Payback = res.Payback.StringFixed(2) + " periods"
	}
	for i, cf := range res.Flows {
		f := NPVFlow{Period: i + 1, CashFlow: m.of(cf), PresentValue: m.of(res.Discounted[i])}
		v.TotalFlows = v.TotalFlows.Add(f.CashFlow)
		v.TotalPV = v.TotalPV.Add(f.PresentValue)
		v.Flows = append(v.Flows, f)
	}

	var widest float64
	for _, e := range sens {
		if r := e.Range.InexactFloat64(); r > widest {
			widest = r
		}
	}
	for _, e := range sens {
		if e.Err != nil {
			v.Sensitivity = append(v.Sensitivity, SensitivityBar{Variable: e.Variable, Undefined: undefined(e.Err)})
			continue
		}
		v.Sensitivity = append(v.Sensitivity, SensitivityBar{
			Variable:   e.Variable,
			Low:        m.of(e.Low),
			High:       m.of(e.High),
			LowImpact:  m.of(e.LowImpact).SignedString(),
			HighImpact: m.of(e.HighImpact).SignedString(),
			Range:      m.of(e.Range),
			Bar:        bar(e.Range.InexactFloat64(), widest, tornadoWidth),
		})
	}
	return v
}

// RenderNPV renders an NPV appraisal to markdown.
func RenderNPV(v *NPV) string {
	partials := map[string]string{
		"npv_flows":       "npv_flows.md",
		"npv_sensitivity": "npv_sensitivity.md",
	}
	return renderTemplate("npv", "npv.md", partials, v)
}
