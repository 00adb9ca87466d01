package renderer

import (
	"github.com/etnz/finkit"
)

// CAPM is the expected return of an asset prepared for rendering.
type CAPM struct {
	RiskFreeRate      finkit.Percent `json:"riskFreeRate"`
	Beta              string         `json:"beta"`
	MarketReturn      finkit.Percent `json:"marketReturn"`
	MarketRiskPremium finkit.Percent `json:"marketRiskPremium"`
	ExpectedReturn    finkit.Percent `json:"expectedReturn"`
	Profile           string         `json:"profile"`
}

func NewCAPM(res finkit.CAPMResult) *CAPM {
	v := &CAPM{
		RiskFreeRate:      finkit.P(res.RiskFreeRate),
		Beta:              res.Beta.StringFixed(2),
		MarketReturn:      finkit.P(res.MarketReturn),
		MarketRiskPremium: finkit.P(res.MarketRiskPremium),
		ExpectedReturn:    finkit.P(res.ExpectedReturn),
	}
	switch c := res.Beta.Cmp(finkit.D(1)); {
	case res.Beta.IsNegative():
		v.Profile = "moves against the market"
	case c < 0:
		v.Profile = "is less volatile than the market"
	case c > 0:
		v.Profile = "is more volatile than the market"
	default:
		v.Profile = "moves with the market"
	}
	return v
}

// RenderCAPM renders a CAPM expected return to markdown.
func RenderCAPM(v *CAPM) string {
	return renderTemplate("capm", "capm.md", nil, v)
}
