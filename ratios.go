package finkit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RatioCategory groups financial ratios.
type RatioCategory int

// Ratio categories, in report order.
const (
	LiquidityRatio RatioCategory = iota
	ProfitabilityRatio
	LeverageRatio
	ReturnRatio
)

// RatioCategories lists every category in report order.
var RatioCategories = []RatioCategory{LiquidityRatio, ProfitabilityRatio, LeverageRatio, ReturnRatio}

func (c RatioCategory) String() string {
	switch c {
	case LiquidityRatio:
		return "Liquidity"
	case ProfitabilityRatio:
		return "Profitability"
	case LeverageRatio:
		return "Leverage"
	case ReturnRatio:
		return "Return"
	default:
		return fmt.Sprintf("RatioCategory(%d)", int(c))
	}
}

// MarshalText writes the category name.
func (c RatioCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Ratio is one entry of a RatioTable. Value is only meaningful when Err is
// nil.
type Ratio struct {
	Name        string
	Category    RatioCategory
	Value       decimal.Decimal
	Err         error
	Percent     bool   // Value is best read as a percentage
	GoodRange   string // indicative healthy range
	Explanation string
}

// MarshalJSON writes the ratio with an undefined value as an error code.
func (r Ratio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", r.Name)
	w.Append("category", r.Category)
	w.Variant("value", r.Value, r.Err)
	w.Optional("percent", r.Percent)
	w.Append("goodRange", r.GoodRange)
	w.Append("explanation", r.Explanation)
	return w.MarshalJSON()
}

// RatioTable lists ratios grouped by category, in report order.
type RatioTable []Ratio

// Category returns the ratios of category c.
func (t RatioTable) Category(c RatioCategory) RatioTable {
	var out RatioTable
	for _, r := range t {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// Get returns the ratio named name.
func (t RatioTable) Get(name string) (Ratio, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	return Ratio{}, false
}

// ratio returns num/den, or ErrRatioUndefined when den is zero.
func ratio(num, den decimal.Decimal) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, ErrRatioUndefined
	}
	return num.Div(den), nil
}

// ComputeRatios derives the liquidity, profitability, leverage and return
// ratios of computed statements. A zero denominator only marks its own
// ratio as undefined.
func ComputeRatios(s StatementResult) RatioTable {
	b, revenue := s.Inputs.Balance, s.Inputs.Income.Revenue
	defs := []struct {
		name        string
		category    RatioCategory
		num, den    decimal.Decimal
		percent     bool
		goodRange   string
		explanation string
	}{
		{"Current Ratio", LiquidityRatio, s.CurrentAssets, b.CurrentLiabilities, false, "1.5 – 2.5", "Short-term solvency"},
		{"Quick Ratio", LiquidityRatio, s.ClosingCash.Add(b.Receivables), b.CurrentLiabilities, false, "≥ 1.0", "Liquidity excluding inventory"},
		{"Cash Ratio", LiquidityRatio, s.ClosingCash, b.CurrentLiabilities, false, "0.2 – 0.5", "Most conservative liquidity"},
		{"Gross Margin", ProfitabilityRatio, s.GrossProfit, revenue, true, "30% – 60%", "Profit after COGS"},
		{"Operating Margin", ProfitabilityRatio, s.EBIT, revenue, true, "10% – 25%", "Core operating profitability"},
		{"Net Margin", ProfitabilityRatio, s.NetIncome, revenue, true, "5% – 20%", "Bottom-line profitability"},
		{"Debt-to-Equity", LeverageRatio, s.TotalLiabilities, s.TotalEquity, false, "0.5 – 2.0", "Financial leverage"},
		{"Debt Ratio", LeverageRatio, s.TotalLiabilities, s.TotalAssets, false, "< 0.6", "Assets financed by debt"},
		{"ROA", ReturnRatio, s.NetIncome, s.TotalAssets, true, "5% – 10%", "Return on assets"},
		{"ROE", ReturnRatio, s.NetIncome, s.TotalEquity, true, "10% – 20%", "Return on equity"},
	}
	table := make(RatioTable, len(defs))
	for i, d := range defs {
		v, err := ratio(d.num, d.den)
		table[i] = Ratio{
			Name:        d.name,
			Category:    d.category,
			Value:       v,
			Err:         err,
			Percent:     d.percent,
			GoodRange:   d.goodRange,
			Explanation: d.explanation,
		}
	}
	return table
}
