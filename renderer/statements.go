package renderer

import (
	"github.com/etnz/finkit"
)

// Statements are the three linked statements and their ratios prepared for
// rendering.
type Statements struct {
	// income statement
	Revenue          finkit.Money   `json:"revenue"`
	COGS             finkit.Money   `json:"cogs"`
	GrossProfit      finkit.Money   `json:"grossProfit"`
	OperatingExpense finkit.Money   `json:"operatingExpense"`
	EBIT             finkit.Money   `json:"ebit"`
	EBITDA           finkit.Money   `json:"ebitda"`
	Interest         finkit.Money   `json:"interest"`
	ProfitBeforeTax  finkit.Money   `json:"profitBeforeTax"`
	TaxRate          finkit.Percent `json:"taxRate"`
	OldTaxRate       finkit.Percent `json:"oldTaxRate"`
	TaxRateChanged   bool           `json:"taxRateChanged"`
	TaxExpense       finkit.Money   `json:"taxExpense"`
	Remeasurement    finkit.Money   `json:"remeasurement"`
	NetIncome        finkit.Money   `json:"netIncome"`

	// cash flow statement
	Depreciation   finkit.Money `json:"depreciation"`
	WorkingCapital finkit.Money `json:"workingCapital"`
	CashFromOps    finkit.Money `json:"cashFromOps"`
	Capex          finkit.Money `json:"capex"`
	NetCashFlow    finkit.Money `json:"netCashFlow"`
	OpeningCash    finkit.Money `json:"openingCash"`
	ClosingCash    finkit.Money `json:"closingCash"`

	// balance sheet
	Receivables           finkit.Money `json:"receivables"`
	Inventory             finkit.Money `json:"inventory"`
	CurrentAssets         finkit.Money `json:"currentAssets"`
	PPE                   finkit.Money `json:"ppe"`
	TotalAssets           finkit.Money `json:"totalAssets"`
	CurrentLiabilities    finkit.Money `json:"currentLiabilities"`
	NonCurrentLiabilities finkit.Money `json:"nonCurrentLiabilities"`
	TotalLiabilities      finkit.Money `json:"totalLiabilities"`
	ShareCapital          finkit.Money `json:"shareCapital"`
	RetainedEarnings      finkit.Money `json:"retainedEarnings"`
	TotalEquity           finkit.Money `json:"totalEquity"`
	LiabilitiesAndEquity  finkit.Money `json:"liabilitiesAndEquity"`
	Balanced              bool         `json:"balanced"`
	BalanceDifference     finkit.Money `json:"balanceDifference"`

	Ratios []RatioGroup `json:"ratios,omitempty"`
}

// RatioGroup is one category of the ratio table.
type RatioGroup struct {
	Category string      `json:"category"`
	Ratios   []RatioLine `json:"ratios"`
}

// RatioLine is one row of the ratio table.
type RatioLine struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	GoodRange   string `json:"goodRange"`
	Explanation string `json:"explanation"`
}

// NewStatements prepares statements for rendering. ratios may be nil.
func NewStatements(s finkit.StatementResult, ratios finkit.RatioTable, currency string) *Statements {
	m := money{currency}
	in := s.Inputs
	v := &Statements{
		Revenue:          m.of(in.Income.Revenue),
		COGS:             m.of(in.Income.COGS),
		GrossProfit:      m.of(s.GrossProfit),
		OperatingExpense: m.of(in.Income.OperatingExpense),
		EBIT:             m.of(s.EBIT),
		EBITDA:           m.of(s.EBITDA),
		Interest:         m.of(in.Income.Interest),
		ProfitBeforeTax:  m.of(s.ProfitBeforeTax),
		TaxRate:          finkit.P(in.Income.TaxRate),
		OldTaxRate:       finkit.P(in.Income.OldTaxRate),
		TaxRateChanged:   !in.Income.TaxRate.Equal(in.Income.OldTaxRate),
		TaxExpense:       m.of(s.TaxExpense),
		Remeasurement:    m.of(s.TaxRemeasurementAdjustment),
		NetIncome:        m.of(s.NetIncome),

		Depreciation:   m.of(in.CashFlow.Depreciation),
		WorkingCapital: m.of(in.CashFlow.WorkingCapitalDelta),
		CashFromOps:    m.of(s.CashFromOps),
		Capex:          m.of(in.CashFlow.Capex),
		NetCashFlow:    m.of(s.NetCashFlow),
		OpeningCash:    m.of(in.CashFlow.OpeningCash),
		ClosingCash:    m.of(s.ClosingCash),

		Receivables:           m.of(in.Balance.Receivables),
		Inventory:             m.of(in.Balance.Inventory),
		CurrentAssets:         m.of(s.CurrentAssets),
		PPE:                   m.of(in.Balance.PPE),
		TotalAssets:           m.of(s.TotalAssets),
		CurrentLiabilities:    m.of(in.Balance.CurrentLiabilities),
		NonCurrentLiabilities: m.of(in.Balance.NonCurrentLiabilities),
		TotalLiabilities:      m.of(s.TotalLiabilities),
		ShareCapital:          m.of(in.Balance.ShareCapital),
		RetainedEarnings:      m.of(in.Balance.RetainedEarnings),
		TotalEquity:           m.of(s.TotalEquity),
		LiabilitiesAndEquity:  m.of(s.TotalLiabilities.Add(s.TotalEquity)),
		Balanced:              s.Balanced(),
		BalanceDifference:     m.of(s.BalanceDifference),
	}
	for _, c := range finkit.RatioCategories {
		rs := ratios.Category(c)
		if len(rs) == 0 {
			continue
		}
		g := RatioGroup{Category: c.String()}
		for _, r := range rs {
			g.Ratios = append(g.Ratios, RatioLine{
				Name:        r.Name,
				Value:       ratioValue(r),
				GoodRange:   r.GoodRange,
				Explanation: r.Explanation,
			})
		}
		v.Ratios = append(v.Ratios, g)
	}
	return v
}

func ratioValue(r finkit.Ratio) string {
	switch {
	case r.Err != nil:
		return undefined(r.Err)
	case r.Percent:
		return finkit.P(r.Value).String()
	default:
		return r.Value.StringFixed(2)
	}
}

// RenderStatements renders the three statements, and the ratios if any, to
// markdown.
func RenderStatements(v *Statements) string {
	partials := map[string]string{
		"statements_income":   "statements_income.md",
		"statements_cashflow": "statements_cashflow.md",
		"statements_balance":  "statements_balance.md",
		"statements_ratios":   "statements_ratios.md",
	}
	return renderTemplate("statements", "statements.md", partials, v)
}
