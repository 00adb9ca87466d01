package api

import (
	"fmt"

	"github.com/etnz/finkit"
	"github.com/shopspring/decimal"
)

// Options are the engine settings shared by every request.
type Options struct {
	Solver      finkit.Solver
	Sensitivity decimal.Decimal // default NPV perturbation
}

// DefaultOptions uses the default IRR solver and a ±10% perturbation.
func DefaultOptions() Options {
	return Options{Solver: finkit.DefaultSolver, Sensitivity: finkit.D(0.10)}
}

// NPVRequest appraises an investment.
type NPVRequest struct {
	Investment  Number   `json:"investment" yaml:"investment"`
	Rate        Number   `json:"rate" yaml:"rate"`
	CashFlows   []Number `json:"cashFlows" yaml:"cashFlows"`
	Sensitivity *Number  `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
}

// DefaultNPVRequest invests 10 000 for five yearly flows of 3 000 at 10%.
func DefaultNPVRequest() NPVRequest {
	return NPVRequest{
		Investment: N(finkit.D(10_000)),
		Rate:       N(finkit.D(0.10)),
		CashFlows:  numbers(finkit.Ds(3000, 3000, 3000, 3000, 3000)...),
	}
}

// NPVResponse is the appraisal with its sensitivity analysis.
type NPVResponse struct {
	Appraisal   finkit.NPVResult          `json:"appraisal"`
	Shock       decimal.Decimal           `json:"shock"`
	Sensitivity []finkit.SensitivityEntry `json:"sensitivity"`
}

// Compute runs the NPV engine.
func (r NPVRequest) Compute(opts Options) (NPVResponse, error) {
	flows := decimals(r.CashFlows)
	res, err := opts.Solver.NPV(r.Investment.Decimal, flows, r.Rate.Decimal)
	if err != nil {
		return NPVResponse{}, err
	}
	shock := opts.Sensitivity
	if r.Sensitivity != nil {
		shock = r.Sensitivity.Decimal
	}
	sens, err := finkit.Sensitivity(r.Investment.Decimal, flows, r.Rate.Decimal, shock)
	if err != nil {
		return NPVResponse{}, err
	}
	return NPVResponse{Appraisal: res, Shock: shock, Sensitivity: sens}, nil
}

// CAPMRequest computes an expected return. When DebtToEquity is set, Beta is
// an unlevered beta relevered at that leverage and TaxRate.
type CAPMRequest struct {
	RiskFreeRate Number  `json:"riskFreeRate" yaml:"riskFreeRate"`
	Beta         Number  `json:"beta" yaml:"beta"`
	MarketReturn Number  `json:"marketReturn" yaml:"marketReturn"`
	DebtToEquity *Number `json:"debtToEquity,omitempty" yaml:"debtToEquity,omitempty"`
	TaxRate      *Number `json:"taxRate,omitempty" yaml:"taxRate,omitempty"`
}

// DefaultCAPMRequest is a market beta asset with Rf 2% and Rm 8%.
func DefaultCAPMRequest() CAPMRequest {
	return CAPMRequest{
		RiskFreeRate: N(finkit.D(0.02)),
		Beta:         N(finkit.D(1)),
		MarketReturn: N(finkit.D(0.08)),
	}
}

// Compute runs the CAPM engine.
func (r CAPMRequest) Compute() (finkit.CAPMResult, error) {
	beta := r.Beta.Decimal
	if r.DebtToEquity != nil {
		tax := decimal.Zero
		if r.TaxRate != nil {
			tax = r.TaxRate.Decimal
		}
		var err error
		if beta, err = finkit.LeverBeta(beta, tax, r.DebtToEquity.Decimal); err != nil {
			return finkit.CAPMResult{}, err
		}
	}
	return finkit.ExpectedReturn(r.RiskFreeRate.Decimal, beta, r.MarketReturn.Decimal)
}

// DCFRequest values a firm from projected free cash flows.
type DCFRequest struct {
	Years             int    `json:"years" yaml:"years"`
	StartingRevenue   Number `json:"startingRevenue" yaml:"startingRevenue"`
	RevenueGrowth     Number `json:"revenueGrowth" yaml:"revenueGrowth"`
	EBITMargin        Number `json:"ebitMargin" yaml:"ebitMargin"`
	TaxRate           Number `json:"taxRate" yaml:"taxRate"`
	CapexPct          Number `json:"capexPct" yaml:"capexPct"`
	WorkingCapitalPct Number `json:"workingCapitalPct" yaml:"workingCapitalPct"`
	DAPct             Number `json:"daPct" yaml:"daPct"`
	WACC              Number `json:"wacc" yaml:"wacc"`
	TerminalGrowth    Number `json:"terminalGrowth" yaml:"terminalGrowth"`
	NetDebt           Number `json:"netDebt" yaml:"netDebt"`
	SharesOutstanding Number `json:"sharesOutstanding" yaml:"sharesOutstanding"`
}

// DefaultDCFRequest returns finkit.DefaultDCFAssumptions.
func DefaultDCFRequest() DCFRequest {
	a := finkit.DefaultDCFAssumptions()
	return DCFRequest{
		Years:             a.Years,
		StartingRevenue:   N(a.StartingRevenue),
		RevenueGrowth:     N(a.RevenueGrowth),
		EBITMargin:        N(a.EBITMargin),
		TaxRate:           N(a.TaxRate),
		CapexPct:          N(a.CapexPct),
		WorkingCapitalPct: N(a.WorkingCapitalPct),
		DAPct:             N(a.DAPct),
		WACC:              N(a.WACC),
		TerminalGrowth:    N(a.TerminalGrowth),
		NetDebt:           N(a.NetDebt),
		SharesOutstanding: N(a.SharesOutstanding),
	}
}

// Assumptions converts the request.
func (r DCFRequest) Assumptions() finkit.DCFAssumptions {
	return finkit.DCFAssumptions{
		Years:             r.Years,
		StartingRevenue:   r.StartingRevenue.Decimal,
		RevenueGrowth:     r.RevenueGrowth.Decimal,
		EBITMargin:        r.EBITMargin.Decimal,
		TaxRate:           r.TaxRate.Decimal,
		CapexPct:          r.CapexPct.Decimal,
		WorkingCapitalPct: r.WorkingCapitalPct.Decimal,
		DAPct:             r.DAPct.Decimal,
		WACC:              r.WACC.Decimal,
		TerminalGrowth:    r.TerminalGrowth.Decimal,
		NetDebt:           r.NetDebt.Decimal,
		SharesOutstanding: r.SharesOutstanding.Decimal,
	}
}

// Compute runs the DCF engine. An undefined terminal value returns the
// forecast together with the error.
func (r DCFRequest) Compute() (finkit.DCFResult, error) {
	return finkit.ProjectDCF(r.Assumptions())
}

// WACCRequest weights the cost of equity and debt.
type WACCRequest struct {
	Equity       Number `json:"equity" yaml:"equity"`
	Debt         Number `json:"debt" yaml:"debt"`
	CostOfEquity Number `json:"costOfEquity" yaml:"costOfEquity"`
	CostOfDebt   Number `json:"costOfDebt" yaml:"costOfDebt"`
	TaxRate      Number `json:"taxRate" yaml:"taxRate"`
}

// DefaultWACCRequest returns finkit.DefaultCapitalStructure.
func DefaultWACCRequest() WACCRequest {
	c := finkit.DefaultCapitalStructure()
	return WACCRequest{
		Equity:       N(c.Equity),
		Debt:         N(c.Debt),
		CostOfEquity: N(c.CostOfEquity),
		CostOfDebt:   N(c.CostOfDebt),
		TaxRate:      N(c.TaxRate),
	}
}

// Compute runs the WACC engine.
func (r WACCRequest) Compute() (finkit.WACCResult, error) {
	return finkit.ComputeWACC(finkit.CapitalStructure{
		Equity:       r.Equity.Decimal,
		Debt:         r.Debt.Decimal,
		CostOfEquity: r.CostOfEquity.Decimal,
		CostOfDebt:   r.CostOfDebt.Decimal,
		TaxRate:      r.TaxRate.Decimal,
	})
}

// BondRequest prices a fixed coupon bond. Frequency is "annual",
// "semi-annual", "quarterly" or the number of payments per year.
type BondRequest struct {
	FaceValue  Number `json:"faceValue" yaml:"faceValue"`
	CouponRate Number `json:"couponRate" yaml:"couponRate"`
	YieldRate  Number `json:"yieldRate" yaml:"yieldRate"`
	Years      Number `json:"years" yaml:"years"`
	Frequency  string `json:"frequency" yaml:"frequency"`
}

// DefaultBondRequest returns finkit.DefaultBondSpec.
func DefaultBondRequest() BondRequest {
	b := finkit.DefaultBondSpec()
	return BondRequest{
		FaceValue:  N(b.FaceValue),
		CouponRate: N(b.CouponRate),
		YieldRate:  N(b.YieldRate),
		Years:      N(b.Years),
		Frequency:  b.Frequency.String(),
	}
}

// Compute runs the bond engine.
func (r BondRequest) Compute() (finkit.BondPriceResult, error) {
	freq := finkit.Annual
	if r.Frequency != "" {
		var err error
		if freq, err = finkit.ParseFrequency(r.Frequency); err != nil {
			return finkit.BondPriceResult{}, err
		}
	}
	return finkit.PriceBond(finkit.BondSpec{
		FaceValue:  r.FaceValue.Decimal,
		CouponRate: r.CouponRate.Decimal,
		YieldRate:  r.YieldRate.Decimal,
		Years:      r.Years.Decimal,
		Frequency:  freq,
	})
}

// StatementsRequest links the three financial statements.
type StatementsRequest struct {
	Income struct {
		Revenue          Number `json:"revenue" yaml:"revenue"`
		COGS             Number `json:"cogs" yaml:"cogs"`
		OperatingExpense Number `json:"operatingExpenses" yaml:"operatingExpenses"`
		Interest         Number `json:"interestExpense" yaml:"interestExpense"`
		TaxRate          Number `json:"taxRate" yaml:"taxRate"`
		OldTaxRate       Number `json:"oldTaxRate" yaml:"oldTaxRate"`
	} `json:"income" yaml:"income"`
	CashFlow struct {
		Depreciation        Number `json:"depreciation" yaml:"depreciation"`
		WorkingCapitalDelta Number `json:"workingCapitalChange" yaml:"workingCapitalChange"`
		Capex               Number `json:"capex" yaml:"capex"`
		OpeningCash         Number `json:"openingCash" yaml:"openingCash"`
	} `json:"cashFlow" yaml:"cashFlow"`
	Balance struct {
		Receivables           Number `json:"receivables" yaml:"receivables"`
		Inventory             Number `json:"inventory" yaml:"inventory"`
		PPE                   Number `json:"ppe" yaml:"ppe"`
		CurrentLiabilities    Number `json:"currentLiabilities" yaml:"currentLiabilities"`
		NonCurrentLiabilities Number `json:"nonCurrentLiabilities" yaml:"nonCurrentLiabilities"`
		ShareCapital          Number `json:"shareCapital" yaml:"shareCapital"`
		RetainedEarnings      Number `json:"retainedEarnings" yaml:"retainedEarnings"`
	} `json:"balance" yaml:"balance"`
}

// DefaultStatementsRequest returns finkit.DefaultStatementInputs.
func DefaultStatementsRequest() StatementsRequest {
	in := finkit.DefaultStatementInputs()
	var r StatementsRequest
	r.Income.Revenue = N(in.Income.Revenue)
	r.Income.COGS = N(in.Income.COGS)
	r.Income.OperatingExpense = N(in.Income.OperatingExpense)
	r.Income.Interest = N(in.Income.Interest)
	r.Income.TaxRate = N(in.Income.TaxRate)
	r.Income.OldTaxRate = N(in.Income.OldTaxRate)
	r.CashFlow.Depreciation = N(in.CashFlow.Depreciation)
	r.CashFlow.WorkingCapitalDelta = N(in.CashFlow.WorkingCapitalDelta)
	r.CashFlow.Capex = N(in.CashFlow.Capex)
	r.CashFlow.OpeningCash = N(in.CashFlow.OpeningCash)
	r.Balance.Receivables = N(in.Balance.Receivables)
	r.Balance.Inventory = N(in.Balance.Inventory)
	r.Balance.PPE = N(in.Balance.PPE)
	r.Balance.CurrentLiabilities = N(in.Balance.CurrentLiabilities)
	r.Balance.NonCurrentLiabilities = N(in.Balance.NonCurrentLiabilities)
	r.Balance.ShareCapital = N(in.Balance.ShareCapital)
	r.Balance.RetainedEarnings = N(in.Balance.RetainedEarnings)
	return r
}

// StatementsResponse holds the statements and their ratios.
type StatementsResponse struct {
	Statements finkit.StatementResult `json:"statements"`
	Balanced   bool                   `json:"balanced"`
	Ratios     finkit.RatioTable      `json:"ratios"`
}

// Compute runs the statements engine and derives the ratios.
func (r StatementsRequest) Compute() (StatementsResponse, error) {
	in := finkit.StatementInputs{
		Income: finkit.IncomeInputs{
			Revenue:          r.Income.Revenue.Decimal,
			COGS:             r.Income.COGS.Decimal,
			OperatingExpense: r.Income.OperatingExpense.Decimal,
			Interest:         r.Income.Interest.Decimal,
			TaxRate:          r.Income.TaxRate.Decimal,
			OldTaxRate:       r.Income.OldTaxRate.Decimal,
		},
		CashFlow: finkit.CashFlowInputs{
			Depreciation:        r.CashFlow.Depreciation.Decimal,
			WorkingCapitalDelta: r.CashFlow.WorkingCapitalDelta.Decimal,
			Capex:               r.CashFlow.Capex.Decimal,
			OpeningCash:         r.CashFlow.OpeningCash.Decimal,
		},
		Balance: finkit.BalanceInputs{
			Receivables:           r.Balance.Receivables.Decimal,
			Inventory:             r.Balance.Inventory.Decimal,
			PPE:                   r.Balance.PPE.Decimal,
			CurrentLiabilities:    r.Balance.CurrentLiabilities.Decimal,
			NonCurrentLiabilities: r.Balance.NonCurrentLiabilities.Decimal,
			ShareCapital:          r.Balance.ShareCapital.Decimal,
			RetainedEarnings:      r.Balance.RetainedEarnings.Decimal,
		},
	}
	s, err := finkit.ComputeStatements(in)
	if err != nil {
		return StatementsResponse{}, fmt.Errorf("statements: %w", err)
	}
	return StatementsResponse{Statements: s, Balanced: s.Balanced(), Ratios: finkit.ComputeRatios(s)}, nil
}
