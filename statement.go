package finkit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// IncomeInputs are the income statement line items. Expenses are entered as
// negative amounts, rates as fractions.
type IncomeInputs struct {
	Revenue          decimal.Decimal `json:"revenue"`
	COGS             decimal.Decimal `json:"cogs"`
	OperatingExpense decimal.Decimal `json:"operatingExpenses"`
	Interest         decimal.Decimal `json:"interestExpense"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	OldTaxRate       decimal.Decimal `json:"oldTaxRate"` // rate deferred taxes were measured at
}

// CashFlowInputs are the cash flow statement line items. Outflows are
// negative.
type CashFlowInputs struct {
	Depreciation        decimal.Decimal `json:"depreciation"`
	WorkingCapitalDelta decimal.Decimal `json:"workingCapitalChange"`
	Capex               decimal.Decimal `json:"capex"`
	OpeningCash         decimal.Decimal `json:"openingCash"`
}

// BalanceInputs are the balance sheet line items. Cash is not an input, it is
// the closing cash of the cash flow statement.
type BalanceInputs struct {
	Receivables           decimal.Decimal `json:"receivables"`
	Inventory             decimal.Decimal `json:"inventory"`
	PPE                   decimal.Decimal `json:"ppe"`
	CurrentLiabilities    decimal.Decimal `json:"currentLiabilities"`
	NonCurrentLiabilities decimal.Decimal `json:"nonCurrentLiabilities"`
	ShareCapital          decimal.Decimal `json:"shareCapital"`
	RetainedEarnings      decimal.Decimal `json:"retainedEarnings"`
}

// StatementInputs link the three statements.
type StatementInputs struct {
	Income   IncomeInputs   `json:"income"`
	CashFlow CashFlowInputs `json:"cashFlow"`
	Balance  BalanceInputs  `json:"balance"`
}

// DefaultStatementInputs returns a small manufacturing company whose
// statements balance exactly.
func DefaultStatementInputs() StatementInputs {
	return StatementInputs{
		Income: IncomeInputs{
			Revenue:          D(500_000),
			COGS:             D(-325_000),
			OperatingExpense: D(-120_000),
			Interest:         D(-15_000),
			TaxRate:          D(0.25),
			OldTaxRate:       D(0.25),
		},
		CashFlow: CashFlowInputs{
			Depreciation:        D(25_000),
			WorkingCapitalDelta: D(-5_000),
			Capex:               D(-30_000),
			OpeningCash:         D(40_000),
		},
		Balance: BalanceInputs{
			Receivables:           D(60_000),
			Inventory:             D(55_000),
			PPE:                   D(300_000),
			CurrentLiabilities:    D(75_000),
			NonCurrentLiabilities: D(150_000),
			ShareCapital:          D(120_000),
			RetainedEarnings:      D(130_000),
		},
	}
}

// Validate checks tax rates are within [0, 1].
func (in StatementInputs) Validate() error {
	var errs []error
	for _, r := range []struct {
		name string
		rate decimal.Decimal
	}{
		{"tax rate", in.Income.TaxRate},
		{"old tax rate", in.Income.OldTaxRate},
	} {
		if r.rate.IsNegative() || r.rate.GreaterThan(one) {
			errs = append(errs, fmt.Errorf("%w: %s must be within [0%%, 100%%], got %s%%", ErrInvalidInput, r.name, r.rate.Shift(2)))
		}
	}
	return errors.Join(errs...)
}

// StatementResult holds the derived line items of the three statements.
type StatementResult struct {
	Inputs StatementInputs `json:"inputs"`

	// income statement
	GrossProfit                decimal.Decimal `json:"grossProfit"`
	EBIT                       decimal.Decimal `json:"ebit"`
	EBITDA                     decimal.Decimal `json:"ebitda"`
	ProfitBeforeTax            decimal.Decimal `json:"profitBeforeTax"`
	TaxExpense                 decimal.Decimal `json:"taxExpense"`
	TaxRemeasurementAdjustment decimal.Decimal `json:"taxRemeasurementAdjustment"`
	NetIncome                  decimal.Decimal `json:"netIncome"`

	// cash flow statement
	CashFromOps decimal.Decimal `json:"cashFromOperations"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
	ClosingCash decimal.Decimal `json:"closingCash"`

	// balance sheet
	CurrentAssets     decimal.Decimal `json:"currentAssets"`
	TotalAssets       decimal.Decimal `json:"totalAssets"`
	TotalLiabilities  decimal.Decimal `json:"totalLiabilities"`
	TotalEquity       decimal.Decimal `json:"totalEquity"`
	BalanceDifference decimal.Decimal `json:"balanceDifference"` // assets - (liabilities + equity)
}

// BalanceTolerance is the largest balance difference, in currency units,
// under which a balance sheet is balanced.
var BalanceTolerance = one

// Balanced reports whether |BalanceDifference| < BalanceTolerance.
func (r StatementResult) Balanced() bool {
	return r.BalanceDifference.Abs().LessThan(BalanceTolerance)
}

// TaxRemeasurementAdjustment returns (newRate - oldRate) × profitBeforeTax,
// the one-off gain or loss from remeasuring deferred taxes at a new rate. Added
// to net income, it offsets the change in this year's tax expense.
func TaxRemeasurementAdjustment(profitBeforeTax, newRate, oldRate decimal.Decimal) decimal.Decimal {
	return newRate.Sub(oldRate).Mul(profitBeforeTax)
}

// ComputeStatements rolls the income statement into the cash flow statement
// and the closing cash into the balance sheet.
func ComputeStatements(in StatementInputs) (StatementResult, error) {
	if err := in.Validate(); err != nil {
		return StatementResult{}, err
	}
	i, c, b := in.Income, in.CashFlow, in.Balance
	r := StatementResult{Inputs: in}

	r.GrossProfit = i.Revenue.Add(i.COGS)
	r.EBIT = r.GrossProfit.Add(i.OperatingExpense)
	r.EBITDA = r.EBIT.Add(c.Depreciation)
	r.ProfitBeforeTax = r.EBIT.Add(i.Interest)
	r.TaxExpense = r.ProfitBeforeTax.Mul(i.TaxRate).Neg()
	r.TaxRemeasurementAdjustment = TaxRemeasurementAdjustment(r.ProfitBeforeTax, i.TaxRate, i.OldTaxRate)
	r.NetIncome = r.ProfitBeforeTax.Add(r.TaxExpense).Add(r.TaxRemeasurementAdjustment)

	r.CashFromOps = r.NetIncome.Add(c.Depreciation).Add(c.WorkingCapitalDelta)
	r.NetCashFlow = r.CashFromOps.Add(c.Capex)
	r.ClosingCash = c.OpeningCash.Add(r.NetCashFlow)

	r.CurrentAssets = r.ClosingCash.Add(b.Receivables).Add(b.Inventory)
	r.TotalAssets = r.CurrentAssets.Add(b.PPE)
	r.TotalLiabilities = b.CurrentLiabilities.Add(b.NonCurrentLiabilities)
	r.TotalEquity = b.ShareCapital.Add(b.RetainedEarnings)
	r.BalanceDifference = r.TotalAssets.Sub(r.TotalLiabilities.Add(r.TotalEquity))
	return r, nil
}
