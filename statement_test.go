package finkit

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestComputeStatements_Defaults(t *testing.T) {
	r, err := ComputeStatements(DefaultStatementInputs())
	if err != nil {
		t.Fatalf("ComputeStatements() failed: %v", err)
	}
	testCases := []struct {
		name string
		got  string
		want float64
	}{
		{"GrossProfit", r.GrossProfit.String(), 175_000},
		{"EBIT", r.EBIT.String(), 55_000},
		{"EBITDA", r.EBITDA.String(), 80_000},
		{"ProfitBeforeTax", r.ProfitBeforeTax.String(), 40_000},
		{"TaxExpense", r.TaxExpense.String(), -10_000},
		{"TaxRemeasurementAdjustment", r.TaxRemeasurementAdjustment.String(), 0},
		{"NetIncome", r.NetIncome.String(), 30_000},
		{"CashFromOps", r.CashFromOps.String(), 50_000},
		{"NetCashFlow", r.NetCashFlow.String(), 20_000},
		{"ClosingCash", r.ClosingCash.String(), 60_000},
		{"CurrentAssets", r.CurrentAssets.String(), 175_000},
		{"TotalAssets", r.TotalAssets.String(), 475_000},
		{"TotalLiabilities", r.TotalLiabilities.String(), 225_000},
		{"TotalEquity", r.TotalEquity.String(), 250_000},
		{"BalanceDifference", r.BalanceDifference.String(), 0},
	}
	for _, tc := range testCases {
		if got := D(tc.want).String(); tc.got != got {
			t.Errorf("%s = %s, want %s", tc.name, tc.got, got)
		}
	}
	if !r.Balanced() {
		t.Errorf("default statements are not balanced, difference = %s", r.BalanceDifference)
	}
}

func TestComputeStatements_BalanceCheck(t *testing.T) {
	testCases := []struct {
		name         string
		retained     float64
		wantBalanced bool
		wantDiff     float64
	}{
		{"balanced", 130_000, true, 0},
		{"within tolerance", 130_000.5, true, -0.5},
		{"one unit off", 130_001, false, -1},
		{"assets exceed", 100_000, false, 30_000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := DefaultStatementInputs()
			in.Balance.RetainedEarnings = D(tc.retained)
			r, err := ComputeStatements(in)
			if err != nil {
				t.Fatalf("ComputeStatements() failed: %v", err)
			}
			checkClose(t, "BalanceDifference", r.BalanceDifference, tc.wantDiff, 1e-9)
			if got := r.Balanced(); got != tc.wantBalanced {
				t.Errorf("Balanced() = %v, want %v", got, tc.wantBalanced)
			}
			if !r.BalanceDifference.Equal(r.TotalAssets.Sub(r.TotalLiabilities.Add(r.TotalEquity))) {
				t.Errorf("BalanceDifference = %s, want assets - (liabilities + equity)", r.BalanceDifference)
			}
		})
	}
}

func TestComputeStatements_TaxRateChangeIsNeutral(t *testing.T) {
	for _, rate := range []float64{0, 0.20, 0.30, 0.5} {
		in := DefaultStatementInputs()
		in.Income.TaxRate = D(rate)
		r, err := ComputeStatements(in)
		if err != nil {
			t.Fatalf("ComputeStatements(tax=%v) failed: %v", rate, err)
		}
		checkClose(t, "NetIncome", r.NetIncome, 30_000, 1e-9)
		checkClose(t, "TaxExpense", r.TaxExpense, -40_000*rate, 1e-9)
		checkClose(t, "TaxRemeasurementAdjustment", r.TaxRemeasurementAdjustment, 40_000*(rate-0.25), 1e-9)
	}
}

func TestTaxRemeasurementAdjustment(t *testing.T) {
	testCases := []struct {
		pbt, newRate, oldRate float64
		want                  float64
	}{
		{40_000, 0.30, 0.25, 2_000},
		{40_000, 0.20, 0.25, -2_000},
		{40_000, 0.25, 0.25, 0},
		{-10_000, 0.30, 0.25, -500},
	}
	for _, tc := range testCases {
		got := TaxRemeasurementAdjustment(D(tc.pbt), D(tc.newRate), D(tc.oldRate))
		checkClose(t, "TaxRemeasurementAdjustment", got, tc.want, 1e-9)
	}
}

func TestComputeStatements_InvalidTaxRate(t *testing.T) {
	in := DefaultStatementInputs()
	in.Income.TaxRate = D(1.25)
	in.Income.OldTaxRate = D(-0.1)
	_, err := ComputeStatements(in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ComputeStatements() error = %v, want ErrInvalidInput", err)
	}
	if got := strings.Count(err.Error(), "invalid input"); got != 2 {
		t.Errorf("ComputeStatements() reported %d failures, want 2: %v", got, err)
	}
}

func TestComputeRatios_Defaults(t *testing.T) {
	r, err := ComputeStatements(DefaultStatementInputs())
	if err != nil {
		t.Fatalf("ComputeStatements() failed: %v", err)
	}
	table := ComputeRatios(r)
	testCases := []struct {
		name     string
		category RatioCategory
		want     float64
	}{
		{"Current Ratio", LiquidityRatio, 2.3333},
		{"Quick Ratio", LiquidityRatio, 1.6},
		{"Cash Ratio", LiquidityRatio, 0.8},
		{"Gross Margin", ProfitabilityRatio, 0.35},
		{"Operating Margin", ProfitabilityRatio, 0.11},
		{"Net Margin", ProfitabilityRatio, 0.06},
		{"Debt-to-Equity", LeverageRatio, 0.9},
		{"Debt Ratio", LeverageRatio, 0.4737},
		{"ROA", ReturnRatio, 0.0632},
		{"ROE", ReturnRatio, 0.12},
	}
	if len(table) != len(testCases) {
		t.Fatalf("len(table) = %d, want %d", len(table), len(testCases))
	}
	for i, tc := range testCases {
		got := table[i]
		if got.Name != tc.name || got.Category != tc.category {
			t.Errorf("table[%d] = %s/%s, want %s/%s", i, got.Name, got.Category, tc.name, tc.category)
			continue
		}
		if got.Err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, got.Err)
			continue
		}
		checkClose(t, tc.name, got.Value, tc.want, 0.00005)
		if got.GoodRange == "" || got.Explanation == "" {
			t.Errorf("%s: missing good range or explanation", tc.name)
		}
	}
	if n := len(table.Category(LeverageRatio)); n != 2 {
		t.Errorf("len(Category(Leverage)) = %d, want 2", n)
	}
}

func TestComputeRatios_ZeroDenominator(t *testing.T) {
	in := DefaultStatementInputs()
	in.Balance.CurrentLiabilities = D(0)
	in.Balance.NonCurrentLiabilities = D(225_000)
	r, err := ComputeStatements(in)
	if err != nil {
		t.Fatalf("ComputeStatements() failed: %v", err)
	}
	table := ComputeRatios(r)
	for _, ratio := range table.Category(LiquidityRatio) {
		if !errors.Is(ratio.Err, ErrRatioUndefined) {
			t.Errorf("%s: error = %v, want ErrRatioUndefined", ratio.Name, ratio.Err)
		}
	}
	roe, ok := table.Get("ROE")
	if !ok {
		t.Fatalf("missing ROE")
	}
	if roe.Err != nil {
		t.Errorf("ROE must stay defined, got %v", roe.Err)
	}

	b, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if !strings.Contains(string(b), `"valueError":"ratio_undefined"`) {
		t.Errorf("json %s does not report undefined ratios", b)
	}
	if !strings.Contains(string(b), `"category":"Liquidity"`) {
		t.Errorf("json %s does not name categories", b)
	}
}
