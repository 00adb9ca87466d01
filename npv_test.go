package finkit

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNPV_ReferenceScenario(t *testing.T) {
	res, err := NPV(D(10000), Ds(3000, 3000, 3000, 3000, 3000), D(0.10))
	if err != nil {
		t.Fatalf("NPV() failed: %v", err)
	}
	checkClose(t, "NPV", res.NPV, 1372.36, 0.005)
	if res.IRRErr != nil {
		t.Fatalf("IRR error: %v", res.IRRErr)
	}
	checkClose(t, "IRR", res.IRR, 0.1524, 0.00005)
	if res.PaybackErr != nil {
		t.Fatalf("Payback error: %v", res.PaybackErr)
	}
	checkClose(t, "Payback", res.Payback, 3.3333, 0.0001)

	if len(res.Discounted) != 5 {
		t.Fatalf("len(Discounted) = %d, want 5", len(res.Discounted))
	}
	checkClose(t, "Discounted[0]", res.Discounted[0], 2727.2727, 0.0001)
	checkClose(t, "Discounted[4]", res.Discounted[4], 1862.7640, 0.0001)

	// npv = -investment + sum(discounted)
	sum := decimal.Zero
	for _, d := range res.Discounted {
		sum = sum.Add(d)
	}
	if !sum.Sub(res.Investment).Equal(res.NPV) {
		t.Errorf("NPV = %s, want -investment + sum(discounted) = %s", res.NPV, sum.Sub(res.Investment))
	}
}

func TestNPV_ZeroCashFlows(t *testing.T) {
	for _, investment := range []float64{0, 1, 10000, 123456.78} {
		res, err := NPV(D(investment), Ds(0, 0, 0), D(0.07))
		if err != nil {
			t.Fatalf("NPV() failed: %v", err)
		}
		if want := D(investment).Neg(); !res.NPV.Equal(want) {
			t.Errorf("NPV(%v, zeros) = %s, want %s", investment, res.NPV, want)
		}
		if !errors.Is(res.IRRErr, ErrNoRootFound) {
			t.Errorf("IRRErr = %v, want ErrNoRootFound", res.IRRErr)
		}
	}
}

func TestNPV_InvalidInputs(t *testing.T) {
	testCases := []struct {
		name  string
		flows []decimal.Decimal
		rate  decimal.Decimal
		want  error
	}{
		{"rate at -100%", Ds(100), D(-1), ErrInvalidRate},
		{"rate below -100%", Ds(100), D(-1.5), ErrInvalidRate},
		{"no cash flow", nil, D(0.1), ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NPV(D(100), tc.flows, tc.rate)
			if !errors.Is(err, tc.want) {
				t.Errorf("NPV() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestIRR_RoundTrip(t *testing.T) {
	testCases := []struct {
		name       string
		investment float64
		flows      []float64
	}{
		{"annuity", 10000, []float64{3000, 3000, 3000, 3000, 3000}},
		{"single period", 100, []float64{110}},
		{"growing", 50000, []float64{5000, 10000, 15000, 20000, 25000, 30000}},
		{"negative irr", 1000, []float64{400, 400}},
		{"high irr", 100, []float64{500, 500}},
		{"uneven", 2500, []float64{-200, 1500, 0, 2000}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			flows := Ds(tc.flows...)
			irr, err := IRR(D(tc.investment), flows)
			if err != nil {
				t.Fatalf("IRR() failed: %v", err)
			}
			res, err := NPV(D(tc.investment), flows, irr)
			if err != nil {
				t.Fatalf("NPV(irr=%s) failed: %v", irr, err)
			}
			checkClose(t, "NPV at IRR", res.NPV, 0, 1e-4)
		})
	}
}

func TestIRR_KnownValues(t *testing.T) {
	irr, err := IRR(D(100), Ds(110))
	if err != nil {
		t.Fatalf("IRR() failed: %v", err)
	}
	checkClose(t, "IRR", irr, 0.10, 1e-6)

	irr, err = IRR(D(1000), Ds(400, 400))
	if err != nil {
		t.Fatalf("IRR() failed: %v", err)
	}
	if !irr.IsNegative() {
		t.Errorf("IRR = %s, want a negative rate", irr)
	}
}

func TestIRR_NoRoot(t *testing.T) {
	testCases := []struct {
		name       string
		investment float64
		flows      []float64
	}{
		{"all positive", -100, []float64{10, 20}},
		{"all negative", 100, []float64{-10, -20}},
		{"all zero", 0, []float64{0, 0}},
		{"sign change without a real root", 100, []float64{300, -300}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IRR(D(tc.investment), Ds(tc.flows...))
			if !errors.Is(err, ErrNoRootFound) {
				t.Errorf("IRR() = %s, %v, want ErrNoRootFound", got, err)
			}
		})
	}
}

func TestSolver_IterationBudget(t *testing.T) {
	s := Solver{MaxIterations: 2, Tolerance: decimal.New(1, -12)}
	_, err := s.IRR(D(10000), Ds(3000, 3000, 3000, 3000, 3000))
	if !errors.Is(err, ErrNoRootFound) {
		t.Errorf("IRR() with a tiny budget error = %v, want ErrNoRootFound", err)
	}
}

func TestPayback(t *testing.T) {
	testCases := []struct {
		name       string
		investment float64
		flows      []float64
		want       float64
		wantErr    error
	}{
		{"fractional", 10000, []float64{3000, 3000, 3000, 3000, 3000}, 3.3333, nil},
		{"exact end of period", 1000, []float64{500, 500}, 2, nil},
		{"first period", 100, []float64{400}, 0.25, nil},
		{"after a negative flow", 1000, []float64{-500, 1000, 1000}, 2.5, nil},
		{"unreached", 10000, []float64{1000, 1000}, 0, ErrPaybackUnreached},
		{"zero flow in the recovery period", 0, []float64{0, 100}, 0, ErrDivisionUndefined},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Payback(D(tc.investment), Ds(tc.flows...))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Payback() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Payback() failed: %v", err)
			}
			checkClose(t, "Payback", got, tc.want, 0.0001)
		})
	}
}

func TestSensitivity(t *testing.T) {
	investment, flows, rate := D(10000), Ds(3000, 3000, 3000, 3000, 3000), D(0.10)
	entries, err := Sensitivity(investment, flows, rate, D(0.10))
	if err != nil {
		t.Fatalf("Sensitivity() failed: %v", err)
	}
	if len(entries) != 3+5 {
		t.Fatalf("len(entries) = %d, want 8", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Range.LessThan(entries[i-1].Range) {
			t.Errorf("entries not sorted by ascending range at %d: %s < %s", i, entries[i].Range, entries[i-1].Range)
		}
	}

	byName := make(map[string]SensitivityEntry)
	for _, e := range entries {
		byName[e.Variable] = e
	}
	inv, ok := byName[VariableInvestment]
	if !ok {
		t.Fatalf("missing %q entry", VariableInvestment)
	}
	checkClose(t, "investment low", inv.Low, 2372.36, 0.005)
	checkClose(t, "investment high", inv.High, 372.36, 0.005)
	checkClose(t, "investment range", inv.Range, 2000, 1e-9)
	checkClose(t, "investment low impact", inv.LowImpact, 1000, 1e-9)

	cfs := byName[VariableCashFlows]
	checkClose(t, "cash flows range", cfs.Range, 2*1137.236, 0.01)

	dr := byName[VariableRate]
	if !dr.Low.GreaterThan(dr.High) {
		t.Errorf("a lower discount rate must give a higher NPV: low=%s high=%s", dr.Low, dr.High)
	}

	// the widest bar is the aggregate cash flows one.
	if last := entries[len(entries)-1]; last.Variable != VariableCashFlows {
		t.Errorf("widest bar = %q, want %q", last.Variable, VariableCashFlows)
	}
	if _, ok := byName["Year 3 Cash Flow"]; !ok {
		t.Errorf("missing per period entry")
	}
}

func TestSensitivity_InvalidPerturbation(t *testing.T) {
	_, err := Sensitivity(D(100), Ds(60, 60), D(0.1), D(-0.1))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Sensitivity() error = %v, want ErrInvalidInput", err)
	}
}

func TestSensitivity_UndefinedEntry(t *testing.T) {
	// -95% scaled by 1.1 is below -100%
	entries, err := Sensitivity(D(100), Ds(60, 60), D(-0.95), D(0.10))
	if err != nil {
		t.Fatalf("Sensitivity() failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("len(entries) = %d, want 5", len(entries))
	}
	for _, e := range entries {
		if e.Variable == VariableRate {
			if !errors.Is(e.Err, ErrInvalidRate) {
				t.Errorf("%s entry error = %v, want ErrInvalidRate", e.Variable, e.Err)
			}
			continue
		}
		if e.Err != nil {
			t.Errorf("%s entry error = %v, want nil", e.Variable, e.Err)
		}
		if !e.Range.IsPositive() {
			t.Errorf("%s range = %s, want positive", e.Variable, e.Range)
		}
	}

	b, err := json.Marshal(entries[0])
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if want := `{"variable":"Discount Rate","error":"invalid_rate"}`; string(b) != want {
		t.Errorf("json.Marshal() = %s, want %s", b, want)
	}
}

func TestNPVResult_MarshalJSON(t *testing.T) {
	res, err := NPV(D(100), Ds(0, 0), D(0.1))
	if err != nil {
		t.Fatalf("NPV() failed: %v", err)
	}
	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"npv":"-100"`, `"irrError":"no_root_found"`, `"paybackError":"payback_unreached"`} {
		if !strings.Contains(got, want) {
			t.Errorf("json %s does not contain %s", got, want)
		}
	}
}
