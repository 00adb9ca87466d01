package finkit

import (
	"cmp"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// NPVResult is the appraisal of an investment: its Net Present Value at a
// given rate, the discounted cash flows, and the rate independent measures
// IRR and payback period.
//
// IRR and Payback are only meaningful when IRRErr and PaybackErr are nil.
type NPVResult struct {
	Investment decimal.Decimal   // initial outlay, at period 0
	Flows      []decimal.Decimal // cash flows of periods 1..N
	Rate       decimal.Decimal   // discount rate
	NPV        decimal.Decimal
	Discounted []decimal.Decimal // present value of each flow, periods 1..N
	IRR        decimal.Decimal
	IRRErr     error
	Payback    decimal.Decimal // in periods, fractional
	PaybackErr error
}

// MarshalJSON writes the result with the undefined variants as error codes.
func (r NPVResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("investment", r.Investment)
	w.Append("rate", r.Rate)
	w.Append("flows", r.Flows)
	w.Append("npv", r.NPV)
	w.Append("discounted", r.Discounted)
	w.Variant("irr", r.IRR, r.IRRErr)
	w.Variant("payback", r.Payback, r.PaybackErr)
	return w.MarshalJSON()
}

// Solver finds internal rates of return by bisection. Its zero value is not
// usable, start from DefaultSolver.
type Solver struct {
	// MaxIterations bounds the number of bisection steps.
	MaxIterations int
	// Tolerance is the absolute NPV under which a rate is accepted as a root.
	Tolerance decimal.Decimal
}

// DefaultSolver is used by IRR and NPV.
var DefaultSolver = Solver{
	MaxIterations: 1000,
	Tolerance:     decimal.New(1, -6),
}

func checkFlows(flows []decimal.Decimal) error {
	if len(flows) == 0 {
		return fmt.Errorf("%w: at least one period of cash flow is required", ErrInvalidInput)
	}
	return nil
}

// npv returns -investment + Σ flows[t-1]/(1+rate)^t and the discounted flows.
func npv(investment decimal.Decimal, flows []decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, []decimal.Decimal, error) {
	sum, pvs, err := discount(flows, rate)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return sum.Sub(investment), pvs, nil
}

// NPV appraises an investment of 'investment' at period 0 followed by 'flows'
// at periods 1..N, discounted at 'rate'.
//
// An error is returned only for invalid inputs; undefined IRR or payback are
// reported in the result.
func NPV(investment decimal.Decimal, flows []decimal.Decimal, rate decimal.Decimal) (NPVResult, error) {
	return DefaultSolver.NPV(investment, flows, rate)
}

// NPV is like the package NPV function but solves the IRR with s.
func (s Solver) NPV(investment decimal.Decimal, flows []decimal.Decimal, rate decimal.Decimal) (NPVResult, error) {
	if err := checkFlows(flows); err != nil {
		return NPVResult{}, err
	}
	value, discounted, err := npv(investment, flows, rate)
	if err != nil {
		return NPVResult{}, err
	}
	res := NPVResult{
		Investment: investment,
		Flows:      flows,
		Rate:       rate,
		NPV:        value,
		Discounted: discounted,
	}
	res.IRR, res.IRRErr = s.IRR(investment, flows)
	res.Payback, res.PaybackErr = Payback(investment, flows)
	return res, nil
}

// IRR returns the rate r at which NPV(investment, flows, r) is zero.
func IRR(investment decimal.Decimal, flows []decimal.Decimal) (decimal.Decimal, error) {
	return DefaultSolver.IRR(investment, flows)
}

// signChanges reports whether the series -investment, flows... has both a
// strictly negative and a strictly positive term.
func signChanges(investment decimal.Decimal, flows []decimal.Decimal) bool {
	neg, pos := investment.IsPositive(), investment.IsNegative()
	for _, cf := range flows {
		neg = neg || cf.IsNegative()
		pos = pos || cf.IsPositive()
	}
	return neg && pos
}

// IRR searches a bracket around 0% where the NPV changes sign, expanding it
// upwards by doubling and downwards towards -100%, then bisects it.
//
// ErrNoRootFound is returned when the cash flows never change sign, when no
// bracket is found, or when the bisection does not converge within
// s.MaxIterations.
func (s Solver) IRR(investment decimal.Decimal, flows []decimal.Decimal) (decimal.Decimal, error) {
	if err := checkFlows(flows); err != nil {
		return decimal.Zero, err
	}
	if !signChanges(investment, flows) {
		return decimal.Zero, fmt.Errorf("%w: cash flows never change sign", ErrNoRootFound)
	}
	f := func(r decimal.Decimal) (decimal.Decimal, error) {
		v, _, err := npv(investment, flows, r)
		return v, err
	}

	flo, _ := f(decimal.Zero)
	if flo.IsZero() {
		return decimal.Zero, nil
	}
	lo, hi, found := s.bracket(f, flo)
	if !found {
		return decimal.Zero, fmt.Errorf("%w: no rate between -100%% and %s%% zeroes the NPV", ErrNoRootFound, maxBracket.Shift(2))
	}
	flo, _ = f(lo)

	minWidth := decimal.New(1, -14)
	for i := 0; i < s.MaxIterations; i++ {
		mid := lo.Add(hi).Div(two)
		fmid, err := f(mid)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrNoRootFound, err)
		}
		if fmid.Abs().LessThan(s.Tolerance) || hi.Sub(lo).LessThan(minWidth) {
			return mid, nil
		}
		if fmid.Sign() == flo.Sign() {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return decimal.Zero, fmt.Errorf("%w: no convergence after %d iterations", ErrNoRootFound, s.MaxIterations)
}

var maxBracket = decimal.NewFromInt(1_000_000)

// bracket walks away from 0% until f changes sign, first upwards by doubling
// (10%, 20%, 40%...) then downwards towards -100% (-50%, -75%...). It returns
// the two last rates visited, lo < hi, which straddle a root.
//
// The downward walk stops as soon as a rate is no longer above -100% once
// rounded, or f fails on it: a rate f cannot evaluate never closes a bracket.
func (s Solver) bracket(f func(decimal.Decimal) (decimal.Decimal, error), f0 decimal.Decimal) (lo, hi decimal.Decimal, found bool) {
	prev := decimal.Zero
	for r := decimal.New(1, -1); r.LessThanOrEqual(maxBracket); r = r.Mul(two) {
		v, err := f(r)
		if err != nil {
			break
		}
		if v.Sign() != f0.Sign() {
			return prev, r, true
		}
		prev = r
	}
	prev = decimal.Zero
	for i, r := 0, decimal.New(-5, -1); i < 60 && checkRate(r) == nil; i, r = i+1, r.Sub(one).Div(two) {
		v, err := f(r)
		if err != nil {
			break
		}
		if v.Sign() != f0.Sign() {
			return r, prev, true
		}
		prev = r
	}
	return decimal.Zero, decimal.Zero, false
}

// Payback returns the number of periods, fractional, after which cumulative
// undiscounted cash flows recover the investment: the completed periods plus
// the share of the recovery period's cash flow still needed.
//
// ErrPaybackUnreached is returned when the investment is never recovered, and
// ErrDivisionUndefined when the recovery period's cash flow is zero.
func Payback(investment decimal.Decimal, flows []decimal.Decimal) (decimal.Decimal, error) {
	if err := checkFlows(flows); err != nil {
		return decimal.Zero, err
	}
	cumulative := decimal.Zero
	for i, cf := range flows {
		prev := cumulative
		cumulative = cumulative.Add(cf)
		if cumulative.LessThan(investment) {
			continue
		}
		if cf.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: period %d", ErrDivisionUndefined, i+1)
		}
		remaining := investment.Sub(prev)
		return decimal.NewFromInt(int64(i)).Add(remaining.Div(cf)), nil
	}
	return decimal.Zero, ErrPaybackUnreached
}

// SensitivityEntry is one bar of a tornado chart: the NPV when Variable is
// scaled down and up by the perturbation, all other inputs at base.
//
// When one of the two scaled inputs cannot be evaluated (a rate scaled to
// -100% or below) Err is set and the figures are zero.
type SensitivityEntry struct {
	Variable   string
	Low        decimal.Decimal
	High       decimal.Decimal
	LowImpact  decimal.Decimal // Low - base NPV
	HighImpact decimal.Decimal // High - base NPV
	Range      decimal.Decimal // |High - Low|
	Err        error
}

// MarshalJSON writes the entry, or its error code when it is undefined.
func (e SensitivityEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("variable", e.Variable)
	if e.Err != nil {
		w.Append("error", ErrorCode(e.Err))
		return w.MarshalJSON()
	}
	w.Append("npvLow", e.Low)
	w.Append("npvHigh", e.High)
	w.Append("lowImpact", e.LowImpact)
	w.Append("highImpact", e.HighImpact)
	w.Append("range", e.Range)
	return w.MarshalJSON()
}

// Sensitivity variable names.
const (
	VariableInvestment = "Initial Investment"
	VariableCashFlows  = "Cash Flows"
	VariableRate       = "Discount Rate"
)

// Sensitivity recomputes the NPV with one input at a time scaled by (1-pct)
// and (1+pct): the investment, all cash flows together, each cash flow on its
// own ("Year t Cash Flow") and the discount rate.
//
// Entries are sorted by ascending range, the widest bar last. Undefined
// entries have a zero range.
func Sensitivity(investment decimal.Decimal, flows []decimal.Decimal, rate, pct decimal.Decimal) ([]SensitivityEntry, error) {
	if err := checkFlows(flows); err != nil {
		return nil, err
	}
	if pct.IsNegative() {
		return nil, fmt.Errorf("%w: perturbation must not be negative, got %s", ErrInvalidInput, pct)
	}
	base, _, err := npv(investment, flows, rate)
	if err != nil {
		return nil, err
	}
	down, up := one.Sub(pct), one.Add(pct)

	scaleAll := func(k decimal.Decimal) []decimal.Decimal {
		out := make([]decimal.Decimal, len(flows))
		for i, cf := range flows {
			out[i] = cf.Mul(k)
		}
		return out
	}
	scaleOne := func(at int, k decimal.Decimal) []decimal.Decimal {
		out := make([]decimal.Decimal, len(flows))
		copy(out, flows)
		out[at] = out[at].Mul(k)
		return out
	}

	type scenario struct {
		name string
		eval func(k decimal.Decimal) (decimal.Decimal, error)
	}
	scenarios := []scenario{
		{VariableInvestment, func(k decimal.Decimal) (decimal.Decimal, error) {
			v, _, err := npv(investment.Mul(k), flows, rate)
			return v, err
		}},
		{VariableCashFlows, func(k decimal.Decimal) (decimal.Decimal, error) {
			v, _, err := npv(investment, scaleAll(k), rate)
			return v, err
		}},
		{VariableRate, func(k decimal.Decimal) (decimal.Decimal, error) {
			v, _, err := npv(investment, flows, rate.Mul(k))
			return v, err
		}},
	}
	if len(flows) > 1 {
		for i := range flows {
			scenarios = append(scenarios, scenario{fmt.Sprintf("Year %d Cash Flow", i+1), func(k decimal.Decimal) (decimal.Decimal, error) {
				v, _, err := npv(investment, scaleOne(i, k), rate)
				return v, err
			}})
		}
	}

	entries := make([]SensitivityEntry, 0, len(scenarios))
	for _, sc := range scenarios {
		e := SensitivityEntry{Variable: sc.name}
		low, errLow := sc.eval(down)
		high, errHigh := sc.eval(up)
		if e.Err = cmp.Or(errLow, errHigh); e.Err != nil {
			entries = append(entries, e)
			continue
		}
		e.Low, e.High = low, high
		e.LowImpact, e.HighImpact = low.Sub(base), high.Sub(base)
		e.Range = high.Sub(low).Abs()
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Range.LessThan(entries[j].Range) })
	return entries, nil
}
