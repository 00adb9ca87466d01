// Package finkit provides the calculation engines behind a personal corporate
// finance toolbox. Every engine is a pure function over its inputs: it holds
// no state, performs no I/O and can run concurrently with any other call.
//
// The engines are:
//   - Time value of money: present value, compounding, discount factors and
//     annuity sums. Every other engine is composed from these.
//   - Investment appraisal: Net Present Value, Internal Rate of Return,
//     fractional payback period and a tornado-style sensitivity analysis.
//   - CAPM: expected return from the risk-free rate, beta and market return.
//   - DCF: multi-year free cash flow projection, Gordon growth terminal value,
//     enterprise, equity and per-share value.
//   - WACC: capital structure weighting with the debt tax shield.
//   - Bond pricing: present value of a coupon schedule and face value.
//   - Financial statements: income statement, cash flow statement and balance
//     sheet roll-up with a balance check and a table of ratios.
//
// Amounts and rates are exact decimals (rates are fractions, 0.10 is 10%).
// Conditions that make a result undefined are reported through the sentinel
// errors of this package, or through the error fields of the results that can
// be partially defined, so that callers can render a specific message for
// each of them.
//
// This package serves as the foundational logic for the `fin` command-line
// tool and its JSON API.
package finkit
