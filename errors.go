package finkit

import "errors"

// Conditions under which a calculation has no meaningful result.
var (
	// ErrInvalidRate is returned when a rate is less than or equal to -100%,
	// compounding by (1+rate) is then undefined.
	ErrInvalidRate = errors.New("rate must be greater than -100%")
	// ErrNoRootFound is returned when the IRR has no real solution, either
	// because the cash flows never change sign or because the solver did not
	// converge within its iteration budget.
	ErrNoRootFound = errors.New("no internal rate of return found")
	// ErrTerminalValueUndefined is returned by the DCF when the discount rate
	// does not exceed the terminal growth rate.
	ErrTerminalValueUndefined = errors.New("terminal value undefined: discount rate must exceed terminal growth rate")
	// ErrUndefinedWeights is reported by a WACC computed on zero total capital.
	ErrUndefinedWeights = errors.New("capital weights undefined: total capital is zero")
	// ErrRatioUndefined marks a ratio whose denominator is zero.
	ErrRatioUndefined = errors.New("ratio undefined: zero denominator")
	// ErrDivisionUndefined is returned by the payback when the cash flow of
	// the period in which the investment is recovered is zero.
	ErrDivisionUndefined = errors.New("payback undefined: zero cash flow in the recovery period")
	// ErrPaybackUnreached is returned when cumulative cash flows never recover
	// the initial investment.
	ErrPaybackUnreached = errors.New("payback not reached")
	// ErrInvalidInput wraps every boundary validation failure.
	ErrInvalidInput = errors.New("invalid input")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidRate, "invalid_rate"},
	{ErrNoRootFound, "no_root_found"},
	{ErrTerminalValueUndefined, "terminal_value_undefined"},
	{ErrUndefinedWeights, "undefined_weights"},
	{ErrRatioUndefined, "ratio_undefined"},
	{ErrDivisionUndefined, "division_undefined"},
	{ErrPaybackUnreached, "payback_unreached"},
	{ErrInvalidInput, "invalid_input"},
}

// ErrorCode returns a stable snake_case code for err, suitable for API
// payloads. It returns "" for a nil error and "internal" for errors outside of
// this package's taxonomy.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
