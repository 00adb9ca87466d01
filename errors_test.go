package finkit

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidRate, "invalid_rate"},
		{fmt.Errorf("period 3: %w", ErrInvalidRate), "invalid_rate"},
		{ErrNoRootFound, "no_root_found"},
		{ErrTerminalValueUndefined, "terminal_value_undefined"},
		{ErrUndefinedWeights, "undefined_weights"},
		{ErrRatioUndefined, "ratio_undefined"},
		{ErrDivisionUndefined, "division_undefined"},
		{ErrPaybackUnreached, "payback_unreached"},
		{errors.Join(fmt.Errorf("years: %w", ErrInvalidInput)), "invalid_input"},
		{errors.New("boom"), "internal"},
	}
	for _, tc := range testCases {
		if got := ErrorCode(tc.err); got != tc.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
