package finkit

import (
	"testing"

	"github.com/shopspring/decimal"
)

// closeTo reports whether got is within tol of want.
func closeTo(got decimal.Decimal, want, tol float64) bool {
	return got.Sub(decimal.NewFromFloat(want)).Abs().LessThanOrEqual(decimal.NewFromFloat(tol))
}

// checkClose fails the test when got is not within tol of want.
func checkClose(t *testing.T, name string, got decimal.Decimal, want, tol float64) {
	t.Helper()
	if !closeTo(got, want, tol) {
		t.Errorf("%s = %s, want %v (±%v)", name, got.String(), want, tol)
	}
}

// SEK is a helper for test to create Swedish krona from const
func SEK(v float64) Money { return M(v, "SEK") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }
