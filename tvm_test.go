package finkit

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPow(t *testing.T) {
	testCases := []struct {
		base float64
		n    int
		want float64
	}{
		{1.1, 0, 1},
		{1.1, 1, 1.1},
		{1.1, 2, 1.21},
		{1.1, 5, 1.61051},
		{2, 10, 1024},
		{2, -2, 0.25},
		{0.5, 3, 0.125},
	}
	for _, tc := range testCases {
		got := pow(D(tc.base), tc.n)
		if !got.Equal(decimal.NewFromFloat(tc.want)) {
			t.Errorf("pow(%v, %d) = %s, want %v", tc.base, tc.n, got, tc.want)
		}
	}
}

func TestPresentValue(t *testing.T) {
	testCases := []struct {
		name         string
		amount, rate float64
		period       int
		want         float64
	}{
		{"one year", 110, 0.10, 1, 100},
		{"five years", 3000, 0.10, 5, 1862.7640},
		{"period zero", 500, 0.07, 0, 500},
		{"zero rate", 500, 0, 10, 500},
		{"negative rate", 90, -0.10, 1, 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PresentValue(D(tc.amount), D(tc.rate), tc.period)
			if err != nil {
				t.Fatalf("PresentValue() failed: %v", err)
			}
			checkClose(t, "PresentValue", got, tc.want, 0.0001)
		})
	}
}

func TestCompound_RoundTrip(t *testing.T) {
	for _, period := range []int{0, 1, 7, 30, 120} {
		fv, err := Compound(D(1000), D(0.035), period)
		if err != nil {
			t.Fatalf("Compound() failed: %v", err)
		}
		pv, err := PresentValue(fv, D(0.035), period)
		if err != nil {
			t.Fatalf("PresentValue() failed: %v", err)
		}
		checkClose(t, "PresentValue(Compound())", pv, 1000, 1e-9)
	}
}

func TestInvalidRate(t *testing.T) {
	for _, rate := range []float64{-1, -1.0001, -5} {
		if _, err := PresentValue(D(100), D(rate), 1); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("PresentValue(rate=%v) error = %v, want ErrInvalidRate", rate, err)
		}
		if _, err := Compound(D(100), D(rate), 1); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("Compound(rate=%v) error = %v, want ErrInvalidRate", rate, err)
		}
		if _, err := DiscountFactor(D(rate), 1); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("DiscountFactor(rate=%v) error = %v, want ErrInvalidRate", rate, err)
		}
		if _, err := AnnuityPresentValue(D(100), D(rate), 3); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("AnnuityPresentValue(rate=%v) error = %v, want ErrInvalidRate", rate, err)
		}
	}
}

func TestAnnuityPresentValue(t *testing.T) {
	got, err := AnnuityPresentValue(D(3000), D(0.10), 5)
	if err != nil {
		t.Fatalf("AnnuityPresentValue() failed: %v", err)
	}
	checkClose(t, "AnnuityPresentValue", got, 11372.36, 0.005)

	// closed form: P × (1 - (1+r)^-n) / r
	df, err := DiscountFactor(D(0.10), 5)
	if err != nil {
		t.Fatalf("DiscountFactor() failed: %v", err)
	}
	want := D(3000).Mul(one.Sub(df)).Div(D(0.10))
	checkClose(t, "AnnuityPresentValue", got, want.InexactFloat64(), 1e-6)

	zero, err := AnnuityPresentValue(D(3000), D(0.10), 0)
	if err != nil {
		t.Fatalf("AnnuityPresentValue() failed: %v", err)
	}
	if !zero.IsZero() {
		t.Errorf("AnnuityPresentValue(0 periods) = %s, want 0", zero)
	}
}

func TestNumber(t *testing.T) {
	if _, err := Number(3.5); err != nil {
		t.Errorf("Number(3.5) failed: %v", err)
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Number(f); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Number(%v) error = %v, want ErrInvalidInput", f, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1000", "1000", false},
		{" 1 000 000 ", "1000000", false},
		{"1_000_000.50", "1000000.5", false},
		{"1'250", "1250", false},
		{"-15000", "-15000", false},
		{"", "", true},
		{"abc", "", true},
		{"1,5", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidInput", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) failed: %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	for _, in := range []string{"10", "10%", " 10 % ", "10.0"} {
		got, err := ParsePercent(in)
		if err != nil {
			t.Errorf("ParsePercent(%q) failed: %v", in, err)
			continue
		}
		if !got.Equal(D(0.1)) {
			t.Errorf("ParsePercent(%q) = %s, want 0.1", in, got)
		}
	}
	if _, err := ParsePercent("%"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParsePercent(%%) error = %v, want ErrInvalidInput", err)
	}
}
