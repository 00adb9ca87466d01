package finkit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CAPMResult is the expected return of an asset under the Capital Asset
// Pricing Model.
type CAPMResult struct {
	RiskFreeRate      decimal.Decimal `json:"riskFreeRate"`
	Beta              decimal.Decimal `json:"beta"`
	MarketReturn      decimal.Decimal `json:"marketReturn"`
	MarketRiskPremium decimal.Decimal `json:"marketRiskPremium"` // Rm - Rf
	ExpectedReturn    decimal.Decimal `json:"expectedReturn"`    // Rf + β(Rm - Rf)
}

// ExpectedReturn returns Rf + β(Rm - Rf).
//
// Rates are fractions. Rates at or below -100% are rejected with
// ErrInvalidRate, any beta is accepted.
func ExpectedReturn(riskFree, beta, market decimal.Decimal) (CAPMResult, error) {
	if err := checkRate(riskFree); err != nil {
		return CAPMResult{}, fmt.Errorf("risk free rate: %w", err)
	}
	if err := checkRate(market); err != nil {
		return CAPMResult{}, fmt.Errorf("market return: %w", err)
	}
	premium := market.Sub(riskFree)
	return CAPMResult{
		RiskFreeRate:      riskFree,
		Beta:              beta,
		MarketReturn:      market,
		MarketRiskPremium: premium,
		ExpectedReturn:    riskFree.Add(beta.Mul(premium)),
	}, nil
}

// LeverBeta relevers an unlevered (asset) beta for a capital structure with
// the given debt to equity ratio, using the Hamada equation:
//
//	βL = βU × (1 + (1 - tax) × D/E)
func LeverBeta(unlevered, taxRate, debtToEquity decimal.Decimal) (decimal.Decimal, error) {
	if taxRate.IsNegative() || taxRate.GreaterThan(one) {
		return decimal.Zero, fmt.Errorf("%w: tax rate must be within [0%%, 100%%], got %s%%", ErrInvalidInput, taxRate.Shift(2))
	}
	if debtToEquity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: debt to equity must not be negative, got %s", ErrInvalidInput, debtToEquity)
	}
	return unlevered.Mul(one.Add(one.Sub(taxRate).Mul(debtToEquity))), nil
}
