package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finkit/api"
	"github.com/etnz/finkit/renderer"
	"github.com/google/subcommands"
)

// capmCmd holds the flags for the 'capm' subcommand.
type capmCmd struct {
	req      api.CAPMRequest
	scenario scenario
	output   output
}

func (*capmCmd) Name() string     { return "capm" }
func (*capmCmd) Synopsis() string { return "expected return of an asset with the Capital Asset Pricing Model" }
func (*capmCmd) Usage() string {
	return `fin capm [-rf <percent>] [-beta <beta>] [-rm <percent>] [-de <ratio> [-tax <percent>]] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Computes E(R) = Rf + β (Rm - Rf). With -de, beta is an unlevered beta first
  relevered at that debt to equity ratio.
`
}

func (c *capmCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultCAPMRequest()
	f.Var(percentValue{&c.req.RiskFreeRate}, "rf", "Risk-free rate, in percent")
	f.Var(amountValue{&c.req.Beta}, "beta", "Beta of the asset")
	f.Var(percentValue{&c.req.MarketReturn}, "rm", "Expected market return, in percent")
	f.Var(optionalValue{p: &c.req.DebtToEquity}, "de", "Debt to equity ratio to relever an unlevered beta")
	f.Var(optionalValue{p: &c.req.TaxRate, percent: true}, "tax", "Tax rate used to relever beta, in percent")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *capmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := settings(); err != nil {
		return fail("loading configuration", err)
	}
	if err := c.scenario.load(f, &c.req); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := c.req.Compute()
	if err != nil {
		return fail("computing CAPM", err)
	}

	if err := c.output.print(res, func() string { return renderer.RenderCAPM(renderer.NewCAPM(res)) }); err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
