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

// waccCmd holds the flags for the 'wacc' subcommand.
type waccCmd struct {
	req      api.WACCRequest
	scenario scenario
	output   output
}

func (*waccCmd) Name() string     { return "wacc" }
func (*waccCmd) Synopsis() string { return "weighted average cost of capital" }
func (*waccCmd) Usage() string {
	return `fin wacc [-equity <amount>] [-debt <amount>] [-re <percent>] [-rd <percent>] [-tax <percent>] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Weights the cost of equity and the after-tax cost of debt by the market
  value of each.
`
}

func (c *waccCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultWACCRequest()
	f.Var(amountValue{&c.req.Equity}, "equity", "Market value of equity")
	f.Var(amountValue{&c.req.Debt}, "debt", "Market value of debt")
	f.Var(percentValue{&c.req.CostOfEquity}, "re", "Cost of equity, in percent")
	f.Var(percentValue{&c.req.CostOfDebt}, "rd", "Cost of debt before tax, in percent")
	f.Var(percentValue{&c.req.TaxRate}, "tax", "Corporate tax rate, in percent")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *waccCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		return fail("loading configuration", err)
	}
	if err := c.scenario.load(f, &c.req); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := c.req.Compute()
	if err != nil {
		return fail("computing WACC", err)
	}

	if err := c.output.print(res, func() string { return renderer.RenderWACC(renderer.NewWACC(res, cfg.Currency)) }); err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
