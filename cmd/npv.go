package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finkit"
	"github.com/etnz/finkit/api"
	"github.com/etnz/finkit/renderer"
	"github.com/google/subcommands"
)

// npvCmd holds the flags for the 'npv' subcommand.
type npvCmd struct {
	req      api.NPVRequest
	scenario scenario
	output   output
}

func (*npvCmd) Name() string     { return "npv" }
func (*npvCmd) Synopsis() string { return "appraise an investment: NPV, IRR, payback and sensitivity" }
func (*npvCmd) Usage() string {
	return `fin npv [-investment <amount>] [-rate <percent>] [-flows <cf1,cf2,...>] [-sensitivity <percent>] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Discounts the cash flows received at the end of periods 1..N against an
  investment made at period 0, and reports the Net Present Value, the
  Internal Rate of Return, the payback period and a tornado chart of the NPV
  sensitivity to each input.
`
}

func (c *npvCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultNPVRequest()
	f.Var(amountValue{&c.req.Investment}, "investment", "Initial investment, at period 0")
	f.Var(percentValue{&c.req.Rate}, "rate", "Discount rate per period, in percent")
	f.Var(listValue{&c.req.CashFlows}, "flows", "Comma separated cash flows of periods 1..N")
	f.Var(optionalValue{p: &c.req.Sensitivity, percent: true}, "sensitivity", "Perturbation of the sensitivity analysis, in percent (default from the configuration)")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *npvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		return fail("loading configuration", err)
	}
	if err := c.scenario.load(f, &c.req); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := c.req.Compute(cfg.Options())
	if err != nil {
		return fail("computing NPV", err)
	}

	err = c.output.print(res, func() string {
		v := renderer.NewNPV(res.Appraisal, res.Sensitivity, finkit.P(res.Shock), cfg.Currency)
		return renderer.RenderNPV(v)
	})
	if err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
