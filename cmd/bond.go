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

// bondCmd holds the flags for the 'bond' subcommand.
type bondCmd struct {
	req      api.BondRequest
	scenario scenario
	output   output
}

func (*bondCmd) Name() string     { return "bond" }
func (*bondCmd) Synopsis() string { return "price a fixed coupon bond and its duration" }
func (*bondCmd) Usage() string {
	return `fin bond [-face <amount>] [-coupon <percent>] [-yield <percent>] [-years <years>] [-freq annual|semi-annual|quarterly] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Discounts every coupon and the face value at the yield to maturity, and
  reports the payment schedule with the Macaulay and modified durations.
`
}

func (c *bondCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultBondRequest()
	f.Var(amountValue{&c.req.FaceValue}, "face", "Face value repaid at maturity")
	f.Var(percentValue{&c.req.CouponRate}, "coupon", "Annual coupon rate, in percent")
	f.Var(percentValue{&c.req.YieldRate}, "yield", "Annual yield to maturity, in percent")
	f.Var(amountValue{&c.req.Years}, "years", "Years to maturity")
	f.StringVar(&c.req.Frequency, "freq", c.req.Frequency, "Coupon frequency: annual, semi-annual or quarterly")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *bondCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		return fail("pricing bond", err)
	}

	if err := c.output.print(res, func() string { return renderer.RenderBond(renderer.NewBond(res, cfg.Currency)) }); err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
