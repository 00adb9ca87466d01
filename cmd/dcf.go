package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finkit"
	"github.com/etnz/finkit/api"
	"github.com/etnz/finkit/renderer"
	"github.com/google/subcommands"
)

// dcfCmd holds the flags for the 'dcf' subcommand.
type dcfCmd struct {
	req      api.DCFRequest
	scenario scenario
	output   output
}

func (*dcfCmd) Name() string     { return "dcf" }
func (*dcfCmd) Synopsis() string { return "value a firm by discounting its projected free cash flows" }
func (*dcfCmd) Usage() string {
	return `fin dcf [-years <n>] [-revenue <amount>] [-growth <percent>] [-margin <percent>] [-tax <percent>]
        [-capex <percent>] [-wc <percent>] [-da <percent>] [-wacc <percent>] [-g <percent>]
        [-net-debt <amount>] [-shares <count>] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Projects revenue and free cash flow to the firm over the forecast horizon,
  discounts them at the WACC and adds a Gordon growth terminal value, down to
  the equity value per share.
`
}

func (c *dcfCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultDCFRequest()
	f.IntVar(&c.req.Years, "years", c.req.Years, "Number of forecast years")
	f.Var(amountValue{&c.req.StartingRevenue}, "revenue", "Revenue of the year before the forecast")
	f.Var(percentValue{&c.req.RevenueGrowth}, "growth", "Yearly revenue growth, in percent")
	f.Var(percentValue{&c.req.EBITMargin}, "margin", "EBIT margin, in percent of revenue")
	f.Var(percentValue{&c.req.TaxRate}, "tax", "Tax rate on EBIT, in percent")
	f.Var(percentValue{&c.req.CapexPct}, "capex", "Capital expenditure, in percent of revenue")
	f.Var(percentValue{&c.req.WorkingCapitalPct}, "wc", "Increase in working capital, in percent of revenue")
	f.Var(percentValue{&c.req.DAPct}, "da", "Depreciation and amortization, in percent of revenue")
	f.Var(percentValue{&c.req.WACC}, "wacc", "Discount rate, in percent")
	f.Var(percentValue{&c.req.TerminalGrowth}, "g", "Terminal growth rate, in percent")
	f.Var(amountValue{&c.req.NetDebt}, "net-debt", "Net debt subtracted from the enterprise value")
	f.Var(amountValue{&c.req.SharesOutstanding}, "shares", "Number of shares outstanding")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *dcfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := settings()
	if err != nil {
		return fail("loading configuration", err)
	}
	if err := c.scenario.load(f, &c.req); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := c.req.Compute()
	switch {
	case errors.Is(err, finkit.ErrTerminalValueUndefined):
		// the forecast is still reported
		logger.WithField("component", "cmd").Warn(err)
	case err != nil:
		return fail("computing DCF", err)
	}

	if err := c.output.print(res, func() string { return renderer.RenderDCF(renderer.NewDCF(res, cfg.Currency)) }); err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
