package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finkit/api"
	"github.com/etnz/finkit/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// statementsCmd holds the flags for the 'statements' subcommand.
type statementsCmd struct {
	req      api.StatementsRequest
	noRatios bool
	scenario scenario
	output   output
}

func (*statementsCmd) Name() string { return "statements" }
func (*statementsCmd) Synopsis() string {
	return "link the income statement, cash flow statement and balance sheet"
}
func (*statementsCmd) Usage() string {
	return `fin statements [line item flags] [-no-ratios] [-f <scenario.yaml>] [-json | -q <jsonpath>]

  Derives net income from the income statement, carries it through the cash
  flow statement into the closing cash, and checks that the balance sheet
  balances. Expenses are entered as negative amounts.
`
}

func (c *statementsCmd) SetFlags(f *flag.FlagSet) {
	c.req = api.DefaultStatementsRequest()
	in, cf, bs := &c.req.Income, &c.req.CashFlow, &c.req.Balance
	f.Var(amountValue{&in.Revenue}, "revenue", "Revenue")
	f.Var(amountValue{&in.COGS}, "cogs", "Cost of goods sold, negative")
	f.Var(amountValue{&in.OperatingExpense}, "opex", "Operating expenses, negative")
	f.Var(amountValue{&in.Interest}, "interest", "Interest expense, negative")
	f.Var(percentValue{&in.TaxRate}, "tax", "Tax rate, in percent")
	f.Var(percentValue{&in.OldTaxRate}, "old-tax", "Tax rate the deferred taxes were measured at, in percent")
	f.Var(amountValue{&cf.Depreciation}, "depreciation", "Depreciation added back")
	f.Var(amountValue{&cf.WorkingCapitalDelta}, "wc", "Change in working capital, negative for an increase")
	f.Var(amountValue{&cf.Capex}, "capex", "Capital expenditure, negative")
	f.Var(amountValue{&cf.OpeningCash}, "cash", "Opening cash")
	f.Var(amountValue{&bs.Receivables}, "receivables", "Accounts receivable")
	f.Var(amountValue{&bs.Inventory}, "inventory", "Inventory")
	f.Var(amountValue{&bs.PPE}, "ppe", "Property, plant and equipment")
	f.Var(amountValue{&bs.CurrentLiabilities}, "current-liabilities", "Current liabilities")
	f.Var(amountValue{&bs.NonCurrentLiabilities}, "non-current-liabilities", "Non-current liabilities")
	f.Var(amountValue{&bs.ShareCapital}, "share-capital", "Share capital")
	f.Var(amountValue{&bs.RetainedEarnings}, "retained-earnings", "Retained earnings")
	f.BoolVar(&c.noRatios, "no-ratios", false, "Do not report the financial ratios")
	c.scenario.SetFlags(f)
	c.output.SetFlags(f)
}

func (c *statementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		return fail("computing statements", err)
	}
	if !res.Balanced {
		logger.WithFields(logrus.Fields{
			"component":  "cmd",
			"difference": res.Statements.BalanceDifference.String(),
		}).Warn("the balance sheet does not balance")
	}

	err = c.output.print(res, func() string {
		ratios := res.Ratios
		if c.noRatios {
			ratios = nil
		}
		return renderer.RenderStatements(renderer.NewStatements(res.Statements, ratios, cfg.Currency))
	})
	if err != nil {
		return fail("printing result", err)
	}
	return subcommands.ExitSuccess
}
