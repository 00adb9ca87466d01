package renderer

import (
	"io/fs"
	"strings"
	"testing"
	"text/template"

	"github.com/etnz/finkit"
)

func TestTemplatesParse(t *testing.T) {
	files, err := fs.Glob(templates, "*.md")
	if err != nil {
		t.Fatalf("failed to list embedded templates: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded template")
	}
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			t.Fatalf("failed to read %q: %v", file, err)
		}
		if _, err := template.New(file).Parse(string(content)); err != nil {
			t.Errorf("template %q does not parse: %v", file, err)
		}
	}
}

// checkContains fails for every want not found in got.
func checkContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	if strings.Contains(got, "error ") {
		t.Fatalf("rendering failed:\n%s", got)
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("report does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderNPV(t *testing.T) {
	investment, flows, rate := finkit.D(10000), finkit.Ds(3000, 3000, 3000, 3000, 3000), finkit.D(0.10)
	res, err := finkit.NPV(investment, flows, rate)
	if err != nil {
		t.Fatalf("NPV() failed: %v", err)
	}
	sens, err := finkit.Sensitivity(investment, flows, rate, finkit.D(0.10))
	if err != nil {
		t.Fatalf("Sensitivity() failed: %v", err)
	}
	got := RenderNPV(NewNPV(res, sens, 10, "USD"))
	checkContains(t, got,
		"# Net Present Value",
		"| **NPV** | **$1,372.36** |",
		"| IRR | 15.24% |",
		"| Payback | 3.33 periods |",
		"| 1 | $3,000.00 | $2,727.27 |",
		"| **Total** | **$15,000.00** | **$11,372.36** |",
		"## Sensitivity (±10.00%)",
		"| Initial Investment | $2,372.36 | $372.36 | +$1,000.00 | -$1,000.00 | $2,000.00 |",
		"creates value",
	)
	// widest bar last, full width
	if !strings.Contains(got, "| Cash Flows |") || !strings.Contains(got, strings.Repeat("█", tornadoWidth)+" |") {
		t.Errorf("missing the full width cash flows bar:\n%s", got)
	}
}

func TestRenderNPV_Undefined(t *testing.T) {
	res, err := finkit.NPV(finkit.D(100), finkit.Ds(0, 0), finkit.D(0.1))
	if err != nil {
		t.Fatalf("NPV() failed: %v", err)
	}
	got := RenderNPV(NewNPV(res, nil, 10, "USD"))
	checkContains(t, got, "| IRR | _undefined (no internal rate of return found", "| Payback | _undefined (payback not reached)_ |", "destroys value")
	if strings.Contains(got, "## Sensitivity") {
		t.Errorf("sensitivity section must be omitted without entries:\n%s", got)
	}
}

func TestRenderNPV_UndefinedSensitivityEntry(t *testing.T) {
	investment, flows, rate := finkit.D(100), finkit.Ds(60, 60), finkit.D(-0.95)
	res, err := finkit.NPV(investment, flows, rate)
	if err != nil {
		t.Fatalf("NPV() failed: %v", err)
	}
	sens, err := finkit.Sensitivity(investment, flows, rate, finkit.D(0.10))
	if err != nil {
		t.Fatalf("Sensitivity() failed: %v", err)
	}
	got := RenderNPV(NewNPV(res, sens, 10, "USD"))
	checkContains(t, got, "| Discount Rate | _undefined (rate must be greater than -100%", "| Initial Investment |")
}

func TestRenderCAPM(t *testing.T) {
	res, err := finkit.ExpectedReturn(finkit.D(0.02), finkit.D(1.2), finkit.D(0.08))
	if err != nil {
		t.Fatalf("ExpectedReturn() failed: %v", err)
	}
	got := RenderCAPM(NewCAPM(res))
	checkContains(t, got, "| Beta (β) | 1.20 |", "| Market risk premium (Rm − Rf) | 6.00% |", "| **Expected return** | **9.20%** |", "more volatile")
}

func TestRenderWACC(t *testing.T) {
	res, err := finkit.ComputeWACC(finkit.DefaultCapitalStructure())
	if err != nil {
		t.Fatalf("ComputeWACC() failed: %v", err)
	}
	got := RenderWACC(NewWACC(res, "USD"))
	checkContains(t, got, "| Equity | $1,000,000.00 | 66.67% | 10.00% |", "| Debt | $500,000.00 | 33.33% | 4.00%", "**8.00%**")

	c := finkit.DefaultCapitalStructure()
	c.Equity, c.Debt = finkit.D(0), finkit.D(0)
	res, err = finkit.ComputeWACC(c)
	if err != nil {
		t.Fatalf("ComputeWACC() failed: %v", err)
	}
	checkContains(t, RenderWACC(NewWACC(res, "USD")), "_undefined (capital weights undefined")
}

func TestRenderDCF(t *testing.T) {
	res, err := finkit.ProjectDCF(finkit.DefaultDCFAssumptions())
	if err != nil {
		t.Fatalf("ProjectDCF() failed: %v", err)
	}
	got := RenderDCF(NewDCF(res, "USD"))
	checkContains(t, got,
		"| 1 | $1,050,000.00 | $157,500.00 | -$31,500.00 | $42,000.00 | -$52,500.00 | -$21,000.00 | $94,500.00 | 0.9091 |",
		"| **Enterprise value** | **$1,301,590.70** |",
		"| **Value per share** | **$8.02** |",
		"| Implied exit multiple | 6.0x EBITDA |",
	)

	a := finkit.DefaultDCFAssumptions()
	a.TerminalGrowth = a.WACC
	res, err = finkit.ProjectDCF(a)
	if err == nil {
		t.Fatal("ProjectDCF() must fail when WACC equals the terminal growth")
	}
	checkContains(t, RenderDCF(NewDCF(res, "USD")), "| **Enterprise value** | **_undefined (terminal value undefined", "| 5 |")
}

func TestRenderBond(t *testing.T) {
	res, err := finkit.PriceBond(finkit.DefaultBondSpec())
	if err != nil {
		t.Fatalf("PriceBond() failed: %v", err)
	}
	got := RenderBond(NewBond(res, "USD"))
	checkContains(t, got,
		"A 10 year annual bond, face value $1,000.00, coupon 5.00%, priced at a 4.00% yield.",
		"| **Price** | **$1,081.11** |",
		"| Macaulay duration | 8.19 years |",
		"trades at premium",
		"| 10 | 10.00 | $1,050.00 |",
	)
}

func TestRenderStatements(t *testing.T) {
	s, err := finkit.ComputeStatements(finkit.DefaultStatementInputs())
	if err != nil {
		t.Fatalf("ComputeStatements() failed: %v", err)
	}
	got := RenderStatements(NewStatements(s, finkit.ComputeRatios(s), "USD"))
	checkContains(t, got,
		"| **Net income** | **$30,000.00** |",
		"| **Closing cash** | **$60,000.00** |",
		"| **Total assets** | **$475,000.00** | **Total liabilities and equity** | **$475,000.00** |",
		"The balance sheet is balanced.",
		"### Liquidity",
		"| Current Ratio | 2.33 | 1.5 – 2.5 | Short-term solvency |",
		"| Gross Margin | 35.00% | 30% – 60% | Profit after COGS |",
	)
	if strings.Contains(got, "The tax rate changed") {
		t.Errorf("unexpected tax rate change note:\n%s", got)
	}

	in := finkit.DefaultStatementInputs()
	in.Income.TaxRate = finkit.D(0.30)
	in.Balance.RetainedEarnings = finkit.D(100_000)
	s, err = finkit.ComputeStatements(in)
	if err != nil {
		t.Fatalf("ComputeStatements() failed: %v", err)
	}
	got = RenderStatements(NewStatements(s, nil, "USD"))
	checkContains(t, got,
		"| Tax rate remeasurement | $2,000.00 |",
		"The tax rate changed from 25.00% to 30.00%",
		"does not balance, difference: $30,000.00",
	)
	if strings.Contains(got, "## Financial Ratios") {
		t.Errorf("ratios must be omitted when not computed:\n%s", got)
	}
}
