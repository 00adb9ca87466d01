package finkit_test

import (
	"errors"
	"fmt"

	"github.com/etnz/finkit"
)

func ExampleNPV() {
	res, err := finkit.NPV(finkit.D(10000), finkit.Ds(3000, 3000, 3000, 3000, 3000), finkit.D(0.10))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("NPV:", res.NPV.StringFixed(2))
	fmt.Println("IRR:", finkit.P(res.IRR))
	fmt.Println("Payback:", res.Payback.StringFixed(2))
	// Output:
	// NPV: 1372.36
	// IRR: 15.24%
	// Payback: 3.33
}

func ExampleIRR() {
	_, err := finkit.IRR(finkit.D(100), finkit.Ds(-10, -20))
	fmt.Println(errors.Is(err, finkit.ErrNoRootFound), finkit.ErrorCode(err))
	// Output: true no_root_found
}

func ExampleExpectedReturn() {
	res, err := finkit.ExpectedReturn(finkit.D(0.02), finkit.D(1.2), finkit.D(0.08))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(finkit.P(res.ExpectedReturn))
	// Output: 9.20%
}

func ExamplePriceBond() {
	spec := finkit.DefaultBondSpec()
	res, err := finkit.PriceBond(spec)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(finkit.M(res.Price, "USD"))
	// Output: $1,081.11
}
