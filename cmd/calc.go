package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/hisab"
	"github.com/google/subcommands"
)

type calcCmd struct {
	taka    string
	rate    string
	dollars string
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "convert Taka to dollars, or find a rate" }
func (*calcCmd) Usage() string {
	return `hisab calc -taka <taka> (-rate <taka per dollar> | -dollars <dollars>)

  With -rate, prints the dollars the Taka buy at that rate, with 4 decimals.
  With -dollars, prints the rate of a purchase of that many dollars for the Taka.
  A zero rate or a zero dollar amount gives zero.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.taka, "taka", "", "Amount in Taka.")
	f.StringVar(&c.rate, "rate", "", "Rate in Taka per dollar.")
	f.StringVar(&c.dollars, "dollars", "", "Amount in dollars.")
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := c.compute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}

// compute returns the dollars with 4 decimals, or the rate.
func (c *calcCmd) compute() (string, error) {
	if (c.rate == "") == (c.dollars == "") {
		return "", errors.New("exactly one of -rate and -dollars is required")
	}
	taka, err := parseAmount("taka", c.taka)
	if err != nil {
		return "", err
	}
	if c.rate != "" {
		rate, err := parseAmount("rate", c.rate)
		if err != nil {
			return "", err
		}
		return hisab.TakaToDollar(taka, rate).StringFixed(4), nil
	}
	dollars, err := parseQuantity("dollars", c.dollars)
	if err != nil {
		return "", err
	}
	return hisab.RateFromTotals(taka, dollars).String(), nil
}
