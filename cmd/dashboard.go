package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/date"
	"github.com/etnz/hisab/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show totals, dollar holdings, orders and account balances" }
func (*dashboardCmd) Usage() string {
	return `hisab dashboard

  Shows the total income, expense and balance, the dollar holdings and profit,
  the personal dollar usage, the completed order sales and every account balance.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	summary := hisab.Summarize(s.State())
	printMarkdown(renderer.DashboardMarkdown(summary, date.Today(), s.client.Status().String()))
	return subcommands.ExitSuccess
}
