package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/renderer"
	"github.com/google/subcommands"
)

type dollarCmd struct{}

func (*dollarCmd) Name() string     { return "dollar" }
func (*dollarCmd) Synopsis() string { return "list dollar lots" }
func (*dollarCmd) Usage() string {
	return `hisab dollar

  Lists the dollar lots, holding first, with the holding dollars, the holding
  investment and the realized profit.
`
}

func (*dollarCmd) SetFlags(f *flag.FlagSet) {}

func (*dollarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	lots := s.State().DollarTransactions
	md := renderer.DollarsMarkdown(lots)
	md += fmt.Sprintf("\nHolding %s for %s, realized profit %s.\n",
		hisab.HoldingDollars(lots).Dollars(), hisab.HoldingInvestment(lots), hisab.DollarProfit(lots).SignedString())
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type dollarBuyCmd struct {
	quantity string
	rate     string
	account  string
	note     string
	date     string
}

func (*dollarBuyCmd) Name() string     { return "dollar-buy" }
func (*dollarBuyCmd) Synopsis() string { return "buy a lot of dollars" }
func (*dollarBuyCmd) Usage() string {
	return `hisab dollar-buy -quantity <dollars> -rate <taka per dollar> [-account <name>] [-note <note>] [-d <date>]

  Records a holding lot. With an account, an expense of the cost is recorded on it.
`
}

func (c *dollarBuyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "quantity", "", "Dollars bought.")
	f.StringVar(&c.rate, "rate", "", "Buy rate in Taka per dollar.")
	f.StringVar(&c.account, "account", "", "Account paying for the lot.")
	f.StringVar(&c.note, "note", "", "Free text note.")
	f.StringVar(&c.date, "d", "", "Date of the purchase.")
}

func (c *dollarBuyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quantity, err := parseQuantity("quantity", c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := parseAmount("rate", c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if !hasAccount(s.State(), c.account) {
		fmt.Fprintf(os.Stderr, "Warning: no account named %q, the expense is not counted in any balance.\n", c.account)
	}
	lot, m, err := s.BuyDollar(ctx, hisab.DollarTransaction{
		BuyRate:     rate,
		Quantity:    quantity,
		Note:        c.note,
		Date:        on,
		AccountName: c.account,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Println(renderer.DollarLot(lot))
	return subcommands.ExitSuccess
}

type dollarSellCmd struct {
	rate string
}

func (*dollarSellCmd) Name() string     { return "dollar-sell" }
func (*dollarSellCmd) Synopsis() string { return "sell a holding lot of dollars" }
func (*dollarSellCmd) Usage() string {
	return `hisab dollar-sell -rate <taka per dollar> <id>

  Settles a holding lot today. With an account on the lot, an income of the
  proceeds is recorded on it. A lot is sold once.
`
}

func (c *dollarSellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rate, "rate", "", "Sell rate in Taka per dollar.")
}

func (c *dollarSellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one lot id is required.")
		return subcommands.ExitUsageError
	}
	rate, err := parseAmount("rate", c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	lot, m, err := s.SellDollar(ctx, f.Arg(0), rate)
	switch {
	case errors.Is(err, hisab.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: no dollar lot with id %q.\n", f.Arg(0))
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Println(renderer.DollarLot(lot))
	return subcommands.ExitSuccess
}

type personalCmd struct{}

func (*personalCmd) Name() string     { return "personal" }
func (*personalCmd) Synopsis() string { return "list personal dollar usage" }
func (*personalCmd) Usage() string {
	return `hisab personal

  Lists the dollars spent for personal purposes and their Taka equivalent.
`
}

func (*personalCmd) SetFlags(f *flag.FlagSet) {}

func (*personalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PersonalMarkdown(s.State().PersonalDollarUsage))
	return subcommands.ExitSuccess
}

type addPersonalCmd struct {
	amount  string
	rate    string
	purpose string
	note    string
	date    string
}

func (*addPersonalCmd) Name() string     { return "add-personal" }
func (*addPersonalCmd) Synopsis() string { return "record dollars spent for personal purposes" }
func (*addPersonalCmd) Usage() string {
	return `hisab add-personal -amount <dollars> -rate <taka per dollar> [-purpose <purpose>] [-note <note>] [-d <date>]

  Records a personal dollar usage. It is not linked to any lot or account.
`
}

func (c *addPersonalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Dollars spent.")
	f.StringVar(&c.rate, "rate", "", "Rate in Taka per dollar.")
	f.StringVar(&c.purpose, "purpose", "", "What the dollars were spent for.")
	f.StringVar(&c.note, "note", "", "Free text note.")
	f.StringVar(&c.date, "d", "", "Date of the usage.")
}

func (c *addPersonalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseQuantity("amount", c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := parseAmount("rate", c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	u, m, err := s.AddPersonalDollarUsage(ctx, hisab.PersonalDollarUsage{
		Amount:  amount,
		Rate:    rate,
		Purpose: c.purpose,
		Note:    c.note,
		Date:    on,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Printf("Spent %s (%s) on %s (%s, %s)\n", u.Amount.Dollars(), u.Taka(), u.Purpose, u.Date, u.ID)
	return subcommands.ExitSuccess
}
