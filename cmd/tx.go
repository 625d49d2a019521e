package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/date"
	"github.com/etnz/hisab/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	period  string
	start   string
	date    string
	account string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list income and expense transactions" }
func (*txCmd) Usage() string {
	return `hisab tx [-p <period> | -s <start_date>] [-d <date>] [-a <account>] [-head <n>] [-tail <n>]

  Lists transactions, newest first, with their totals.
  Without any date flag, every transaction is listed.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Period containing -d (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date of a custom range, or a day of the period. Defaults to today.")
	f.StringVar(&c.account, "a", "", "Show only the transactions of this account.")
	f.IntVar(&c.head, "head", 0, "Show only the newest N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the oldest N transactions.")
}

// filter returns the transactions selected by the flags, and a title describing them.
func (c *txCmd) filter(txs []hisab.Transaction) ([]hisab.Transaction, string, error) {
	title := "Transactions"
	if c.start != "" || c.date != "" || c.period != "" {
		on := date.Today()
		if c.date != "" {
			d, err := date.Parse(c.date)
			if err != nil {
				return nil, "", err
			}
			on = d
		}
		var r date.Range
		switch {
		case c.start != "":
			start, err := date.Parse(c.start)
			if err != nil {
				return nil, "", err
			}
			if r, err = date.Between(start, on); err != nil {
				return nil, "", err
			}
		default:
			period := date.Daily
			if c.period != "" {
				p, err := date.ParsePeriod(c.period)
				if err != nil {
					return nil, "", err
				}
				period = p
			}
			r = date.NewRange(on, period)
		}
		txs = hisab.TransactionsIn(txs, r)
		title = fmt.Sprintf("Transactions %s", r.Identifier())
	}
	if c.account != "" {
		var res []hisab.Transaction
		for _, t := range txs {
			if t.AccountName == c.account {
				res = append(res, t)
			}
		}
		txs = res
		title += " on " + c.account
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	if c.tail > 0 && len(txs) > c.tail {
		txs = txs[len(txs)-c.tail:]
	}
	return txs, title, nil
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	txs, title, err := c.filter(s.State().Transactions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.TransactionsMarkdown(title, txs))
	return subcommands.ExitSuccess
}

// recordTxCmd records an income or an expense, depending on typ.
type recordTxCmd struct {
	typ      hisab.TransactionType
	amount   string
	category string
	note     string
	account  string
	date     string
}

func (c *recordTxCmd) Name() string { return strings.ToLower(string(c.typ)) }
func (c *recordTxCmd) Synopsis() string {
	return fmt.Sprintf("record an %s", strings.ToLower(string(c.typ)))
}
func (c *recordTxCmd) Usage() string {
	return fmt.Sprintf(`hisab %s -amount <taka> [-category <category>] [-account <name>] [-note <note>] [-d <date>]

  Records an %s transaction. The date defaults to today.
`, c.Name(), c.Name())
}

func (c *recordTxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount in Taka.")
	f.StringVar(&c.category, "category", "", "Category, like Sales or Rent.")
	f.StringVar(&c.note, "note", "", "Free text note.")
	f.StringVar(&c.account, "account", "", "Name of the account.")
	f.StringVar(&c.date, "d", "", "Date of the transaction.")
}

func (c *recordTxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
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
		fmt.Fprintf(os.Stderr, "Warning: no account named %q, the transaction is not counted in any balance.\n", c.account)
	}
	t, m, err := s.AddTransaction(ctx, hisab.Transaction{
		Type:        c.typ,
		Amount:      amount,
		Category:    c.category,
		Note:        c.note,
		AccountName: c.account,
		Date:        on,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Println(renderer.Transaction(t))
	return subcommands.ExitSuccess
}
