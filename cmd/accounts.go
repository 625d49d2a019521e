package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their balance" }
func (*accountsCmd) Usage() string {
	return `hisab accounts

  Lists the accounts, in creation order, with the balance derived from their transactions.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountsMarkdown(hisab.AccountBalances(s.State())))
	return subcommands.ExitSuccess
}

type addAccountCmd struct {
	name     string
	typ      string
	number   string
	provider string
	note     string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `hisab add-account -name <name> -type <type> [-number <number>] [-provider <provider>] [-note <note>]

  Creates an account. Types are "mobile wallet", bank, cash and other.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the account, transactions refer to it.")
	f.StringVar(&c.typ, "type", "cash", "Type of the account: wallet, bank, cash or other.")
	f.StringVar(&c.number, "number", "", "Account number.")
	f.StringVar(&c.provider, "provider", "", "Name of the bank or wallet provider.")
	f.StringVar(&c.note, "note", "", "Free text note.")
}

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := hisab.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.name != "" && hasAccount(s.State(), c.name) {
		fmt.Fprintf(os.Stderr, "Error: an account named %q already exists.\n", c.name)
		return subcommands.ExitFailure
	}
	a, m, err := s.AddAccount(ctx, hisab.Account{
		Name:          c.name,
		Type:          typ,
		AccountNumber: c.number,
		ProviderName:  c.provider,
		Note:          c.note,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Printf("Created account %s (%s, %s)\n", a.Name, a.Type, a.ID)
	return subcommands.ExitSuccess
}
