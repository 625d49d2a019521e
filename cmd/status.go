package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/hisab"
	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show the connectivity to the remote store" }
func (*statusCmd) Usage() string {
	return `hisab status

  Fetches the remote state and shows the connectivity, the last error, the local
  cache and the size of each collection.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (*statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, cache, err := newClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	state := client.FetchAll(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "# Status\n\n")
	fmt.Fprintf(&b, "* Remote store: %s\n", *apiURL)
	fmt.Fprintf(&b, "* Connectivity: %s\n", client.Status())
	if err := client.LastError(); err != nil {
		fmt.Fprintf(&b, "* Last error: %v\n", err)
	}
	fmt.Fprintf(&b, "* Local cache: %s\n", cache.Path())
	if g := newGate(); g.Enabled() {
		fmt.Fprintf(&b, "* Unlocked: %v\n", g.Unlocked())
	}
	fmt.Fprintf(&b, "\n| Collection | Records |\n|:---|---:|\n")
	for _, m := range hisab.Modules {
		fmt.Fprintf(&b, "| %s | %d |\n", m, count(state, m))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

func count(s hisab.State, m hisab.Module) int {
	switch m {
	case hisab.ModuleTransactions:
		return len(s.Transactions)
	case hisab.ModuleVault:
		return len(s.Vault)
	case hisab.ModuleDollarTransactions:
		return len(s.DollarTransactions)
	case hisab.ModulePersonalDollarUsage:
		return len(s.PersonalDollarUsage)
	case hisab.ModuleOrders:
		return len(s.Orders)
	case hisab.ModuleAccounts:
		return len(s.Accounts)
	}
	return 0
}
