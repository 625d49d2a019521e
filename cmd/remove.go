package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/hisab"
	"github.com/google/subcommands"
)

// rmCmd deletes records of one collection by id.
type rmCmd struct {
	name, what string
	ids        func(hisab.State) []string
	del        func(*hisab.Controller, context.Context, string) hisab.Mutation
}

func (c *rmCmd) Name() string     { return c.name }
func (c *rmCmd) Synopsis() string { return fmt.Sprintf("delete %ss", c.what) }
func (c *rmCmd) Usage() string {
	return fmt.Sprintf(`hisab %s <id>...

  Deletes the %ss with the given ids.
`, c.name, c.what)
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one %s id is required.\n", c.what)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	known := c.ids(s.State())
	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		if !slices.Contains(known, id) {
			fmt.Fprintf(os.Stderr, "Error: no %s with id %q.\n", c.what, id)
			status = subcommands.ExitFailure
			continue
		}
		s.wait(ctx, c.del(s.Controller, ctx, id))
		fmt.Printf("Deleted %s %s\n", c.what, id)
	}
	return status
}

func idsOf[T any](list []T, id func(T) string) []string {
	res := make([]string, 0, len(list))
	for _, x := range list {
		res = append(res, id(x))
	}
	return res
}

func rmTxCmd() *rmCmd {
	return &rmCmd{
		name: "rm-tx", what: "transaction",
		ids: func(s hisab.State) []string {
			return idsOf(s.Transactions, func(t hisab.Transaction) string { return t.ID })
		},
		del: (*hisab.Controller).DeleteTransaction,
	}
}

func rmAccountCmd() *rmCmd {
	return &rmCmd{
		name: "rm-account", what: "account",
		ids: func(s hisab.State) []string {
			return idsOf(s.Accounts, func(a hisab.Account) string { return a.ID })
		},
		del: (*hisab.Controller).DeleteAccount,
	}
}

func rmDollarCmd() *rmCmd {
	return &rmCmd{
		name: "rm-dollar", what: "dollar lot",
		ids: func(s hisab.State) []string {
			return idsOf(s.DollarTransactions, func(l hisab.DollarTransaction) string { return l.ID })
		},
		del: (*hisab.Controller).DeleteDollar,
	}
}

func rmPersonalCmd() *rmCmd {
	return &rmCmd{
		name: "rm-personal", what: "personal usage",
		ids: func(s hisab.State) []string {
			return idsOf(s.PersonalDollarUsage, func(u hisab.PersonalDollarUsage) string { return u.ID })
		},
		del: (*hisab.Controller).DeletePersonalDollarUsage,
	}
}

func rmOrderCmd() *rmCmd {
	return &rmCmd{
		name: "rm-order", what: "order",
		ids: func(s hisab.State) []string {
			return idsOf(s.Orders, func(o hisab.Order) string { return o.ID })
		},
		del: (*hisab.Controller).DeleteOrder,
	}
}

func rmVaultCmd() *rmCmd {
	return &rmCmd{
		name: "rm-vault", what: "vault item",
		ids: func(s hisab.State) []string {
			return idsOf(s.Vault, func(v hisab.VaultItem) string { return v.ID })
		},
		del: (*hisab.Controller).DeleteVaultItem,
	}
}
