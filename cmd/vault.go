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

type vaultCmd struct {
	reveal bool
}

func (*vaultCmd) Name() string     { return "vault" }
func (*vaultCmd) Synopsis() string { return "list stored credentials" }
func (*vaultCmd) Usage() string {
	return `hisab vault [-reveal]

  Lists the stored credentials. Passwords are masked unless -reveal is given.
`
}

func (c *vaultCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.reveal, "reveal", false, "Show the passwords.")
}

func (c *vaultCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.VaultMarkdown(s.State().Vault, c.reveal))
	return subcommands.ExitSuccess
}

type addVaultCmd struct {
	site     string
	user     string
	password string
	note     string
}

func (*addVaultCmd) Name() string     { return "add-vault" }
func (*addVaultCmd) Synopsis() string { return "store a credential" }
func (*addVaultCmd) Usage() string {
	return `hisab add-vault -site <site> [-user <user name>] [-password <password>] [-note <note>]

  Stores a credential. The password is stored in clear text.
`
}

func (c *addVaultCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.site, "site", "", "Site or service name.")
	f.StringVar(&c.user, "user", "", "User name.")
	f.StringVar(&c.password, "password", "", "Password.")
	f.StringVar(&c.note, "note", "", "Free text note.")
}

func (c *addVaultCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	v, m, err := s.AddVaultItem(ctx, hisab.VaultItem{
		SiteName: c.site,
		Username: c.user,
		Password: c.password,
		Note:     c.note,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Printf("Stored credential for %s (%s)\n", v.SiteName, v.ID)
	return subcommands.ExitSuccess
}
