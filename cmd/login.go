package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"golang.org/x/term"
)

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "unlock the commands" }
func (*loginCmd) Usage() string {
	return `hisab login [<password>]

  Unlocks the commands when a password is configured with -password or
  $HISAB_PASSWORD. The password is asked when not given.
`
}

func (*loginCmd) SetFlags(f *flag.FlagSet) {}

func (*loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	g := newGate()
	if !g.Enabled() {
		fmt.Println("No password is configured, hisab is unlocked.")
		return subcommands.ExitSuccess
	}
	pw := f.Arg(0)
	if f.NArg() == 0 {
		var err error
		if pw, err = readPassword(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if !g.Unlock(pw) {
		fmt.Fprintln(os.Stderr, "Wrong password.")
		return subcommands.ExitFailure
	}
	fmt.Println("Unlocked.")
	return subcommands.ExitSuccess
}

// readPassword asks for the password, without echo on a terminal.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "lock the commands" }
func (*logoutCmd) Usage() string {
	return `hisab logout

  Locks the commands until the next login.
`
}

func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := newGate().Lock(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Locked.")
	return subcommands.ExitSuccess
}
