// Package cmd implements the hisab command line.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/cloud"
	"github.com/etnz/hisab/date"
	"github.com/etnz/hisab/gate"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	apiURL   = flag.String("api", envOr("HISAB_API_URL", "http://localhost:8080"), "URL of the remote state store ($HISAB_API_URL)")
	cacheDir = flag.String("cache-dir", os.Getenv("HISAB_CACHE_DIR"), "folder of the local cache, the user cache folder by default ($HISAB_CACHE_DIR)")
	dataPath = flag.String("data-path", envOr("HISAB_DATA_PATH", "$"), "JSONPath of the state in the get_state answer ($HISAB_DATA_PATH)")
	password = flag.String("password", os.Getenv("HISAB_PASSWORD"), "password locking the commands ($HISAB_PASSWORD)")
	timeout  = flag.Duration("timeout", 10*time.Second, "how long to wait for the remote store to accept a change")
	verbose  = flag.Bool("v", os.Getenv("HISAB_VERBOSE") != "", "log remote calls on stderr ($HISAB_VERBOSE)")
	raw      = flag.Bool("raw", false, "print markdown as is, without rendering it")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type command struct {
	cmd   subcommands.Command
	group string
	open  bool // runs without unlocking the gate.
}

func commands() []command {
	return []command{
		{&dashboardCmd{}, "books", false},
		{&statusCmd{}, "books", false},

		{&txCmd{}, "transactions", false},
		{&recordTxCmd{typ: hisab.Income}, "transactions", false},
		{&recordTxCmd{typ: hisab.Expense}, "transactions", false},
		{rmTxCmd(), "transactions", false},

		{&accountsCmd{}, "accounts", false},
		{&addAccountCmd{}, "accounts", false},
		{rmAccountCmd(), "accounts", false},

		{&dollarCmd{}, "dollars", false},
		{&dollarBuyCmd{}, "dollars", false},
		{&dollarSellCmd{}, "dollars", false},
		{rmDollarCmd(), "dollars", false},
		{&personalCmd{}, "dollars", false},
		{&addPersonalCmd{}, "dollars", false},
		{rmPersonalCmd(), "dollars", false},
		{&calcCmd{}, "dollars", true},

		{&ordersCmd{}, "orders", false},
		{&addOrderCmd{}, "orders", false},
		{&orderStatusCmd{}, "orders", false},
		{rmOrderCmd(), "orders", false},

		{&vaultCmd{}, "vault", false},
		{&addVaultCmd{}, "vault", false},
		{rmVaultCmd(), "vault", false},

		{&adviseCmd{}, "assistant", false},
		{&assistCmd{}, "assistant", false},

		{&loginCmd{}, "session", true},
		{&logoutCmd{}, "session", true},
		{&serveCmd{}, "server", true},
		{&topicCmd{}, "help", true},
	}
}

// Commands returns every hisab command.
func Commands() []subcommands.Command {
	var res []subcommands.Command
	for _, c := range commands() {
		res = append(res, c.cmd)
	}
	return res
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands() {
		cmd := e.cmd
		if !e.open {
			cmd = locked{cmd}
		}
		c.Register(cmd, e.group)
	}
}

// locked runs a command only once the gate is unlocked.
type locked struct{ subcommands.Command }

func (l locked) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if !newGate().Unlocked() {
		fmt.Fprintln(os.Stderr, "hisab is locked, run 'hisab login' first.")
		return subcommands.ExitFailure
	}
	return l.Command.Execute(ctx, f, args...)
}

func newGate() *gate.Gate { return gate.New(*password, "") }

func logger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func newClient() (*cloud.Client, *cloud.FileCache, error) {
	cache, err := cloud.NewFileCache(*cacheDir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open local cache: %w", err)
	}
	client := cloud.New(*apiURL,
		cloud.WithCache(cache),
		cloud.WithDataPath(*dataPath),
		cloud.WithLogger(logger()),
	)
	return client, cache, nil
}

// session is a loaded controller and the client it syncs with.
type session struct {
	*hisab.Controller
	client *cloud.Client
	warned bool
}

// openSession loads the state, seeding the default accounts on first use.
func openSession(ctx context.Context) (*session, error) {
	client, _, err := newClient()
	if err != nil {
		return nil, err
	}
	s := &session{
		Controller: hisab.NewController(client, hisab.WithDefaultAccounts(true)),
		client:     client,
	}
	s.wait(ctx, s.Load(ctx))
	return s, nil
}

// wait waits for m to reach the remote store, and warns once when it did not.
func (s *session) wait(ctx context.Context, m hisab.Mutation) {
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	ok, err := m.Wait(ctx)
	if s.warned {
		return
	}
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Warning: the remote store did not answer within %v, changes are kept in the local cache.\n", *timeout)
		s.warned = true
	case !ok || s.client.Status() == cloud.Offline:
		fmt.Fprintf(os.Stderr, "Warning: working offline (%v), changes are kept in the local cache.\n", s.client.LastError())
		s.warned = true
	}
}

// parseDate parses an optional date flag. The zero date lets the controller use today.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

func parseAmount(name, s string) (hisab.Money, error) {
	if s == "" {
		return hisab.Money{}, fmt.Errorf("-%s is required", name)
	}
	m, err := hisab.ParseMoney(s)
	if err != nil {
		return hisab.Money{}, fmt.Errorf("-%s: %w", name, err)
	}
	return m, nil
}

func parseQuantity(name, s string) (hisab.Quantity, error) {
	if s == "" {
		return hisab.Quantity{}, fmt.Errorf("-%s is required", name)
	}
	q, err := hisab.ParseQuantity(s)
	if err != nil {
		return hisab.Quantity{}, fmt.Errorf("-%s: %w", name, err)
	}
	return q, nil
}

// hasAccount reports whether name is a known account. An empty name is always accepted.
func hasAccount(s hisab.State, name string) bool {
	return name == "" || slices.ContainsFunc(s.Accounts, func(a hisab.Account) bool { return a.Name == name })
}
