package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/hisab/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type serveCmd struct {
	addr     string
	db       string
	file     string
	envelope bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run a remote state store" }
func (*serveCmd) Usage() string {
	return `hisab serve [-addr <addr>] [-db <postgres url> | -file <path>] [-envelope]

  Serves GET /get_state and POST /sync. Collections are kept in PostgreSQL with
  -db, in a JSON file with -file, in memory otherwise.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", envOr("HISAB_ADDR", ":8080"), "Address to listen on ($HISAB_ADDR).")
	f.StringVar(&c.db, "db", os.Getenv("HISAB_DATABASE_URL"), "PostgreSQL connection string ($HISAB_DATABASE_URL).")
	f.StringVar(&c.file, "file", os.Getenv("HISAB_STORE_FILE"), "JSON file keeping the collections ($HISAB_STORE_FILE).")
	f.BoolVar(&c.envelope, "envelope", false, `Wrap the get_state answer as {"status":"success","data":{...}}.`)
}

// openStore returns the store selected by the flags, and a function releasing it.
func (c *serveCmd) openStore(ctx context.Context) (server.Store, io.Closer, error) {
	switch {
	case c.db != "" && c.file != "":
		return nil, nil, errors.New("-db and -file cannot be used together")
	case c.db != "":
		s, err := server.OpenPostgres(ctx, c.db)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case c.file != "":
		s, err := server.NewFileStore(c.file)
		if err != nil {
			return nil, nil, err
		}
		return s, io.NopCloser(nil), nil
	default:
		return server.NewMemoryStore(), io.NopCloser(nil), nil
	}
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := c.openStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	opts := []server.Option{server.WithLogger(log)}
	if c.envelope {
		opts = append(opts, server.WithEnvelope())
	}
	srv := &http.Server{
		Addr:              c.addr,
		Handler:           server.New(store, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", c.addr).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed")
		return subcommands.ExitFailure
	}
	log.Info().Msg("stopped")
	return subcommands.ExitSuccess
}
