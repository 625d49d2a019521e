// Command hisab keeps the books of a small trading business.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/hisab/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("hisab")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
