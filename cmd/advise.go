package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/hisab/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type adviseCmd struct{}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask the financial advisor a question" }
func (*adviseCmd) Usage() string {
	return `hisab advise <question>

  Asks the advisor about the transactions. It is given the totals and the five
  most recent transactions, and answers in Bengali. Needs GEMINI_API_KEY.
`
}

func (*adviseCmd) SetFlags(f *flag.FlagSet) {}

func (*adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.TrimSpace(strings.Join(f.Args(), " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Error: a question is required.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		fmt.Println(agent.FallbackAdvice)
		return subcommands.ExitFailure
	}
	advisor := agent.NewAdvisor(client.Models)
	advisor.Logger = logger()
	printMarkdown(advisor.Advise(ctx, s.State().Transactions, question))
	return subcommands.ExitSuccess
}
