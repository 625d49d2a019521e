package agent

import (
	"context"
	"fmt"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/date"
	"github.com/etnz/hisab/docs"
	"github.com/etnz/hisab/renderer"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	model        = "gemini-2.5-pro"
	advisorModel = "gemini-2.5-flash"
)

// newFacilitator creates the expert that talks to the user and delegates to experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user tracks his income and expenses in Taka (BDT) over a few accounts (mobile wallets, bank, cash),
			trades US dollars, and runs a small online shop.

			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
		Logger:  zerolog.Nop(),
	}
}

// NewTrader returns an expert of the USD/BDT market, grounded with Google Search.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert of the USD/BDT exchange market, official and open market rates,
		remittance and bank rules in Bangladesh. Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of the US dollar market in Bangladesh. You leverage Google Search to
			ground your assertions: current rates, trends, regulations and news.
		`}}},
		},
		Logger: zerolog.Nop(),
	}
}

// NewAccountant returns the expert reading the user's books. state returns the current books.
func NewAccountant(state func() hisab.State) *Expert {
	lib := AccountantTools(state)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He reads the user's books: transactions, account balances,
		dollar lots, personal dollar usage and orders, and computes the figures about them.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an accountant in charge of the user's books.
			Use the Tools to read the dashboard, the account balances, the transactions of a period,
			the dollar lots and the orders. Amounts are in Taka unless they are dollar quantities.
			Pardon the approximate language of the other experts and figure out what they meant.
		`}}},
		},
		Library: NewLibrary(lib),
		Logger:  zerolog.Nop(),
	}
}

// AccountantTools returns the functions reading state.
func AccountantTools(state func() hisab.State) []*Func {
	noArgs := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Dashboard",
				Description: "Dashboard returns the totals: income, expense, balance, dollar holdings and profit, completed order sales, and every account balance.",
				Parameters:  noArgs,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown report."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.DashboardMarkdown(hisab.Summarize(state()), date.Today(), ""), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Transactions",
				Description: "Transactions lists the income and expense transactions of the period that contains a day, and their totals.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type:        genai.TypeString,
							Description: "A day of the period, today by default.\n\n" + must(docs.GetTopic("dates")),
						},
						"period": {
							Type:        genai.TypeString,
							Description: "The period: day, week, month (default), quarter or year.",
						},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of transactions."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				r, err := parseRange(args)
				if err != nil {
					return "", err
				}
				txs := hisab.TransactionsIn(state().Transactions, r)
				return renderer.TransactionsMarkdown(fmt.Sprintf("Transactions %s", r.Identifier()), txs), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Dollars",
				Description: "Dollars lists the dollar lots, holding and sold, with the realized profit, and the dollars used personally.",
				Parameters:  noArgs,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "Markdown tables of lots and usage."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				s := state()
				return renderer.DollarsMarkdown(s.DollarTransactions) + "\n" + renderer.PersonalMarkdown(s.PersonalDollarUsage), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Orders",
				Description: "Orders lists the shop orders with their status and the completed sales.",
				Parameters:  noArgs,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown table of orders."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.OrdersMarkdown(state().Orders), nil
			},
		},
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// parseRange reads the optional date and period arguments.
func parseRange(args map[string]any) (date.Range, error) {
	on := date.Today()
	if v, ok := args["date"]; ok {
		s, ok := v.(string)
		if !ok {
			return date.Range{}, fmt.Errorf("argument 'date' is not a string as expected but %T", v)
		}
		d, err := date.Parse(s)
		if err != nil {
			return date.Range{}, fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s", s, must(docs.GetTopic("dates")))
		}
		on = d
	}
	period := date.Monthly
	if v, ok := args["period"]; ok {
		s, ok := v.(string)
		if !ok {
			return date.Range{}, fmt.Errorf("argument 'period' is not a string as expected but %T", v)
		}
		p, err := date.ParsePeriod(s)
		if err != nil {
			return date.Range{}, err
		}
		period = p
	}
	return date.NewRange(on, period), nil
}
