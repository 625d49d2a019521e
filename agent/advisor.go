package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/hisab"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// FallbackAdvice is returned whenever the model cannot answer.
const FallbackAdvice = "দুঃখিত, এই মুহূর্তে এআই অ্যাসিস্ট্যান্ট কাজ করছে না। দয়া করে পরে চেষ্টা করুন।"

// recentCount is the number of transactions given as context.
const recentCount = 5

// ContentGenerator generates content from a prompt. *genai.Models implements it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor answers free-text questions about the transaction history.
type Advisor struct {
	Models   ContentGenerator
	Model    string
	Language string // language of the answers.
	Logger   zerolog.Logger
}

// NewAdvisor returns an advisor answering in Bengali.
func NewAdvisor(models ContentGenerator) *Advisor {
	return &Advisor{
		Models:   models,
		Model:    advisorModel,
		Language: "Bengali",
		Logger:   zerolog.Nop(),
	}
}

// Advise asks the model about txs. It makes a single call and returns FallbackAdvice on any failure.
func (a *Advisor) Advise(ctx context.Context, txs []hisab.Transaction, question string) string {
	prompt, err := a.Prompt(txs, question)
	if err != nil {
		a.Logger.Error().Err(err).Msg("cannot build advice prompt")
		return FallbackAdvice
	}
	resp, err := a.Models.GenerateContent(ctx, a.Model, genai.Text(prompt), nil)
	if err != nil {
		a.Logger.Error().Err(err).Msg("advice request failed")
		return FallbackAdvice
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		a.Logger.Warn().Msg("empty advice")
		return FallbackAdvice
	}
	return text
}

// Prompt builds the prompt sent for question: the totals of txs and the most recent transactions.
func (a *Advisor) Prompt(txs []hisab.Transaction, question string) (string, error) {
	recent := txs[:min(recentCount, len(txs))]
	data, err := json.Marshal(recent)
	if err != nil {
		return "", fmt.Errorf("cannot encode recent transactions: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are a personal financial expert assistant for a %s user.\n", a.Language)
	fmt.Fprintf(&b, "Context:\n")
	fmt.Fprintf(&b, "User's Current Financial Summary:\n")
	fmt.Fprintf(&b, "Total Income: %s\n", hisab.TotalIncome(txs).Decimal())
	fmt.Fprintf(&b, "Total Expenses: %s\n", hisab.TotalExpense(txs).Decimal())
	fmt.Fprintf(&b, "Net Balance: %s\n", hisab.Balance(txs).Decimal())
	fmt.Fprintf(&b, "Recent Transactions: %s\n", data)
	fmt.Fprintf(&b, "User Query: %s\n", question)
	fmt.Fprintf(&b, "Please respond in %s. Provide helpful, actionable financial advice, or answer the user's question about their spending based on the context provided.\n", a.Language)
	return b.String(), nil
}
