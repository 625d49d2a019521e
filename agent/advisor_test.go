package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/hisab"
	"google.golang.org/genai"
)

// fakeModels answers every prompt with text, or fails with err.
type fakeModels struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func sampleTransactions(n int) []hisab.Transaction {
	var txs []hisab.Transaction
	for i := range n {
		txs = append(txs, hisab.Transaction{ID: string(rune('a' + i)), Type: hisab.Income, Amount: hisab.BDT(100)})
	}
	txs = append(txs, hisab.Transaction{ID: "z", Type: hisab.Expense, Amount: hisab.BDT(50)})
	return txs
}

func TestAdvisor_Advise(t *testing.T) {
	testCases := []struct {
		name   string
		models *fakeModels
		want   string
	}{
		{"answer", &fakeModels{text: "Save more."}, "Save more."},
		{"failure", &fakeModels{err: errors.New("quota exceeded")}, FallbackAdvice},
		{"empty answer", &fakeModels{text: "  "}, FallbackAdvice},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAdvisor(tc.models)
			if got := a.Advise(context.Background(), sampleTransactions(2), "How am I doing?"); got != tc.want {
				t.Errorf("Advise() = %q, want %q", got, tc.want)
			}
			if len(tc.models.prompts) != 1 {
				t.Errorf("model called with %d prompts, want a single call", len(tc.models.prompts))
			}
		})
	}
}

func TestAdvisor_Prompt(t *testing.T) {
	a := NewAdvisor(nil)
	got, err := a.Prompt(sampleTransactions(7), "Can I buy a bike?")
	if err != nil {
		t.Fatalf("Prompt() failed: %v", err)
	}
	for _, want := range []string{
		"Total Income: 700\n",
		"Total Expenses: 50\n",
		"Net Balance: 650\n",
		"User Query: Can I buy a bike?",
		"respond in Bengali",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Prompt() does not contain %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, `"id":`); n != recentCount {
		t.Errorf("Prompt() holds %d transactions, want %d", n, recentCount)
	}
	if strings.Contains(got, `"id":"z"`) {
		t.Errorf("Prompt() holds an old transaction:\n%s", got)
	}
}
