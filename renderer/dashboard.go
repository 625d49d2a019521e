package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/date"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the dashboard figures of s on a given day.
// status is the connectivity of the remote store, it is omitted when empty.
func DashboardMarkdown(s hisab.Summary, on date.Date, status string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dashboard on %s", on))
	if status != "" {
		doc.PlainText(fmt.Sprintf("Remote store: %s", status))
	}

	doc.H2("Ledger")
	doc.Table(md.TableSet{
		Header: []string{"Figure", "Amount"},
		Rows: [][]string{
			{"Total Income", s.TotalIncome.String()},
			{"Total Expense", s.TotalExpense.String()},
			{"Balance", s.Balance.String()},
		},
	})

	doc.H2("Dollars")
	doc.Table(md.TableSet{
		Header: []string{"Figure", "Value"},
		Rows: [][]string{
			{"Holding", s.HoldingDollars.Dollars()},
			{"Holding Investment", s.HoldingInvestment.String()},
			{"Realized Profit", s.DollarProfit.SignedString()},
			{"Personal Use", s.PersonalDollarSpent.Dollars()},
			{"Personal Use in Taka", s.PersonalTakaSpent.String()},
		},
	})

	doc.H2("Orders")
	doc.PlainText(fmt.Sprintf("%d orders, completed sales %s", s.OrderCount, s.CompletedOrderSales))

	var b bytes.Buffer
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(s.Accounts) == 0 {
			return false
		}
		io.WriteString(w, "\n"+AccountsMarkdown(s.Accounts))
		return true
	})
	return b.String()
}
