package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/hisab"
)

// listRenderer builds a markdown listing.
type listRenderer struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *listRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// header prints the title and, when there are rows, the table header.
// It returns false when the listing is empty.
func (r *listRenderer) header(title string, n int, columns ...string) bool {
	r.Printf("## %s\n\n", title)
	if n == 0 {
		r.Printf("Nothing recorded yet.\n")
		return false
	}
	r.Printf("| %s |\n", strings.Join(columns, " | "))
	r.Printf("|%s\n", strings.Repeat(":---|", len(columns)))
	return true
}

// TransactionsMarkdown lists transactions in their order, followed by their totals.
func TransactionsMarkdown(title string, txs []hisab.Transaction) string {
	var r listRenderer
	if !r.header(title, len(txs), "ID", "Date", "Type", "Amount", "Category", "Account", "Note") {
		return r.String()
	}
	for _, t := range txs {
		amount := t.Amount.String()
		if t.Type == hisab.Expense {
			amount = t.Amount.Neg().String()
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n", t.ID, t.Date, t.Type, amount, cell(t.Category), cell(t.AccountName), cell(t.Note))
	}
	r.Printf("\nIncome %s, Expense %s, Balance %s\n", hisab.TotalIncome(txs), hisab.TotalExpense(txs), hisab.Balance(txs))
	return r.String()
}

// AccountsMarkdown lists accounts with their derived balance.
func AccountsMarkdown(accounts []hisab.AccountSummary) string {
	var r listRenderer
	if !r.header("Accounts", len(accounts), "ID", "Name", "Type", "Number", "Provider", "Balance") {
		return r.String()
	}
	for _, a := range accounts {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n", a.ID, cell(a.Name), a.Type, cell(a.AccountNumber), cell(a.ProviderName), a.Balance)
	}
	return r.String()
}

// DollarsMarkdown lists dollar lots, holding lots first.
func DollarsMarkdown(lots []hisab.DollarTransaction) string {
	var r listRenderer
	if !r.header("Dollar Lots", len(lots), "ID", "Date", "Quantity", "Buy Rate", "Cost", "Sell Rate", "Sold On", "Profit", "Account") {
		return r.String()
	}
	row := func(l hisab.DollarTransaction) {
		sellRate, soldOn, profit := "holding", "", ""
		if !l.Holding() {
			sellRate, soldOn, profit = l.SellRate.String(), l.SellDate.String(), l.Profit().SignedString()
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n", l.ID, l.Date, l.Quantity.Dollars(), l.BuyRate, l.Cost(), sellRate, soldOn, profit, cell(l.AccountName))
	}
	for _, l := range lots {
		if l.Holding() {
			row(l)
		}
	}
	for _, l := range lots {
		if !l.Holding() {
			row(l)
		}
	}
	r.Printf("\nHolding %s for %s, realized profit %s\n", hisab.HoldingDollars(lots).Dollars(), hisab.HoldingInvestment(lots), hisab.DollarProfit(lots).SignedString())
	return r.String()
}

// PersonalMarkdown lists dollars used personally.
func PersonalMarkdown(usage []hisab.PersonalDollarUsage) string {
	var r listRenderer
	if !r.header("Personal Dollar Usage", len(usage), "ID", "Date", "Dollars", "Rate", "Taka", "Purpose", "Note") {
		return r.String()
	}
	for _, u := range usage {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n", u.ID, u.Date, u.Amount.Dollars(), u.Rate, u.Taka(), cell(u.Purpose), cell(u.Note))
	}
	r.Printf("\nSpent %s worth %s\n", hisab.PersonalDollarSpent(usage).Dollars(), hisab.PersonalTakaSpent(usage))
	return r.String()
}

// OrdersMarkdown lists orders and the completed sales.
func OrdersMarkdown(orders []hisab.Order) string {
	var r listRenderer
	if !r.header("Orders", len(orders), "ID", "Date", "Number", "Customer", "Amount", "Status", "Note") {
		return r.String()
	}
	for _, o := range orders {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n", o.ID, o.Date, cell(o.OrderNumber), cell(o.CustomerName), o.Amount, o.Status, cell(o.Note))
	}
	r.Printf("\nCompleted sales %s\n", hisab.CompletedOrderSales(orders))
	return r.String()
}

// VaultMarkdown lists stored credentials. Passwords are masked unless reveal is set.
func VaultMarkdown(items []hisab.VaultItem, reveal bool) string {
	var r listRenderer
	if !r.header("Vault", len(items), "ID", "Site", "Username", "Password", "Note") {
		return r.String()
	}
	for _, v := range items {
		password := strings.Repeat("•", 8)
		if reveal {
			password = cell(v.Password)
		}
		r.Printf("| %s | %s | %s | %s | %s |\n", v.ID, cell(v.SiteName), cell(v.Username), password, cell(v.Note))
	}
	return r.String()
}
