package renderer

import (
	"fmt"

	"github.com/etnz/hisab"
)

// Transaction renders a transaction to a string.
func Transaction(t hisab.Transaction) string {
	var s string
	switch t.Type {
	case hisab.Income:
		s = fmt.Sprintf("Income of %s", t.Amount)
	case hisab.Expense:
		s = fmt.Sprintf("Expense of %s", t.Amount)
	default:
		s = fmt.Sprintf("%s of %s", t.Type, t.Amount)
	}
	if t.Category != "" {
		s += fmt.Sprintf(" for %s", t.Category)
	}
	if t.AccountName != "" {
		s += fmt.Sprintf(" on %s", t.AccountName)
	}
	return s + fmt.Sprintf(" (%s, %s)", t.Date, t.ID)
}

// DollarLot renders a dollar lot to a string.
func DollarLot(l hisab.DollarTransaction) string {
	if l.Holding() {
		return fmt.Sprintf("Bought %s at %s for %s (%s, %s)", l.Quantity.Dollars(), l.BuyRate, l.Cost(), l.Date, l.ID)
	}
	return fmt.Sprintf("Sold %s bought at %s for %s, profit %s (%s, %s)", l.Quantity.Dollars(), l.BuyRate, l.Proceeds(), l.Profit().SignedString(), l.SellDate, l.ID)
}
