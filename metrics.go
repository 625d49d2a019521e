package hisab

import (
	"github.com/etnz/hisab/date"
)

// Derived metrics are computed on demand from the collections and never stored.

// TotalIncome sums the amount of INCOME transactions.
func TotalIncome(txs []Transaction) Money { return sumOf(txs, Income, nil) }

// TotalExpense sums the amount of EXPENSE transactions.
func TotalExpense(txs []Transaction) Money { return sumOf(txs, Expense, nil) }

// Balance is TotalIncome - TotalExpense.
func Balance(txs []Transaction) Money { return TotalIncome(txs).Sub(TotalExpense(txs)) }

// AccountBalance is the balance of the transactions whose accountName is name.
func AccountBalance(txs []Transaction, name string) Money {
	return sumOf(txs, Income, &name).Sub(sumOf(txs, Expense, &name))
}

func sumOf(txs []Transaction, typ TransactionType, account *string) Money {
	total := BDT(0)
	for _, t := range txs {
		if t.Type != typ || (account != nil && t.AccountName != *account) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// DollarProfit sums (sellRate - buyRate) × quantity over settled lots.
func DollarProfit(lots []DollarTransaction) Money {
	total := BDT(0)
	for _, l := range lots {
		total = total.Add(l.Profit())
	}
	return total
}

// HoldingDollars sums the quantity of lots not sold yet.
func HoldingDollars(lots []DollarTransaction) Quantity {
	total := Q(0)
	for _, l := range lots {
		if l.Holding() {
			total = total.Add(l.Quantity)
		}
	}
	return total
}

// HoldingInvestment sums the cost of lots not sold yet.
func HoldingInvestment(lots []DollarTransaction) Money {
	total := BDT(0)
	for _, l := range lots {
		if l.Holding() {
			total = total.Add(l.Cost())
		}
	}
	return total
}

// CompletedOrderSales sums the amount of completed orders.
func CompletedOrderSales(orders []Order) Money {
	total := BDT(0)
	for _, o := range orders {
		if o.Status == OrderCompleted {
			total = total.Add(o.Amount)
		}
	}
	return total
}

// PersonalDollarSpent sums the dollars used personally.
func PersonalDollarSpent(usage []PersonalDollarUsage) Quantity {
	total := Q(0)
	for _, u := range usage {
		total = total.Add(u.Amount)
	}
	return total
}

// PersonalTakaSpent sums the Taka equivalent of personal dollar usage.
func PersonalTakaSpent(usage []PersonalDollarUsage) Money {
	total := BDT(0)
	for _, u := range usage {
		total = total.Add(u.Taka())
	}
	return total
}

// TakaToDollar returns how many dollars taka buys at rate. It is zero when rate is zero.
func TakaToDollar(taka, rate Money) Quantity { return taka.DivPrice(rate) }

// RateFromTotals returns the rate paid for dollars with totalTaka. It is zero when dollars is zero.
func RateFromTotals(totalTaka Money, dollars Quantity) Money { return totalTaka.Div(dollars) }

// TransactionsIn returns the transactions dated within r, in their original order.
func TransactionsIn(txs []Transaction, r date.Range) []Transaction {
	res := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if r.Contains(t.Date) {
			res = append(res, t)
		}
	}
	return res
}

// AccountSummary is an account with its derived balance.
type AccountSummary struct {
	Account
	Balance Money
}

// AccountBalances returns every account with its derived balance, in account order.
func AccountBalances(s State) []AccountSummary {
	res := make([]AccountSummary, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		res = append(res, AccountSummary{Account: a, Balance: AccountBalance(s.Transactions, a.Name)})
	}
	return res
}

// Summary gathers the figures displayed on the dashboard.
type Summary struct {
	TotalIncome         Money
	TotalExpense        Money
	Balance             Money
	CompletedOrderSales Money
	OrderCount          int
	DollarProfit        Money
	HoldingDollars      Quantity
	HoldingInvestment   Money
	PersonalDollarSpent Quantity
	PersonalTakaSpent   Money
	Accounts            []AccountSummary
}

// Summarize computes all the derived metrics of s.
func Summarize(s State) Summary {
	return Summary{
		TotalIncome:         TotalIncome(s.Transactions),
		TotalExpense:        TotalExpense(s.Transactions),
		Balance:             Balance(s.Transactions),
		CompletedOrderSales: CompletedOrderSales(s.Orders),
		OrderCount:          len(s.Orders),
		DollarProfit:        DollarProfit(s.DollarTransactions),
		HoldingDollars:      HoldingDollars(s.DollarTransactions),
		HoldingInvestment:   HoldingInvestment(s.DollarTransactions),
		PersonalDollarSpent: PersonalDollarSpent(s.PersonalDollarUsage),
		PersonalTakaSpent:   PersonalTakaSpent(s.PersonalDollarUsage),
		Accounts:            AccountBalances(s),
	}
}
