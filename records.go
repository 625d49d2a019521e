package hisab

import (
	"fmt"
	"strings"

	"github.com/etnz/hisab/date"
)

// TransactionType tells whether a Transaction brings money in or out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// ParseTransactionType parses "income" or "expense", case insensitive.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalid, s)
}

// AccountType classifies where the money of an Account is kept.
type AccountType string

const (
	MobileWallet AccountType = "Mobile Wallet"
	Bank         AccountType = "Bank"
	Cash         AccountType = "Cash"
	OtherAccount AccountType = "Other"
)

// AccountTypes lists all account types.
var AccountTypes = []AccountType{MobileWallet, Bank, Cash, OtherAccount}

// ParseAccountType parses an account type, case insensitive. "wallet" and "mobile" stand for MobileWallet.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile wallet", "mobile", "wallet":
		return MobileWallet, nil
	case "bank":
		return Bank, nil
	case "cash":
		return Cash, nil
	case "other":
		return OtherAccount, nil
	}
	return "", fmt.Errorf("%w: unknown account type %q", ErrInvalid, s)
}

// OrderStatus is the fulfilment status of an Order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending payment"
	OrderProcessing OrderStatus = "Processing"
	OrderOnHold     OrderStatus = "On hold"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
	OrderRefunded   OrderStatus = "Refunded"
	OrderFailed     OrderStatus = "Failed"
)

// OrderStatuses lists all statuses in their usual progression order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderOnHold, OrderCompleted, OrderCancelled, OrderRefunded, OrderFailed}

// ParseOrderStatus parses a status label, case insensitive. "pending" and "hold" are accepted too.
func ParseOrderStatus(s string) (OrderStatus, error) {
	l := strings.ToLower(strings.TrimSpace(s))
	switch l {
	case "pending":
		return OrderPending, nil
	case "hold", "on-hold":
		return OrderOnHold, nil
	}
	for _, st := range OrderStatuses {
		if strings.ToLower(string(st)) == l {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrInvalid, s)
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Transaction is an income or an expense on an account.
//
// AccountName links to Account.Name by value: renaming or deleting an account orphans its transactions.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      Money           `json:"amount"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
	AccountName string          `json:"accountName,omitempty"`
	Date        date.Date       `json:"date"`
}

// Account is a place where money is kept. Its balance is never stored, see AccountBalance.
type Account struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          AccountType `json:"type"`
	AccountNumber string      `json:"accountNumber,omitempty"`
	ProviderName  string      `json:"providerName,omitempty"`
	Note          string      `json:"note,omitempty"`
}

// VaultItem is a stored credential. The password is kept in plain text.
type VaultItem struct {
	ID       string `json:"id"`
	SiteName string `json:"siteName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
}

// DollarTransaction is a lot of dollars bought at BuyRate.
//
// A lot is Holding until a SellRate is recorded, it is then Settled and SellDate is set.
type DollarTransaction struct {
	ID          string    `json:"id"`
	BuyRate     Money     `json:"buyRate"`
	SellRate    *Money    `json:"sellRate,omitempty"`
	Quantity    Quantity  `json:"quantity"`
	Note        string    `json:"note"`
	Date        date.Date `json:"date"`
	SellDate    date.Date `json:"sellDate,omitzero"`
	AccountName string    `json:"accountName,omitempty"`
}

// Holding reports whether the lot has not been sold yet.
func (t DollarTransaction) Holding() bool { return t.SellRate == nil }

// Cost returns the Taka paid for the lot.
func (t DollarTransaction) Cost() Money { return t.BuyRate.Mul(t.Quantity) }

// Proceeds returns the Taka received for the lot, zero while holding.
func (t DollarTransaction) Proceeds() Money {
	if t.Holding() {
		return BDT(0)
	}
	return t.SellRate.Mul(t.Quantity)
}

// Profit returns the realized profit of a settled lot, zero while holding.
func (t DollarTransaction) Profit() Money {
	if t.Holding() {
		return BDT(0)
	}
	return t.SellRate.Sub(t.BuyRate).Mul(t.Quantity)
}

// PersonalDollarUsage records dollars spent for personal purposes at a given rate.
type PersonalDollarUsage struct {
	ID      string    `json:"id"`
	Amount  Quantity  `json:"amount"`
	Rate    Money     `json:"rate"`
	Purpose string    `json:"purpose"`
	Note    string    `json:"note"`
	Date    date.Date `json:"date"`
}

// Taka returns the Taka equivalent of the usage.
func (u PersonalDollarUsage) Taka() Money { return u.Rate.Mul(u.Amount) }

// Order is an e-commerce order.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	CustomerName string      `json:"customerName"`
	Amount       Money       `json:"amount"`
	Status       OrderStatus `json:"status"`
	Note         string      `json:"note"`
	Date         date.Date   `json:"date"`
}
