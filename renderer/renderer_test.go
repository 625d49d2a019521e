package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/date"
)

func on(day int) date.Date { return date.New(2025, time.March, day) }

func TestListings(t *testing.T) {
	sell := hisab.BDT(125)
	testCases := []struct {
		name string
		got  string
		want []string
		not  []string
	}{
		{
			name: "empty transactions",
			got:  TransactionsMarkdown("Transactions", nil),
			want: []string{"## Transactions", "Nothing recorded yet."},
			not:  []string{"| ID |"},
		},
		{
			name: "transactions",
			got: TransactionsMarkdown("March", []hisab.Transaction{
				{ID: "t2", Type: hisab.Expense, Amount: hisab.BDT(200), Category: "Food", AccountName: "Cash", Date: on(2)},
				{ID: "t1", Type: hisab.Income, Amount: hisab.BDT(500), Category: "Salary | March", AccountName: "Cash", Date: on(1)},
			}),
			want: []string{"## March", "| t2 | 2025-03-02 | EXPENSE |", `Salary \| March`, "| ID | Date | Type |"},
		},
		{
			name: "dollar lots",
			got: DollarsMarkdown([]hisab.DollarTransaction{
				{ID: "sold", BuyRate: hisab.BDT(120), SellRate: &sell, Quantity: hisab.Q(10), Date: on(1), SellDate: on(5)},
				{ID: "held", BuyRate: hisab.BDT(118), Quantity: hisab.Q(5), Date: on(3)},
			}),
			want: []string{"| held | 2025-03-03 | $5.00 |", "holding", "2025-03-05"},
		},
		{
			name: "orders",
			got: OrdersMarkdown([]hisab.Order{
				{ID: "o1", OrderNumber: "1001", CustomerName: "Rahim", Amount: hisab.BDT(1500), Status: hisab.OrderOnHold, Date: on(4)},
			}),
			want: []string{"| o1 | 2025-03-04 | 1001 | Rahim |", "On hold"},
		},
		{
			name: "masked vault",
			got:  VaultMarkdown([]hisab.VaultItem{{ID: "v1", SiteName: "bank", Username: "me", Password: "s3cret"}}, false),
			want: []string{"| v1 | bank | me |"},
			not:  []string{"s3cret"},
		},
		{
			name: "revealed vault",
			got:  VaultMarkdown([]hisab.VaultItem{{ID: "v1", SiteName: "bank", Username: "me", Password: "s3cret"}}, true),
			want: []string{"s3cret"},
		},
		{
			name: "personal usage",
			got:  PersonalMarkdown([]hisab.PersonalDollarUsage{{ID: "p1", Amount: hisab.Q(20), Rate: hisab.BDT(121), Purpose: "Netflix", Date: on(6)}}),
			want: []string{"| p1 | 2025-03-06 | $20.00 |", "Netflix", "Spent $20.00"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, w := range tc.want {
				if !strings.Contains(tc.got, w) {
					t.Errorf("output does not contain %q:\n%s", w, tc.got)
				}
			}
			for _, n := range tc.not {
				if strings.Contains(tc.got, n) {
					t.Errorf("output contains %q:\n%s", n, tc.got)
				}
			}
		})
	}
}

func TestListings_HoldingFirst(t *testing.T) {
	sell := hisab.BDT(125)
	got := DollarsMarkdown([]hisab.DollarTransaction{
		{ID: "sold", BuyRate: hisab.BDT(120), SellRate: &sell, Quantity: hisab.Q(1), Date: on(1), SellDate: on(5)},
		{ID: "held", BuyRate: hisab.BDT(118), Quantity: hisab.Q(1), Date: on(3)},
	})
	if strings.Index(got, "| held |") > strings.Index(got, "| sold |") {
		t.Errorf("holding lot listed after the settled one:\n%s", got)
	}
}

func TestDashboardMarkdown(t *testing.T) {
	s := hisab.NewState()
	s.Accounts = []hisab.Account{{ID: "4", Name: "Cash", Type: hisab.Cash}}
	s.Transactions = []hisab.Transaction{{Type: hisab.Income, Amount: hisab.BDT(500), AccountName: "Cash"}}
	s.Orders = []hisab.Order{{Amount: hisab.BDT(700), Status: hisab.OrderCompleted}}

	got := DashboardMarkdown(hisab.Summarize(s), on(10), "offline")
	for _, want := range []string{"# Dashboard on 2025-03-10", "Remote store: offline", "Total Income", "1 orders", "## Accounts", "| 4 | Cash |"} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard does not contain %q:\n%s", want, got)
		}
	}

	empty := DashboardMarkdown(hisab.Summarize(hisab.NewState()), on(10), "")
	if strings.Contains(empty, "Remote store") || strings.Contains(empty, "## Accounts") {
		t.Errorf("empty dashboard shows optional sections:\n%s", empty)
	}
}

func TestRecords(t *testing.T) {
	tx := hisab.Transaction{ID: "t1", Type: hisab.Expense, Amount: hisab.M(1200, ""), Category: "dollar purchase", AccountName: "Cash", Date: on(1)}
	if got, want := Transaction(tx), "Expense of 1200.00 for dollar purchase on Cash (2025-03-01, t1)"; got != want {
		t.Errorf("Transaction() = %q, want %q", got, want)
	}
	sell := hisab.BDT(125)
	lot := hisab.DollarTransaction{ID: "d1", BuyRate: hisab.M(120, ""), SellRate: &sell, Quantity: hisab.Q(10), SellDate: on(5)}
	if got := DollarLot(lot); !strings.HasPrefix(got, "Sold $10.00 bought at 120.00") {
		t.Errorf("DollarLot() = %q", got)
	}
}
