package hisab

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/etnz/hisab/date"
)

func TestController_AccountBalanceScenario(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	if got := AccountBalance(c.State().Transactions, "Cash"); !got.IsZero() {
		t.Fatalf("initial AccountBalance(Cash) = %v, want 0", got)
	}

	salary, m, err := c.AddTransaction(ctx, Transaction{Type: Income, Amount: BDT(500), Category: "Salary", AccountName: "Cash"})
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	wait(t, m)
	if got, want := AccountBalance(m.State.Transactions, "Cash"), BDT(500); !got.Equal(want) {
		t.Errorf("AccountBalance(Cash) = %v, want %v", got, want)
	}

	_, m, err = c.AddTransaction(ctx, Transaction{Type: Expense, Amount: BDT(200), Category: "Food", AccountName: "Cash"})
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	wait(t, m)
	if got, want := AccountBalance(m.State.Transactions, "Cash"), BDT(300); !got.Equal(want) {
		t.Errorf("AccountBalance(Cash) = %v, want %v", got, want)
	}

	m = c.DeleteTransaction(ctx, salary.ID)
	wait(t, m)
	if got, want := AccountBalance(m.State.Transactions, "Cash"), BDT(-200); !got.Equal(want) {
		t.Errorf("AccountBalance(Cash) = %v, want %v", got, want)
	}
}

func TestController_AddTransactionStampsRecord(t *testing.T) {
	c, syncer := newTestController(t)
	tx, m, err := c.AddTransaction(context.Background(), Transaction{Type: Income, Amount: BDT(10), Category: "Gift"})
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	wait(t, m)

	if tx.ID != "id1" {
		t.Errorf("ID = %q, want %q", tx.ID, "id1")
	}
	if want := date.New(2025, time.March, 10); tx.Date != want {
		t.Errorf("Date = %v, want %v", tx.Date, want)
	}
	if got := syncer.Calls(); !slices.Equal(got, []Module{ModuleTransactions}) {
		t.Errorf("persist calls = %v, want [transactions]", got)
	}
}

func TestController_NewestFirst(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	for _, amount := range []int{1, 2, 3} {
		_, m, err := c.AddTransaction(ctx, Transaction{Type: Income, Amount: BDT(amount)})
		if err != nil {
			t.Fatalf("AddTransaction() failed: %v", err)
		}
		wait(t, m)
	}
	var got []string
	for _, tx := range c.State().Transactions {
		got = append(got, tx.ID)
	}
	if want := []string{"id3", "id2", "id1"}; !slices.Equal(got, want) {
		t.Errorf("transaction ids = %v, want %v", got, want)
	}
}

func TestController_InvalidRecords(t *testing.T) {
	ctx := context.Background()
	c, syncer := newTestController(t)

	testCases := []struct {
		name string
		run  func() error
	}{
		{"negative amount", func() error {
			_, _, err := c.AddTransaction(ctx, Transaction{Type: Expense, Amount: BDT(-1)})
			return err
		}},
		{"missing type", func() error {
			_, _, err := c.AddTransaction(ctx, Transaction{Amount: BDT(1)})
			return err
		}},
		{"zero buy rate", func() error {
			_, _, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(0), Quantity: Q(1)})
			return err
		}},
		{"zero quantity", func() error {
			_, _, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(0)})
			return err
		}},
		{"unnamed account", func() error {
			_, _, err := c.AddAccount(ctx, Account{Type: Cash})
			return err
		}},
		{"unknown order status", func() error {
			_, _, err := c.AddOrder(ctx, Order{OrderNumber: "1", Status: "Shipped"})
			return err
		}},
		{"vault without site", func() error {
			_, _, err := c.AddVaultItem(ctx, VaultItem{Username: "me"})
			return err
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalid) {
				t.Errorf("error = %v, want ErrInvalid", err)
			}
		})
	}
	if calls := syncer.Calls(); len(calls) != 0 {
		t.Errorf("persist calls = %v, want none for invalid records", calls)
	}
}

func TestController_BuyDollarCascade(t *testing.T) {
	c, syncer := newTestController(t)
	lot, m, err := c.BuyDollar(context.Background(), DollarTransaction{BuyRate: BDT(120), Quantity: Q(10), AccountName: "X"})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)

	if !lot.Holding() {
		t.Errorf("new lot is settled, want holding")
	}
	if len(m.Pending) != 2 {
		t.Fatalf("len(Pending) = %d, want 2 independent persists", len(m.Pending))
	}
	txs := m.State.Transactions
	if len(txs) != 1 {
		t.Fatalf("len(Transactions) = %d, want exactly 1", len(txs))
	}
	got := txs[0]
	if got.Type != Expense || !got.Amount.Equal(BDT(1200)) || got.AccountName != "X" || got.Category != CategoryDollarPurchase {
		t.Errorf("cascaded transaction = %+v, want EXPENSE 1200 on X", got)
	}
	if got := AccountBalance(txs, "X"); !got.Equal(BDT(-1200)) {
		t.Errorf("AccountBalance(X) = %v, want -1200", got)
	}
	calls := syncer.Calls()
	slices.Sort(calls)
	if want := []Module{ModuleDollarTransactions, ModuleTransactions}; !slices.Equal(calls, want) {
		t.Errorf("persist calls = %v, want %v", calls, want)
	}
}

func TestController_BuyDollarWithoutAccount(t *testing.T) {
	c, _ := newTestController(t)
	_, m, err := c.BuyDollar(context.Background(), DollarTransaction{BuyRate: BDT(118), Quantity: Q(5)})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)
	if len(m.Pending) != 1 {
		t.Errorf("len(Pending) = %d, want 1", len(m.Pending))
	}
	if len(m.State.Transactions) != 0 {
		t.Errorf("Transactions = %v, want none without an account", m.State.Transactions)
	}
}

func TestController_SellDollarCascade(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	lot, m, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(10), AccountName: "X"})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)

	sold, m, err := c.SellDollar(ctx, lot.ID, BDT(125))
	if err != nil {
		t.Fatalf("SellDollar() failed: %v", err)
	}
	wait(t, m)

	if sold.Holding() {
		t.Fatalf("sold lot is still holding")
	}
	if want := date.New(2025, time.March, 10); sold.SellDate != want {
		t.Errorf("SellDate = %v, want %v", sold.SellDate, want)
	}

	var incomes []Transaction
	for _, tx := range m.State.Transactions {
		if tx.Type == Income {
			incomes = append(incomes, tx)
		}
	}
	if len(incomes) != 1 {
		t.Fatalf("income transactions = %v, want exactly 1", incomes)
	}
	if got := incomes[0]; !got.Amount.Equal(BDT(1250)) || got.AccountName != "X" || got.Category != CategoryDollarSale {
		t.Errorf("cascaded income = %+v, want INCOME 1250 on X", got)
	}
	if got := DollarProfit(m.State.DollarTransactions); !got.Equal(BDT(50)) {
		t.Errorf("DollarProfit() = %v, want 50", got)
	}
	if got := HoldingDollars(m.State.DollarTransactions); !got.IsZero() {
		t.Errorf("HoldingDollars() = %v, want 0", got)
	}
}

func TestController_SellDollarErrors(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	lot, m, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(10)})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)

	if _, _, err := c.SellDollar(ctx, "nope", BDT(125)); !errors.Is(err, ErrNotFound) {
		t.Errorf("SellDollar(unknown) error = %v, want ErrNotFound", err)
	}
	if _, _, err := c.SellDollar(ctx, lot.ID, BDT(0)); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("SellDollar(rate 0) error = %v, want ErrInvalidRate", err)
	}
	_, m, err = c.SellDollar(ctx, lot.ID, BDT(125))
	if err != nil {
		t.Fatalf("SellDollar() failed: %v", err)
	}
	wait(t, m)
	if _, _, err := c.SellDollar(ctx, lot.ID, BDT(130)); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("second SellDollar() error = %v, want ErrAlreadySettled", err)
	}
	if got := *c.State().DollarTransactions[0].SellRate; !got.Equal(BDT(125)) {
		t.Errorf("SellRate = %v, want the first sale to stick", got)
	}
}

func TestController_ConcurrentSellSettlesOnce(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	lot, m, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(10), AccountName: "X"})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)

	const sellers = 8
	var (
		wg       sync.WaitGroup
		start    = make(chan struct{})
		errs     = make([]error, sellers)
		mutation = make([]Mutation, sellers)
	)
	for i := range sellers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, mutation[i], errs[i] = c.SellDollar(ctx, lot.ID, BDT(125+i))
		}()
	}
	close(start)
	wg.Wait()

	sold := 0
	for i, err := range errs {
		switch {
		case err == nil:
			sold++
			wait(t, mutation[i])
		case !errors.Is(err, ErrAlreadySettled):
			t.Errorf("SellDollar() error = %v, want nil or ErrAlreadySettled", err)
		}
	}
	if sold != 1 {
		t.Fatalf("%d sales succeeded, want exactly 1", sold)
	}
	sales := 0
	for _, tx := range c.State().Transactions {
		if tx.Category == CategoryDollarSale {
			sales++
		}
	}
	if sales != 1 {
		t.Errorf("%d dollar sale incomes, want 1", sales)
	}
}

func TestController_UpdateDeletedOrder(t *testing.T) {
	ctx := context.Background()
	c, syncer := newTestController(t)
	o, m, err := c.AddOrder(ctx, Order{OrderNumber: "1001", CustomerName: "Rahim", Amount: BDT(1500), Status: OrderPending})
	if err != nil {
		t.Fatalf("AddOrder() failed: %v", err)
	}
	wait(t, m)
	wait(t, c.DeleteOrder(ctx, o.ID))
	calls := len(syncer.Calls())

	if _, _, err := c.UpdateOrderStatus(ctx, o.ID, OrderCompleted); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateOrderStatus(deleted) error = %v, want ErrNotFound", err)
	}
	if got := len(syncer.Calls()); got != calls {
		t.Errorf("Persist called %d times after a failed update, want none", got-calls)
	}
	if len(c.State().Orders) != 0 {
		t.Errorf("Orders = %+v, want none", c.State().Orders)
	}
}

func TestController_DeleteDollarKeepsTransactions(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	lot, m, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(10), AccountName: "X"})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	wait(t, m)

	m = c.DeleteDollar(ctx, lot.ID)
	wait(t, m)
	if len(m.State.DollarTransactions) != 0 {
		t.Errorf("DollarTransactions = %v, want none", m.State.DollarTransactions)
	}
	if len(m.State.Transactions) != 1 {
		t.Errorf("len(Transactions) = %d, want the purchase expense kept", len(m.State.Transactions))
	}
}

func TestController_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	c, syncer := newTestController(t)
	syncer.reject[ModuleTransactions] = true

	_, m, err := c.BuyDollar(ctx, DollarTransaction{BuyRate: BDT(120), Quantity: Q(10), AccountName: "X"})
	if err != nil {
		t.Fatalf("BuyDollar() failed: %v", err)
	}
	ok, err := m.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if ok {
		t.Errorf("Wait() = true, want false when the cascade persist is rejected")
	}

	for _, p := range m.Pending {
		ok, _ := p.Wait(ctx)
		if want := p.Module != ModuleTransactions; ok != want {
			t.Errorf("persist of %s = %v, want %v", p.Module, ok, want)
		}
	}

	state := c.State()
	if len(state.Transactions) != 1 || len(state.DollarTransactions) != 1 {
		t.Errorf("state = %d transactions, %d lots, want the optimistic update kept", len(state.Transactions), len(state.DollarTransactions))
	}
	if remote := syncer.FetchAll(ctx); len(remote.Transactions) != 0 || len(remote.DollarTransactions) != 1 {
		t.Errorf("remote = %d transactions, %d lots, want only the lot", len(remote.Transactions), len(remote.DollarTransactions))
	}
}

func TestController_Orders(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	o1, m, err := c.AddOrder(ctx, Order{OrderNumber: "1001", CustomerName: "Rahim", Amount: BDT(1500), Status: OrderPending})
	if err != nil {
		t.Fatalf("AddOrder() failed: %v", err)
	}
	wait(t, m)
	_, m, err = c.AddOrder(ctx, Order{OrderNumber: "1002", CustomerName: "Karim", Amount: BDT(700), Status: OrderCompleted})
	if err != nil {
		t.Fatalf("AddOrder() failed: %v", err)
	}
	wait(t, m)
	if got := CompletedOrderSales(m.State.Orders); !got.Equal(BDT(700)) {
		t.Errorf("CompletedOrderSales() = %v, want 700", got)
	}

	updated, m, err := c.UpdateOrderStatus(ctx, o1.ID, OrderCompleted)
	if err != nil {
		t.Fatalf("UpdateOrderStatus() failed: %v", err)
	}
	wait(t, m)
	if updated.Status != OrderCompleted || updated.OrderNumber != "1001" {
		t.Errorf("updated order = %+v", updated)
	}
	if got := CompletedOrderSales(m.State.Orders); !got.Equal(BDT(2200)) {
		t.Errorf("CompletedOrderSales() = %v, want 2200", got)
	}

	if _, _, err := c.UpdateOrderStatus(ctx, "nope", OrderFailed); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateOrderStatus(unknown) error = %v, want ErrNotFound", err)
	}

	m = c.DeleteOrder(ctx, o1.ID)
	wait(t, m)
	if len(m.State.Orders) != 1 {
		t.Errorf("len(Orders) = %d, want 1", len(m.State.Orders))
	}
}

func TestController_AccountsKeepCreationOrder(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	for _, name := range []string{"bKash", "Bank"} {
		_, m, err := c.AddAccount(ctx, Account{Name: name, Type: OtherAccount})
		if err != nil {
			t.Fatalf("AddAccount() failed: %v", err)
		}
		wait(t, m)
	}
	accounts := c.State().Accounts
	if len(accounts) != 2 || accounts[0].Name != "bKash" || accounts[1].Name != "Bank" {
		t.Errorf("accounts = %+v, want bKash then Bank", accounts)
	}
}

func TestController_DeleteAccountOrphansTransactions(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	acc, m, err := c.AddAccount(ctx, Account{Name: "Cash", Type: Cash})
	if err != nil {
		t.Fatalf("AddAccount() failed: %v", err)
	}
	wait(t, m)
	_, m, err = c.AddTransaction(ctx, Transaction{Type: Income, Amount: BDT(100), AccountName: "Cash"})
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	wait(t, m)

	m = c.DeleteAccount(ctx, acc.ID)
	wait(t, m)
	if len(m.State.Accounts) != 0 || len(m.State.Transactions) != 1 {
		t.Errorf("state = %d accounts, %d transactions, want 0 and 1", len(m.State.Accounts), len(m.State.Transactions))
	}
	if got := AccountBalance(m.State.Transactions, "Cash"); !got.Equal(BDT(100)) {
		t.Errorf("AccountBalance(Cash) = %v, want 100 still derived by name", got)
	}
}

func TestController_VaultAndPersonalUsage(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	item, m, err := c.AddVaultItem(ctx, VaultItem{SiteName: "bank.example", Username: "me", Password: "secret"})
	if err != nil {
		t.Fatalf("AddVaultItem() failed: %v", err)
	}
	wait(t, m)
	if len(m.State.Vault) != 1 || m.State.Vault[0].Password != "secret" {
		t.Errorf("Vault = %+v", m.State.Vault)
	}
	wait(t, c.DeleteVaultItem(ctx, item.ID))

	u, m, err := c.AddPersonalDollarUsage(ctx, PersonalDollarUsage{Amount: Q(20), Rate: BDT(121), Purpose: "Netflix"})
	if err != nil {
		t.Fatalf("AddPersonalDollarUsage() failed: %v", err)
	}
	wait(t, m)
	if got := PersonalTakaSpent(m.State.PersonalDollarUsage); !got.Equal(BDT(2420)) {
		t.Errorf("PersonalTakaSpent() = %v, want 2420", got)
	}
	m = c.DeletePersonalDollarUsage(ctx, u.ID)
	wait(t, m)
	if len(m.State.Vault) != 0 || len(m.State.PersonalDollarUsage) != 0 {
		t.Errorf("state not emptied: %+v", m.State)
	}
}

func TestController_LoadSeedsDefaultAccounts(t *testing.T) {
	ctx := context.Background()
	syncer := newMemorySyncer()
	c := NewController(syncer, WithDefaultAccounts(true))

	m := c.Load(ctx)
	wait(t, m)
	if got, want := len(m.State.Accounts), len(DefaultAccounts()); got != want {
		t.Fatalf("len(Accounts) = %d, want %d", got, want)
	}
	if remote := syncer.FetchAll(ctx); len(remote.Accounts) != len(DefaultAccounts()) {
		t.Errorf("remote accounts = %d, want the defaults persisted", len(remote.Accounts))
	}

	// A second load finds the accounts and seeds nothing.
	m = c.Load(ctx)
	if len(m.Pending) != 0 {
		t.Errorf("second Load() issued %d persists, want none", len(m.Pending))
	}
}

func TestController_LoadWithoutSeed(t *testing.T) {
	c := NewController(newMemorySyncer())
	m := c.Load(context.Background())
	if len(m.Pending) != 0 || len(m.State.Accounts) != 0 {
		t.Errorf("Load() = %+v, want an empty state and no persist", m)
	}
}

func TestController_StateIsACopy(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	_, m, err := c.AddTransaction(ctx, Transaction{Type: Income, Amount: BDT(1)})
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	wait(t, m)

	m.State.Transactions[0].Amount = BDT(1000)
	if got := c.State().Transactions[0].Amount; !got.Equal(BDT(1)) {
		t.Errorf("controller state changed through a returned state: %v", got)
	}
}

func TestPending_WaitHonorsContext(t *testing.T) {
	p := &Pending{Module: ModuleOrders, done: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}
