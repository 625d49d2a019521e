package hisab

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/etnz/hisab/date"
	"github.com/google/uuid"
)

// Categories of the transactions created by dollar trades.
const (
	CategoryDollarPurchase = "dollar purchase"
	CategoryDollarSale     = "dollar sale"
)

// Syncer is the remote persistence boundary.
//
// FetchAll never fails, it degrades to cached or empty data.
// Persist replaces a whole collection and reports whether the remote store accepted it.
type Syncer interface {
	FetchAll(ctx context.Context) State
	Persist(ctx context.Context, module Module, collection any) bool
}

// Pending is a persist call in flight.
type Pending struct {
	Module Module
	done   chan struct{}
	ok     bool
}

// Done is closed when the persist call has completed.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the persist call completes and returns whether the remote store accepted it.
// It only stops waiting when ctx is done, the call itself keeps running.
func (p *Pending) Wait(ctx context.Context) (bool, error) {
	select {
	case <-p.done:
		return p.ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Mutation is the outcome of an operation: the state once applied, and the persist calls it issued.
//
// The state is applied whatever the persist outcome, callers choose to wait or not.
type Mutation struct {
	State   State
	Pending []*Pending
}

// Wait waits for every pending persist and reports whether they were all accepted.
func (m Mutation) Wait(ctx context.Context) (bool, error) {
	all := true
	for _, p := range m.Pending {
		ok, err := p.Wait(ctx)
		if err != nil {
			return false, err
		}
		all = all && ok
	}
	return all, nil
}

// then chains n after m: n's state is the latest, pending calls are kept in issue order.
func (m Mutation) then(n Mutation) Mutation {
	return Mutation{State: n.State, Pending: append(slices.Clone(m.Pending), n.Pending...)}
}

// Controller owns the application State and is the only place where it changes.
//
// Every operation applies its change in memory first, then persists the changed
// collection in the background. Cascades are independent operations: a failed
// persist of one never rolls back the other.
type Controller struct {
	syncer       Syncer
	today        func() date.Date
	newID        func() string
	seedAccounts bool

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the function that stamps record dates.
func WithClock(today func() date.Date) Option { return func(c *Controller) { c.today = today } }

// WithIDs sets the record id generator.
func WithIDs(newID func() string) Option { return func(c *Controller) { c.newID = newID } }

// WithDefaultAccounts makes Load seed DefaultAccounts when no account exists.
func WithDefaultAccounts(seed bool) Option { return func(c *Controller) { c.seedAccounts = seed } }

// NewController returns a Controller with an empty state persisted through syncer.
func NewController(syncer Syncer, opts ...Option) *Controller {
	c := &Controller{
		syncer: syncer,
		today:  date.Today,
		newID:  uuid.NewString,
		state:  NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Load replaces the state by the one fetched from the syncer.
func (c *Controller) Load(ctx context.Context) Mutation {
	fetched := c.syncer.FetchAll(ctx)
	fetched.Normalize()

	c.mu.Lock()
	c.state = fetched.Clone()
	seed := c.seedAccounts && len(c.state.Accounts) == 0
	c.mu.Unlock()

	if !seed {
		return Mutation{State: c.State()}
	}
	return c.apply(ctx, ModuleAccounts, func(s *State) { s.Accounts = DefaultAccounts() })
}

// apply runs update on the state, then persists module in the background.
func (c *Controller) apply(ctx context.Context, module Module, update func(s *State)) Mutation {
	m, _ := c.applyIf(ctx, module, func(s *State) error { update(s); return nil })
	return m
}

// applyIf is apply for updates that check the state first. The check and the update
// share the lock: when update fails nothing is changed nor persisted.
func (c *Controller) applyIf(ctx context.Context, module Module, update func(s *State) error) (Mutation, error) {
	c.mu.Lock()
	if err := update(&c.state); err != nil {
		c.mu.Unlock()
		return Mutation{}, err
	}
	snapshot := c.state.Clone()
	c.mu.Unlock()

	return Mutation{State: snapshot, Pending: []*Pending{c.persist(ctx, module, snapshot.Collection(module))}}, nil
}

// persist issues a fire-and-forget Persist call. It survives the cancellation of ctx.
func (c *Controller) persist(ctx context.Context, module Module, collection any) *Pending {
	p := &Pending{Module: module, done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(p.done)
		p.ok = c.syncer.Persist(ctx, module, collection)
	}()
	return p
}

// stamp assigns a fresh id, and today's date when on is zero.
func (c *Controller) stamp(on date.Date) (string, date.Date) {
	if on.IsZero() {
		on = c.today()
	}
	return c.newID(), on
}

// prepend returns a new list with x first.
func prepend[T any](x T, list []T) []T {
	res := make([]T, 0, len(list)+1)
	res = append(res, x)
	return append(res, list...)
}

// without returns a new list without the records whose id is id.
func without[T any](list []T, id string, idOf func(T) string) []T {
	res := make([]T, 0, len(list))
	for _, x := range list {
		if idOf(x) != id {
			res = append(res, x)
		}
	}
	return res
}

// --- Transactions ---

// AddTransaction records an income or an expense.
func (c *Controller) AddTransaction(ctx context.Context, t Transaction) (Transaction, Mutation, error) {
	if err := validateTransaction(t); err != nil {
		return Transaction{}, Mutation{}, err
	}
	t.ID, t.Date = c.stamp(t.Date)
	t.Amount = M(t.Amount.Decimal(), Taka)
	m := c.apply(ctx, ModuleTransactions, func(s *State) { s.Transactions = prepend(t, s.Transactions) })
	return t, m, nil
}

// DeleteTransaction removes the transaction id, if any.
func (c *Controller) DeleteTransaction(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModuleTransactions, func(s *State) {
		s.Transactions = without(s.Transactions, id, func(t Transaction) string { return t.ID })
	})
}

// --- Accounts ---

// AddAccount appends an account.
func (c *Controller) AddAccount(ctx context.Context, a Account) (Account, Mutation, error) {
	if err := validateAccount(a); err != nil {
		return Account{}, Mutation{}, err
	}
	a.ID = c.newID()
	m := c.apply(ctx, ModuleAccounts, func(s *State) { s.Accounts = append(slices.Clone(s.Accounts), a) })
	return a, m, nil
}

// DeleteAccount removes the account id. Its transactions are kept and no longer resolve to an account.
func (c *Controller) DeleteAccount(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModuleAccounts, func(s *State) {
		s.Accounts = without(s.Accounts, id, func(a Account) string { return a.ID })
	})
}

// --- Vault ---

// AddVaultItem stores a credential.
func (c *Controller) AddVaultItem(ctx context.Context, v VaultItem) (VaultItem, Mutation, error) {
	if err := validateVaultItem(v); err != nil {
		return VaultItem{}, Mutation{}, err
	}
	v.ID = c.newID()
	m := c.apply(ctx, ModuleVault, func(s *State) { s.Vault = prepend(v, s.Vault) })
	return v, m, nil
}

// DeleteVaultItem removes the credential id.
func (c *Controller) DeleteVaultItem(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModuleVault, func(s *State) {
		s.Vault = without(s.Vault, id, func(v VaultItem) string { return v.ID })
	})
}

// --- Dollar trades ---

// BuyDollar records a new holding lot. When the lot names an account, an EXPENSE of
// buyRate × quantity is also recorded on that account.
func (c *Controller) BuyDollar(ctx context.Context, lot DollarTransaction) (DollarTransaction, Mutation, error) {
	if err := validateDollarTransaction(lot); err != nil {
		return DollarTransaction{}, Mutation{}, err
	}
	lot.ID, lot.Date = c.stamp(lot.Date)
	lot.SellRate, lot.SellDate = nil, date.Date{}
	lot.BuyRate = M(lot.BuyRate.Decimal(), Taka)

	m := c.apply(ctx, ModuleDollarTransactions, func(s *State) { s.DollarTransactions = prepend(lot, s.DollarTransactions) })
	if lot.AccountName == "" {
		return lot, m, nil
	}
	_, cm, err := c.AddTransaction(ctx, Transaction{
		Type:        Expense,
		Amount:      lot.Cost(),
		Category:    CategoryDollarPurchase,
		Note:        fmt.Sprintf("bought %s$ at %s", lot.Quantity, lot.BuyRate.Decimal()),
		AccountName: lot.AccountName,
		Date:        lot.Date,
	})
	if err != nil {
		return lot, m, err
	}
	return lot, m.then(cm), nil
}

// SellDollar settles the holding lot id at sellRate, dated today. When the lot names an
// account, an INCOME of sellRate × quantity is also recorded on that account.
//
// Settlement happens once: a settled lot returns ErrAlreadySettled.
func (c *Controller) SellDollar(ctx context.Context, id string, sellRate Money) (DollarTransaction, Mutation, error) {
	if !sellRate.IsPositive() {
		return DollarTransaction{}, Mutation{}, fmt.Errorf("%w: sell rate %s", ErrInvalidRate, sellRate.Decimal())
	}
	rate := M(sellRate.Decimal(), Taka)
	today := c.today()

	var settled DollarTransaction
	m, err := c.applyIf(ctx, ModuleDollarTransactions, func(s *State) error {
		i := slices.IndexFunc(s.DollarTransactions, func(t DollarTransaction) bool { return t.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: dollar lot %q", ErrNotFound, id)
		}
		if !s.DollarTransactions[i].Holding() {
			return fmt.Errorf("%w: lot %q sold on %s", ErrAlreadySettled, id, s.DollarTransactions[i].SellDate)
		}
		settled = s.DollarTransactions[i]
		settled.SellRate, settled.SellDate = &rate, today
		s.DollarTransactions = replace(s.DollarTransactions, settled, func(t DollarTransaction) string { return t.ID })
		return nil
	})
	if err != nil {
		return DollarTransaction{}, Mutation{}, err
	}
	if settled.AccountName == "" {
		return settled, m, nil
	}
	_, cm, err := c.AddTransaction(ctx, Transaction{
		Type:        Income,
		Amount:      settled.Proceeds(),
		Category:    CategoryDollarSale,
		Note:        fmt.Sprintf("sold %s$ at %s", settled.Quantity, rate.Decimal()),
		AccountName: settled.AccountName,
		Date:        today,
	})
	if err != nil {
		return settled, m, err
	}
	return settled, m.then(cm), nil
}

// DeleteDollar removes the lot id. Transactions created by its trades are kept.
func (c *Controller) DeleteDollar(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModuleDollarTransactions, func(s *State) {
		s.DollarTransactions = without(s.DollarTransactions, id, func(t DollarTransaction) string { return t.ID })
	})
}

// --- Personal dollar usage ---

// AddPersonalDollarUsage records dollars spent personally.
func (c *Controller) AddPersonalDollarUsage(ctx context.Context, u PersonalDollarUsage) (PersonalDollarUsage, Mutation, error) {
	if err := validatePersonalDollarUsage(u); err != nil {
		return PersonalDollarUsage{}, Mutation{}, err
	}
	u.ID, u.Date = c.stamp(u.Date)
	u.Rate = M(u.Rate.Decimal(), Taka)
	m := c.apply(ctx, ModulePersonalDollarUsage, func(s *State) { s.PersonalDollarUsage = prepend(u, s.PersonalDollarUsage) })
	return u, m, nil
}

// DeletePersonalDollarUsage removes the usage id.
func (c *Controller) DeletePersonalDollarUsage(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModulePersonalDollarUsage, func(s *State) {
		s.PersonalDollarUsage = without(s.PersonalDollarUsage, id, func(u PersonalDollarUsage) string { return u.ID })
	})
}

// --- Orders ---

// AddOrder records an order.
func (c *Controller) AddOrder(ctx context.Context, o Order) (Order, Mutation, error) {
	if err := validateOrder(o); err != nil {
		return Order{}, Mutation{}, err
	}
	o.ID, o.Date = c.stamp(o.Date)
	o.Amount = M(o.Amount.Decimal(), Taka)
	m := c.apply(ctx, ModuleOrders, func(s *State) { s.Orders = prepend(o, s.Orders) })
	return o, m, nil
}

// UpdateOrderStatus changes the status of order id.
func (c *Controller) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (Order, Mutation, error) {
	if !status.Valid() {
		return Order{}, Mutation{}, fmt.Errorf("%w: unknown order status %q", ErrInvalid, status)
	}
	var updated Order
	m, err := c.applyIf(ctx, ModuleOrders, func(s *State) error {
		i := slices.IndexFunc(s.Orders, func(o Order) bool { return o.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: order %q", ErrNotFound, id)
		}
		updated = s.Orders[i]
		updated.Status = status
		s.Orders = replace(s.Orders, updated, func(o Order) string { return o.ID })
		return nil
	})
	if err != nil {
		return Order{}, Mutation{}, err
	}
	return updated, m, nil
}

// DeleteOrder removes the order id.
func (c *Controller) DeleteOrder(ctx context.Context, id string) Mutation {
	return c.apply(ctx, ModuleOrders, func(s *State) {
		s.Orders = without(s.Orders, id, func(o Order) string { return o.ID })
	})
}

// replace returns a new list where the record with x's id is x.
func replace[T any](list []T, x T, idOf func(T) string) []T {
	res := make([]T, len(list))
	for i, y := range list {
		if idOf(y) == idOf(x) {
			y = x
		}
		res[i] = y
	}
	return res
}
