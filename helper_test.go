package hisab

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/etnz/hisab/date"
)

// memorySyncer is an in-memory Syncer that records every persist call.
type memorySyncer struct {
	mu     sync.Mutex
	state  State
	calls  []Module
	reject map[Module]bool
}

func newMemorySyncer() *memorySyncer {
	return &memorySyncer{state: NewState(), reject: make(map[Module]bool)}
}

func (m *memorySyncer) FetchAll(context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *memorySyncer) Persist(_ context.Context, module Module, collection any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, module)
	if m.reject[module] {
		return false
	}
	switch c := collection.(type) {
	case []Transaction:
		m.state.Transactions = c
	case []VaultItem:
		m.state.Vault = c
	case []DollarTransaction:
		m.state.DollarTransactions = c
	case []PersonalDollarUsage:
		m.state.PersonalDollarUsage = c
	case []Order:
		m.state.Orders = c
	case []Account:
		m.state.Accounts = c
	}
	return true
}

func (m *memorySyncer) Calls() []Module {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Module(nil), m.calls...)
}

// newTestController returns a controller on a memory syncer, with a fixed clock and sequential ids.
func newTestController(t *testing.T) (*Controller, *memorySyncer) {
	t.Helper()
	syncer := newMemorySyncer()
	n := 0
	c := NewController(syncer,
		WithClock(func() date.Date { return date.New(2025, time.March, 10) }),
		WithIDs(func() string { n++; return fmt.Sprintf("id%d", n) }),
	)
	return c, syncer
}

// wait waits for every persist of m and fails the test if one was rejected.
func wait(t *testing.T, m Mutation) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ok, err := m.Wait(ctx)
	if err != nil {
		t.Fatalf("Mutation.Wait() failed: %v", err)
	}
	if !ok {
		t.Fatalf("Mutation.Wait() = false, want every persist accepted")
	}
}
