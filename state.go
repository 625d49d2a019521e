package hisab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Module names a collection of the State, as used by the remote store.
type Module string

const (
	ModuleTransactions        Module = "transactions"
	ModuleVault               Module = "vault"
	ModuleDollarTransactions  Module = "dollarTransactions"
	ModulePersonalDollarUsage Module = "personalDollarUsage"
	ModuleOrders              Module = "orders"
	ModuleAccounts            Module = "accounts"
)

// Modules lists the six collections of a State.
var Modules = []Module{ModuleTransactions, ModuleVault, ModuleDollarTransactions, ModulePersonalDollarUsage, ModuleOrders, ModuleAccounts}

// ParseModule returns the module named s.
func ParseModule(s string) (Module, error) {
	m := Module(s)
	if !slices.Contains(Modules, m) {
		return "", fmt.Errorf("%w %q", ErrUnknownModule, s)
	}
	return m, nil
}

// State is the whole application data: six independent collections.
//
// Collections are ordered newest first, except accounts that keep their creation order.
type State struct {
	Transactions        []Transaction         `json:"transactions"`
	Vault               []VaultItem           `json:"vault"`
	DollarTransactions  []DollarTransaction   `json:"dollarTransactions"`
	PersonalDollarUsage []PersonalDollarUsage `json:"personalDollarUsage"`
	Orders              []Order               `json:"orders"`
	Accounts            []Account             `json:"accounts"`
}

// NewState returns a State with all collections empty.
func NewState() State {
	var s State
	s.Normalize()
	return s
}

// Normalize replaces nil collections by empty ones, so that they encode as [].
func (s *State) Normalize() {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Vault == nil {
		s.Vault = []VaultItem{}
	}
	if s.DollarTransactions == nil {
		s.DollarTransactions = []DollarTransaction{}
	}
	if s.PersonalDollarUsage == nil {
		s.PersonalDollarUsage = []PersonalDollarUsage{}
	}
	if s.Orders == nil {
		s.Orders = []Order{}
	}
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
}

// Clone returns a copy of s that shares no collection with it.
func (s State) Clone() State {
	c := State{
		Transactions:        slices.Clone(s.Transactions),
		Vault:               slices.Clone(s.Vault),
		DollarTransactions:  slices.Clone(s.DollarTransactions),
		PersonalDollarUsage: slices.Clone(s.PersonalDollarUsage),
		Orders:              slices.Clone(s.Orders),
		Accounts:            slices.Clone(s.Accounts),
	}
	c.Normalize()
	return c
}

// Collection returns the collection of module m, it is the payload of a sync.
func (s State) Collection(m Module) any {
	switch m {
	case ModuleTransactions:
		return s.Transactions
	case ModuleVault:
		return s.Vault
	case ModuleDollarTransactions:
		return s.DollarTransactions
	case ModulePersonalDollarUsage:
		return s.PersonalDollarUsage
	case ModuleOrders:
		return s.Orders
	case ModuleAccounts:
		return s.Accounts
	}
	return nil
}

// SetRaw decodes a JSON array into the collection of module m.
// Values that are not arrays (null, objects, strings...) leave the collection empty.
func (s *State) SetRaw(m Module, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	isArray := len(trimmed) > 0 && trimmed[0] == '['
	var err error
	switch m {
	case ModuleTransactions:
		s.Transactions, err = decodeArray[Transaction](isArray, trimmed)
	case ModuleVault:
		s.Vault, err = decodeArray[VaultItem](isArray, trimmed)
	case ModuleDollarTransactions:
		s.DollarTransactions, err = decodeArray[DollarTransaction](isArray, trimmed)
	case ModulePersonalDollarUsage:
		s.PersonalDollarUsage, err = decodeArray[PersonalDollarUsage](isArray, trimmed)
	case ModuleOrders:
		s.Orders, err = decodeArray[Order](isArray, trimmed)
	case ModuleAccounts:
		s.Accounts, err = decodeArray[Account](isArray, trimmed)
	default:
		return fmt.Errorf("%w %q", ErrUnknownModule, m)
	}
	if err != nil {
		return fmt.Errorf("cannot decode %s: %w", m, err)
	}
	return nil
}

func decodeArray[T any](isArray bool, raw []byte) ([]T, error) {
	list := []T{}
	if !isArray {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	if list == nil { // "null" inside brackets cannot happen, but keep the invariant.
		list = []T{}
	}
	return list, nil
}

// DecodeState merges a JSON object over an empty State.
// Missing keys and non-array values give empty collections, unknown keys are ignored.
func DecodeState(data []byte) (State, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return State{}, fmt.Errorf("state is not a json object: %w", err)
	}
	s := NewState()
	for _, m := range Modules {
		raw, ok := obj[string(m)]
		if !ok {
			continue
		}
		if err := s.SetRaw(m, raw); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

// DefaultAccounts are the accounts offered on first use.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "1", Name: "bKash Personal", Type: MobileWallet, AccountNumber: "017XXXXXXXX", ProviderName: "bKash"},
		{ID: "2", Name: "Nagad Personal", Type: MobileWallet, AccountNumber: "019XXXXXXXX", ProviderName: "Nagad"},
		{ID: "3", Name: "My Bank", Type: Bank, AccountNumber: "123456789", ProviderName: "Brac Bank"},
		{ID: "4", Name: "Cash", Type: Cash, ProviderName: "Cash"},
	}
}
