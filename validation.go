package hisab

import (
	"fmt"
	"slices"
	"strings"
)

// Validation covers what the input forms enforce: required fields and sane numbers.

func validateTransaction(t Transaction) error {
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("%w: transaction type must be %s or %s, got %q", ErrInvalid, Income, Expense, t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction amount must not be negative, got %s", ErrInvalid, t.Amount)
	}
	return nil
}

func validateAccount(a Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalid)
	}
	if !slices.Contains(AccountTypes, a.Type) {
		return fmt.Errorf("%w: unknown account type %q", ErrInvalid, a.Type)
	}
	return nil
}

func validateVaultItem(v VaultItem) error {
	if strings.TrimSpace(v.SiteName) == "" {
		return fmt.Errorf("%w: site name is required", ErrInvalid)
	}
	return nil
}

func validateDollarTransaction(t DollarTransaction) error {
	if !t.BuyRate.IsPositive() {
		return fmt.Errorf("%w: buy rate must be positive, got %s", ErrInvalid, t.BuyRate.Decimal())
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalid, t.Quantity)
	}
	return nil
}

func validatePersonalDollarUsage(u PersonalDollarUsage) error {
	if !u.Amount.IsPositive() {
		return fmt.Errorf("%w: dollar amount must be positive, got %s", ErrInvalid, u.Amount)
	}
	if u.Rate.IsNegative() {
		return fmt.Errorf("%w: rate must not be negative, got %s", ErrInvalid, u.Rate.Decimal())
	}
	return nil
}

func validateOrder(o Order) error {
	if !o.Status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalid, o.Status)
	}
	if o.Amount.IsNegative() {
		return fmt.Errorf("%w: order amount must not be negative, got %s", ErrInvalid, o.Amount)
	}
	return nil
}
