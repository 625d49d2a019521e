package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/hisab"
	"github.com/etnz/hisab/renderer"
	"github.com/google/subcommands"
)

type ordersCmd struct {
	status string
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list shop orders" }
func (*ordersCmd) Usage() string {
	return `hisab orders [-status <status>]

  Lists the orders, newest first, and the completed sales.
`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "Show only the orders with this status.")
}

func (c *ordersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var status hisab.OrderStatus
	if c.status != "" {
		st, err := hisab.ParseOrderStatus(c.status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		status = st
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	orders := s.State().Orders
	if status != "" {
		var res []hisab.Order
		for _, o := range orders {
			if o.Status == status {
				res = append(res, o)
			}
		}
		orders = res
	}
	md := renderer.OrdersMarkdown(orders)
	md += fmt.Sprintf("\nCompleted sales: %s\n", hisab.CompletedOrderSales(orders))
	printMarkdown(md)
	return subcommands.ExitSuccess
}

type addOrderCmd struct {
	number   string
	customer string
	amount   string
	status   string
	note     string
	date     string
}

func (*addOrderCmd) Name() string     { return "add-order" }
func (*addOrderCmd) Synopsis() string { return "record a shop order" }
func (*addOrderCmd) Usage() string {
	return `hisab add-order -number <number> -customer <name> -amount <taka> [-status <status>] [-note <note>] [-d <date>]

  Records an order, "Pending payment" by default.
`
}

func (c *addOrderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "number", "", "Order number.")
	f.StringVar(&c.customer, "customer", "", "Customer name.")
	f.StringVar(&c.amount, "amount", "", "Amount in Taka.")
	f.StringVar(&c.status, "status", string(hisab.OrderPending), "Status of the order.")
	f.StringVar(&c.note, "note", "", "Free text note.")
	f.StringVar(&c.date, "d", "", "Date of the order.")
}

func (c *addOrderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	status, err := hisab.ParseOrderStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	o, m, err := s.AddOrder(ctx, hisab.Order{
		OrderNumber:  c.number,
		CustomerName: c.customer,
		Amount:       amount,
		Status:       status,
		Note:         c.note,
		Date:         on,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Printf("Order %s of %s for %s is %s (%s, %s)\n", o.OrderNumber, o.CustomerName, o.Amount, o.Status, o.Date, o.ID)
	return subcommands.ExitSuccess
}

type orderStatusCmd struct {
	status string
}

func (*orderStatusCmd) Name() string     { return "order-status" }
func (*orderStatusCmd) Synopsis() string { return "change the status of an order" }
func (*orderStatusCmd) Usage() string {
	return `hisab order-status -status <status> <id>

  Changes the status of an order. Any status can follow any other.
`
}

func (c *orderStatusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "New status of the order.")
}

func (c *orderStatusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one order id is required.")
		return subcommands.ExitUsageError
	}
	status, err := hisab.ParseOrderStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	o, m, err := s.UpdateOrderStatus(ctx, f.Arg(0), status)
	switch {
	case errors.Is(err, hisab.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: no order with id %q.\n", f.Arg(0))
		return subcommands.ExitFailure
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.wait(ctx, m)
	fmt.Printf("Order %s is %s\n", o.OrderNumber, o.Status)
	return subcommands.ExitSuccess
}
