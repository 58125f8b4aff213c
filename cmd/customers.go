package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
)

type customersCmd struct{}

func (*customersCmd) Name() string     { return "customers" }
func (*customersCmd) Synopsis() string { return "list customers" }
func (*customersCmd) Usage() string {
	return `zen customers

  Lists the customers, in the order they were added.
`
}

func (*customersCmd) SetFlags(f *flag.FlagSet) {}

func (*customersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	printMarkdown(renderer.CustomersMarkdown(s.book.Customers()))
	return subcommands.ExitSuccess
}

type addCustomerCmd struct {
	address string
}

func (*addCustomerCmd) Name() string     { return "add-customer" }
func (*addCustomerCmd) Synopsis() string { return "add a customer" }
func (*addCustomerCmd) Usage() string {
	return `zen add-customer [-address <address>] <name>

  Adds a customer. In the address, "\n" starts a new line.

Usage Examples:
$ zen add-customer -address "42 Market Road\nPune" "Acme Traders"
`
}

func (c *addCustomerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.address, "address", "", "Customer address.")
}

func (c *addCustomerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: add-customer takes a single name, quote it if it has spaces.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	customer, err := s.book.AddCustomer(ctx, f.Arg(0), multiline(c.address))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added customer %q (%s)\n", customer.Name, customer.ID)
	return subcommands.ExitSuccess
}

type rmCustomerCmd struct{}

func (*rmCustomerCmd) Name() string     { return "rm-customer" }
func (*rmCustomerCmd) Synopsis() string { return "remove a customer" }
func (*rmCustomerCmd) Usage() string {
	return `zen rm-customer <name|id>

  Removes a customer from the list. Invoices already issued to that customer
  are not changed.
`
}

func (*rmCustomerCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCustomerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: rm-customer takes exactly one customer name or id.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	c, ok := findCustomer(s.book, f.Arg(0))
	if !ok || !s.book.RemoveCustomer(ctx, c.ID) {
		fmt.Fprintf(os.Stderr, "Error: no customer %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed customer %q\n", c.Name)
	return subcommands.ExitSuccess
}

// findCustomer looks a customer up by name, then by id.
func findCustomer(b *zenvoice.Book, ref string) (zenvoice.Customer, bool) {
	if c, ok := b.Customer(ref); ok {
		return c, true
	}
	id, err := zenvoice.ParseID(ref)
	if err != nil {
		return zenvoice.Customer{}, false
	}
	for _, c := range b.Customers() {
		if c.ID == id {
			return c, true
		}
	}
	return zenvoice.Customer{}, false
}
