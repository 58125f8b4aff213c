package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// draftFlags are the invoice fields settable from the command line, shared by
// new-invoice and edit-invoice.
type draftFlags struct {
	customer string
	address  string
	date     string
	number   string
	tax      string
	items    itemList
}

func (d *draftFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&d.customer, "customer", "", "Customer name. The address of a known customer is filled in.")
	f.StringVar(&d.address, "address", "", "Customer address, overrides the known one. \"\\n\" starts a new line.")
	f.StringVar(&d.date, "date", "", "Invoice date (YYYY-MM-DD).")
	f.StringVar(&d.number, "number", "", "Invoice number, overrides the generated one.")
	f.StringVar(&d.tax, "tax", "", "Tax rate in percent.")
	f.Var(&d.items, "item", "Line item as \"description;qty;price\". Repeat for more items.")
}

// apply copies the flags that were set on the command line into the draft.
func (d *draftFlags) apply(f *flag.FlagSet, draft *zenvoice.Draft, customers []zenvoice.Customer) error {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["date"] {
		on, err := date.Parse(d.date)
		if err != nil {
			return err
		}
		draft.SetDate(on)
	}
	if set["number"] {
		draft.SetNumber(d.number)
	}
	if set["tax"] {
		rate, err := decimal.NewFromString(d.tax)
		if err != nil {
			return errors.Wrapf(err, "invalid tax rate %q", d.tax)
		}
		draft.SetTaxRate(rate)
	}
	if set["customer"] {
		draft.SetCustomer(d.customer, customers)
	}
	if set["address"] {
		draft.SetCustomerAddress(multiline(d.address))
	}
	return nil
}

type newInvoiceCmd struct {
	draftFlags
}

func (*newInvoiceCmd) Name() string     { return "new-invoice" }
func (*newInvoiceCmd) Synopsis() string { return "create an invoice" }
func (*newInvoiceCmd) Usage() string {
	return `zen new-invoice -customer <name> -item <description;qty;price>... [-address <address>] [-date <date>] [-number <number>] [-tax <rate>]

  Creates and saves an invoice. It is numbered from the business profile
  (e.g. INV-001), dated today and taxed at the default rate, unless told
  otherwise. Items without a description are kept but not billed. At least one
  described item and a customer are required.

  A customer unknown to the customer list is added to it.

Usage Examples:
$ zen new-invoice -customer "Acme Traders" -item "Consulting;3;150.50" -item "Travel;1;40"
`
}

func (c *newInvoiceCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *newInvoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: new-invoice takes no arguments, use flags.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	draft := s.book.NewDraft()
	if err := c.apply(f, draft, s.book.Customers()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.items.addTo(draft); err != nil {
		return fail(err)
	}
	inv, err := s.book.SaveInvoice(ctx, draft)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Saved invoice %s for %s, total %s\n", inv.Number, inv.CustomerName, s.money.Format(inv.Total))
	return subcommands.ExitSuccess
}

type editInvoiceCmd struct {
	draftFlags
	add    itemList
	remove idList
}

func (*editInvoiceCmd) Name() string     { return "edit-invoice" }
func (*editInvoiceCmd) Synopsis() string { return "modify an invoice" }
func (*editInvoiceCmd) Usage() string {
	return `zen edit-invoice [flags] <number|id>

  Loads a saved invoice, applies the changes and saves it again. Only the
  fields given on the command line change. -item replaces all the items,
  -add-item appends items and -rm-item removes an item by id. Editing never
  advances the invoice sequence counter.

  Item ids are listed by 'zen query "$.invoices[*].items"'.
`
}

func (c *editInvoiceCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Var(&c.add, "add-item", "Line item to append, as \"description;qty;price\". Repeat for more items.")
	f.Var(&c.remove, "rm-item", "Id of an item to remove. Repeat for more items.")
}

func (c *editInvoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit-invoice takes exactly one invoice number or id.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	inv, ok := findInvoice(s.book, f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no invoice %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	draft := s.book.EditDraft(inv)
	if err := c.apply(f, draft, s.book.Customers()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	for _, id := range c.remove {
		draft.RemoveItem(id)
	}
	if len(c.items) > 0 {
		for _, it := range draft.Invoice().Items {
			draft.RemoveItem(it.ID)
		}
		if err := c.items.addTo(draft); err != nil {
			return fail(err)
		}
	}
	if err := c.add.addTo(draft); err != nil {
		return fail(err)
	}

	saved, err := s.book.SaveInvoice(ctx, draft)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Saved invoice %s for %s, total %s\n", saved.Number, saved.CustomerName, s.money.Format(saved.Total))
	return subcommands.ExitSuccess
}
