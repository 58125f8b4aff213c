package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/date"
	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
)

type invoicesCmd struct {
	period string
	on     string
	from   string
	to     string
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list invoices" }
func (*invoicesCmd) Usage() string {
	return `zen invoices [-period month|quarter|year [-d date]] [-from date] [-to date]

  Lists the saved invoices, in the order they were created.

  -period restricts the list to the month, quarter or year containing -d
  (today by default). -from and -to bound the list on either side and
  override the period bounds.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "only list invoices of this period: month, quarter or year")
	f.StringVar(&c.on, "d", "", "reference date for -period (defaults to today)")
	f.StringVar(&c.from, "from", "", "only list invoices dated on or after this date")
	f.StringVar(&c.to, "to", "", "only list invoices dated on or before this date")
}

func (c *invoicesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	r, err := c.dateRange(s.book.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.InvoicesMarkdown(s.book.InvoicesIn(r), s.money))
	return subcommands.ExitSuccess
}

// dateRange builds the listing range from the flags.
func (c *invoicesCmd) dateRange(today date.Date) (date.Range, error) {
	var r date.Range
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return r, err
		}
		on := today
		if c.on != "" {
			if on, err = date.Parse(c.on); err != nil {
				return r, err
			}
		}
		r = date.NewRange(on, p)
	}
	var err error
	if c.from != "" {
		if r.From, err = date.Parse(c.from); err != nil {
			return r, err
		}
	}
	if c.to != "" {
		if r.To, err = date.Parse(c.to); err != nil {
			return r, err
		}
	}
	return r, nil
}

type showInvoiceCmd struct{}

func (*showInvoiceCmd) Name() string     { return "show-invoice" }
func (*showInvoiceCmd) Synopsis() string { return "show an invoice" }
func (*showInvoiceCmd) Usage() string {
	return `zen show-invoice <number|id>

  Shows an invoice as it would be printed.
`
}

func (*showInvoiceCmd) SetFlags(f *flag.FlagSet) {}

func (*showInvoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show-invoice takes exactly one invoice number or id.")
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
	printMarkdown(renderer.InvoiceMarkdown(renderer.NewDocument(s.book.Profile(), inv, s.money)))
	return subcommands.ExitSuccess
}

type rmInvoiceCmd struct{}

func (*rmInvoiceCmd) Name() string     { return "rm-invoice" }
func (*rmInvoiceCmd) Synopsis() string { return "delete an invoice" }
func (*rmInvoiceCmd) Usage() string {
	return `zen rm-invoice <number|id>

  Deletes an invoice. The invoice sequence counter is not rewound.
`
}

func (*rmInvoiceCmd) SetFlags(f *flag.FlagSet) {}

func (*rmInvoiceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: rm-invoice takes exactly one invoice number or id.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	inv, ok := findInvoice(s.book, f.Arg(0))
	if !ok || !s.book.RemoveInvoice(ctx, inv.ID) {
		fmt.Fprintf(os.Stderr, "Error: no invoice %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted invoice %s\n", inv.Number)
	return subcommands.ExitSuccess
}

// findInvoice looks an invoice up by number, then by id.
func findInvoice(b *zenvoice.Book, ref string) (zenvoice.Invoice, bool) {
	if inv, ok := b.InvoiceByNumber(ref); ok {
		return inv, true
	}
	id, err := zenvoice.ParseID(ref)
	if err != nil {
		return zenvoice.Invoice{}, false
	}
	return b.Invoice(id)
}
