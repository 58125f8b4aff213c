package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	name    string
	address string
	taxID   string
	prefix  string
	next    int
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or update the business profile" }
func (*settingsCmd) Usage() string {
	return `zen settings [-name <name>] [-address <address>] [-tax-id <id>] [-prefix <prefix>] [-next <n>]

  Without flags, shows the business profile printed on every invoice.
  With flags, updates the given fields and saves the profile. In the address,
  "\n" starts a new line.

  -next sets the sequence counter: the next new invoice is numbered
  <prefix>-<next> (zero padded to 3 digits).
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Business name.")
	f.StringVar(&c.address, "address", "", "Business address.")
	f.StringVar(&c.taxID, "tax-id", "", "Tax identifier (GSTIN).")
	f.StringVar(&c.prefix, "prefix", "", "Invoice number prefix.")
	f.IntVar(&c.next, "next", 0, "Next invoice sequence number.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: settings takes no arguments.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	p := s.book.Profile()
	changed := false
	f.Visit(func(fl *flag.Flag) {
		changed = true
		switch fl.Name {
		case "name":
			p.Name = c.name
		case "address":
			p.Address = multiline(c.address)
		case "tax-id":
			p.TaxID = c.taxID
		case "prefix":
			p.InvoicePrefix = c.prefix
		case "next":
			p.NextInvoiceNo = c.next
		}
	})
	if changed {
		if err := s.book.UpdateProfile(ctx, p); err != nil {
			return fail(err)
		}
	}
	printMarkdown(renderer.SettingsMarkdown(s.book.Profile()))
	return subcommands.ExitSuccess
}

// multiline turns the "\n" escapes typed on the command line into new lines.
func multiline(s string) string { return strings.ReplaceAll(s, `\n`, "\n") }

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all invoices and customers" }
func (*clearCmd) Usage() string {
	return `zen clear -y

  Deletes every invoice and every customer. The business profile, and its
  invoice sequence counter, are kept. This cannot be undone, -y confirms it.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Confirm the deletion.")
}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "This deletes all invoices and customers. Run again with -y to confirm.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	s.book.ClearAll(ctx)
	fmt.Println("All invoices and customers deleted.")
	return subcommands.ExitSuccess
}
