// Command migrate moves a zen book between storage backends and upgrades
// records written by older versions to the current format.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/config"
	"github.com/etnz/zenvoice/kv"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

var keys = []string{zenvoice.KeyBusiness, zenvoice.KeyCustomers, zenvoice.KeyInvoices}

func main() {
	// The migrate tool needs its own set of flags, independent of the main zen tool.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	commander := subcommands.NewCommander(flag.CommandLine, "migrate")
	commander.Register(&copyCmd{}, "")
	commander.Register(&upgradeCmd{}, "")
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// --- copyCmd ---

type copyCmd struct {
	from  string
	to    string
	force bool
}

func (*copyCmd) Name() string     { return "copy" }
func (*copyCmd) Synopsis() string { return "copies a book from one storage backend to another" }
func (*copyCmd) Usage() string {
	return `migrate copy -from <config.yaml> -to <config.yaml> [-force]

Copies the business profile, customers and invoices records as they are, from
the storage described by one configuration file to the storage described by
the other. The destination must be empty unless -force is given.
`
}

func (c *copyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Configuration file of the source book.")
	f.StringVar(&c.to, "to", "", "Configuration file of the destination book.")
	f.BoolVar(&c.force, "force", false, "Overwrite a destination book.")
}

func (c *copyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -from and -to are required.")
		return subcommands.ExitUsageError
	}
	if c.from == c.to {
		fmt.Fprintln(os.Stderr, "Error: -from and -to must be different configurations.")
		return subcommands.ExitUsageError
	}

	from, closeFrom, err := openStore(ctx, c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFrom()
	to, closeTo, err := openStore(ctx, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening destination: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeTo()

	if !c.force {
		empty, err := kv.Empty(ctx, to, keys...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading destination: %v\n", err)
			return subcommands.ExitFailure
		}
		if !empty {
			fmt.Fprintln(os.Stderr, "Error: the destination already holds a book, use -force to overwrite it.")
			return subcommands.ExitFailure
		}
	}

	n, err := kv.Copy(ctx, from, to, keys...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Copied %d records.\n", n)
	return subcommands.ExitSuccess
}

func openStore(ctx context.Context, file string) (kv.Store, func() error, error) {
	cfg, err := config.Load(file, nil)
	if err != nil {
		return nil, nil, err
	}
	return cfg.Store(ctx)
}

// --- upgradeCmd ---

type upgradeCmd struct {
	config  string
	verbose bool
	force   bool
}

func (*upgradeCmd) Name() string     { return "upgrade" }
func (*upgradeCmd) Synopsis() string { return "rewrites a book in the current format" }
func (*upgradeCmd) Usage() string {
	return `migrate upgrade [-config <config.yaml>] [-v] [-force]

Reads the book and writes it back. Legacy keys ("gstin", "gstRate", "gst") and
numeric quantities or prices are converted to the current format.

Nothing is written when a record cannot be read, so it can still be repaired
by hand. -force replaces such records by their default value.
`
}

func (c *upgradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "", "Configuration file of the book.")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging.")
	f.BoolVar(&c.force, "force", false, "Replace unreadable records by their default value.")
}

func (c *upgradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(c.config, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log, err := cfg.Logger(os.Stderr, c.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer log.Sync()
	store, closer, err := cfg.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()

	book, err := upgrade(ctx, kv.NewAdapter(store, log), log, c.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, h := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, h)
		}
		return subcommands.ExitFailure
	}
	log.Info("book upgraded",
		zap.Int("customers", len(book.Customers())),
		zap.Int("invoices", len(book.Invoices())),
	)
	fmt.Printf("Upgraded %d customers and %d invoices.\n", len(book.Customers()), len(book.Invoices()))
	return subcommands.ExitSuccess
}

// upgrade rewrites the three records of the book in a. It refuses to write
// over records that could not be read, unless force is set.
func upgrade(ctx context.Context, a *kv.Adapter, log *zap.Logger, force bool) (*zenvoice.Book, error) {
	book := zenvoice.OpenBook(ctx, a, zenvoice.WithLogger(log))
	if failed := a.ReadFailures(); len(failed) > 0 && !force {
		return nil, errors.WithHint(
			errors.Newf("cannot read %s, nothing written", strings.Join(failed, ", ")),
			"repair the records, or run with -force to replace them by their default value",
		)
	}
	book.Flush(ctx)
	return book, nil
}
