// Package cmd implements the zen command line application to manage invoices.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/config"
	"github.com/etnz/zenvoice/kv"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to a configuration file. Defaults to zenvoice.yaml in the current folder or in $HOME/.config/zenvoice.")
	dataDir    = flag.String("data-dir", "", "Folder of the book when the storage backend is 'dir'. Overrides the configuration.")
	backend    = flag.String("backend", "", "Storage backend (dir, memory, redis). Overrides the configuration.")
	Verbose    = flag.Bool("v", false, "Verbose logging on stderr.")
)

// EnvTestingNow freezes the clock of the application, in the "2006-01-02 15:04:05" format.
// It is only meant to get stable ids and dates in tests.
const EnvTestingNow = "ZEN_TESTING_NOW"

// commands lists the subcommands with their group.
var commands = []struct {
	cmd   subcommands.Command
	group string
}{
	{&settingsCmd{}, "settings"},
	{&clearCmd{}, "settings"},

	{&customersCmd{}, "customers"},
	{&addCustomerCmd{}, "customers"},
	{&rmCustomerCmd{}, "customers"},

	{&invoicesCmd{}, "invoices"},
	{&newInvoiceCmd{}, "invoices"},
	{&editInvoiceCmd{}, "invoices"},
	{&showInvoiceCmd{}, "invoices"},
	{&rmInvoiceCmd{}, "invoices"},

	{&printCmd{}, "export"},
	{&pdfCmd{}, "export"},
	{&publishCmd{}, "export"},

	{&dashboardCmd{}, "reports"},
	{&queryCmd{}, "reports"},

	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// session is everything a subcommand needs to work on the book.
type session struct {
	book   *zenvoice.Book
	money  zenvoice.Formatter
	log    *zap.Logger
	closer func() error
}

// openSession loads the configuration and opens the book it points to.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(*configFile, map[string]any{
		"storage.dir":     *dataDir,
		"storage.backend": *backend,
	})
	if err != nil {
		return nil, err
	}
	log, err := cfg.Logger(os.Stderr, *Verbose)
	if err != nil {
		return nil, err
	}
	money, err := cfg.Formatter()
	if err != nil {
		return nil, err
	}
	store, closer, err := cfg.Store(ctx)
	if err != nil {
		return nil, err
	}

	opts := []zenvoice.Option{
		zenvoice.WithLogger(log),
		zenvoice.WithDefaultTaxRate(cfg.DefaultTaxRate()),
	}
	if now, ok, err := testingNow(); err != nil {
		closer()
		return nil, err
	} else if ok {
		opts = append(opts, zenvoice.WithClock(func() time.Time { return now }))
	}

	log.Debug("opening book", zap.String("backend", cfg.Storage.Backend), zap.String("dir", cfg.Storage.Dir))
	book := zenvoice.OpenBook(ctx, kv.NewAdapter(store, log), opts...)
	return &session{book: book, money: money, log: log, closer: closer}, nil
}

// Close releases the storage and flushes the logs.
func (s *session) Close() {
	if err := s.closer(); err != nil {
		s.log.Warn("closing storage", zap.Error(err))
	}
	_ = s.log.Sync()
}

func testingNow() (time.Time, bool, error) {
	v := os.Getenv(EnvTestingNow)
	if v == "" {
		return time.Time{}, false, nil
	}
	now, err := time.Parse(time.DateTime, v)
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "invalid %s", EnvTestingNow)
	}
	return now, true, nil
}

// printMarkdown renders md for the terminal, or prints it as is when the
// output is not a terminal.
func printMarkdown(md string) {
	if !isTerminal(os.Stdout) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// fail reports err on stderr, validation errors are reported by their hint.
func fail(err error) subcommands.ExitStatus {
	if zenvoice.IsValidation(err) {
		fmt.Fprintln(os.Stderr, zenvoice.Hint(err))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}
