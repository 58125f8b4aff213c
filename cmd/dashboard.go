package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	html string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show total sales and the latest invoices" }
func (*dashboardCmd) Usage() string {
	return `zen dashboard [-html <file>]

  Shows the total of all invoices, their count and the 5 most recent ones.
  With -html, writes the dashboard as an HTML page instead.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Write the dashboard as HTML into that file.")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	md := renderer.DashboardMarkdown(s.book.Stats(), s.money)
	if c.html == "" {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}
	page, err := renderer.MarkdownToHTML(s.book.Profile().Name+" Dashboard", md)
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.html, page, 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("Dashboard written to %s\n", c.html)
	return subcommands.ExitSuccess
}
