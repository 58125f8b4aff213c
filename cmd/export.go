package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
)

type printCmd struct {
	output string
}

func (*printCmd) Name() string     { return "print" }
func (*printCmd) Synopsis() string { return "export an invoice as a printable HTML page" }
func (*printCmd) Usage() string {
	return `zen print [-o <file>] <number|id>

  Writes the invoice as a standalone HTML page, ready to be printed from a
  browser. The default file is Invoice-<number>.html, "-o -" writes to the
  standard output.
`
}

func (c *printCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, '-' for the standard output.")
}

func (c *printCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: print takes exactly one invoice number or id.")
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

	var buf bytes.Buffer
	if err := renderer.PrintHTML(&buf, renderer.NewDocument(s.book.Profile(), inv, s.money)); err != nil {
		return fail(err)
	}
	if c.output == "-" {
		os.Stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	name := c.output
	if name == "" {
		name = renderer.HTMLFileName(inv.Number)
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("Invoice %s written to %s\n", inv.Number, name)
	return subcommands.ExitSuccess
}

type pdfCmd struct {
	dir string
}

func (*pdfCmd) Name() string     { return "pdf" }
func (*pdfCmd) Synopsis() string { return "export an invoice as a PDF file" }
func (*pdfCmd) Usage() string {
	return `zen pdf [-dir <folder>] <number|id>

  Writes the invoice as Invoice-<number>.pdf. Nothing is written if the
  document cannot be produced.
`
}

func (c *pdfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", ".", "Folder to write the PDF file into.")
}

func (c *pdfCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: pdf takes exactly one invoice number or id.")
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

	var buf bytes.Buffer
	err = renderer.PDF(&buf, renderer.NewDocument(s.book.Profile(), inv, s.money), renderer.A4)
	if zenvoice.IsExportUnavailable(err) {
		fmt.Fprintf(os.Stderr, "PDF export is not available: %v\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}
	name := filepath.Join(c.dir, renderer.PDFFileName(inv.Number))
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		return fail(err)
	}
	fmt.Printf("Invoice %s written to %s\n", inv.Number, name)
	return subcommands.ExitSuccess
}
