package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/cockroachdb/errors"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the book with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `zen query <jsonpath>

  Evaluates a JSONPath expression against the whole book and prints the result
  as JSON. The book is {"business": {...}, "customers": [...], "invoices": [...]}
  using the same keys as the stored records.

Usage Examples:
$ zen query '$.business.nextInvoiceNo'
$ zen query '$.invoices[?(@.customerName == "Acme Traders")].number'
$ zen query '$.invoices[*].total'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	out, err := query(s.book.Snapshot(), f.Arg(0))
	if err != nil {
		return fail(err)
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// query evaluates expr against the JSON form of v and returns the indented
// JSON result.
func query(v any, expr string) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	result, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "query %q", expr)
	}
	return json.MarshalIndent(result, "", "  ")
}
