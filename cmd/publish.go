package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/date"
	"github.com/etnz/zenvoice/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// publishTask is one folder of the published tree.
type publishTask struct {
	Period   date.Range
	Name     string
	Invoices []zenvoice.Invoice
}

type publishCmd struct {
	outputDir      string
	period         string
	pdf            bool
	frontMatterTpl string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "export every invoice into a folder tree" }

func (*publishCmd) Usage() string {
	return `zen publish [-o <dir>] [-period month|quarter|year] [-pdf] [-frontmatter <file>]

  Writes every saved invoice as a printable HTML page, grouped in one folder
  per period (e.g. invoices/2025-08/Invoice-INV-001.html). Each folder also
  gets an index.md listing its invoices. Invoices without a date go to the
  "undated" folder.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "invoices", "Root directory for the published invoices")
	f.StringVar(&c.period, "period", "month", "Folder granularity: month, quarter or year")
	f.BoolVar(&c.pdf, "pdf", false, "Also write a PDF file next to each HTML page")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the index front matter")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	tasks := groupByPeriod(s.book.Invoices(), period)
	if len(tasks) == 0 {
		fmt.Println("No invoices to publish.")
		return subcommands.ExitSuccess
	}

	profile := s.book.Profile()
	written := 0
	for _, task := range tasks {
		dir := filepath.Join(c.outputDir, task.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
			return subcommands.ExitFailure
		}

		index := renderer.InvoicesMarkdown(task.Invoices, s.money)
		if frontMatterTpl != nil {
			fm, err := renderFrontMatter(frontMatterTpl, task)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", task.Name, err)
				continue
			}
			index = fm + "\n" + index
		}
		if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(index), 0644); err != nil {
			return fail(err)
		}

		stems := fileStems(task.Invoices)
		for i, inv := range task.Invoices {
			doc := renderer.NewDocument(profile, inv, s.money)
			var buf bytes.Buffer
			if err := renderer.PrintHTML(&buf, doc); err != nil {
				return fail(err)
			}
			if err := os.WriteFile(filepath.Join(dir, stems[i]+".html"), buf.Bytes(), 0644); err != nil {
				return fail(err)
			}
			if c.pdf {
				buf.Reset()
				if err := renderer.PDF(&buf, doc, renderer.A4); err != nil {
					s.log.Warn("skipping pdf", zap.String("invoice", inv.Number), zap.Error(err))
				} else if err := os.WriteFile(filepath.Join(dir, stems[i]+".pdf"), buf.Bytes(), 0644); err != nil {
					return fail(err)
				}
			}
			written++
		}
		s.log.Debug("published", zap.String("period", task.Name), zap.Int("invoices", len(task.Invoices)))
	}
	fmt.Printf("Published %d invoices in %d folders under %s\n", written, len(tasks), c.outputDir)
	return subcommands.ExitSuccess
}

// groupByPeriod splits invoices per period, in chronological order. Invoices
// keep their book order inside a period.
func groupByPeriod(invoices []zenvoice.Invoice, p date.Period) []publishTask {
	var tasks []publishTask
	index := make(map[string]int)
	for _, inv := range invoices {
		name, r := "undated", date.Range{}
		if !inv.Date.IsZero() {
			name, r = p.Identifier(inv.Date), date.NewRange(inv.Date, p)
		}
		i, ok := index[name]
		if !ok {
			i = len(tasks)
			index[name] = i
			tasks = append(tasks, publishTask{Period: r, Name: name})
		}
		tasks[i].Invoices = append(tasks[i].Invoices, inv)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].Period.From, tasks[j].Period.From
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
	return tasks
}

// fileStems names the files of invoices published in the same folder.
// Invoices sharing a number are told apart by their id.
func fileStems(invoices []zenvoice.Invoice) []string {
	stems := make([]string, len(invoices))
	used := make(map[string]bool)
	for i, inv := range invoices {
		stem := renderer.FileStem(inv.Number)
		if used[stem] {
			stem += "-" + inv.ID.String()
		}
		used[stem] = true
		stems[i] = stem
	}
	return stems
}

func renderFrontMatter(tpl *template.Template, task publishTask) (string, error) {
	var fmBuffer bytes.Buffer
	if err := tpl.Execute(&fmBuffer, task); err != nil {
		return "", err
	}
	return fmBuffer.String(), nil
}
