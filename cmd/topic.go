package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/zenvoice/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the documentation" }
func (*topicCmd) Usage() string {
	return `zen topic [-list] [<topic>...]

  Prints the documentation topics one after the other, '*' prints them all.
  Without a topic, prints the introduction. -list prints the topic names and
  titles only.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		if err := listTopics(os.Stdout); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	content, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(content)
	return subcommands.ExitSuccess
}

// listTopics writes one "name  title" line per topic.
func listTopics(w io.Writer) error {
	topics, err := docs.Topics()
	if err != nil {
		return err
	}
	for _, t := range topics {
		fmt.Fprintf(w, "%-10s %s\n", t.Name, t.Title)
	}
	return nil
}
