// Command zen manages invoices, customers and the business profile of a
// small business book.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/zenvoice/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, otherwise does nothing.
	cmd.Completion().Complete("zen")

	commander := subcommands.NewCommander(flag.CommandLine, "zen")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands may be provided by a zen-<name> binary.
	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
