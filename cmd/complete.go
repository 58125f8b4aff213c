package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the zen command: global
// flags, subcommands and their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	for _, e := range commands {
		f := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(f)
		root.Sub[e.cmd.Name()] = &complete.Command{Flags: flagPredictors(f)}
	}
	return root
}

// predictors of the flags whose value is a path.
var pathFlags = map[string]complete.Predictor{
	"config":   predict.Files("*.yaml"),
	"data-dir": predict.Dirs("*"),
	"dir":      predict.Dirs("*"),
	"o":        predict.Files("*.html"),
	"html":     predict.Files("*.html"),

	"frontmatter": predict.Files("*"),
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case pathFlags[fl.Name] != nil:
			flags[fl.Name] = pathFlags[fl.Name]
		case isBoolFlag(fl):
			flags[fl.Name] = predict.Nothing
		case fl.Name == "backend":
			flags[fl.Name] = predict.Set{"dir", "memory", "redis"}
		case fl.Name == "period":
			flags[fl.Name] = predict.Set{"month", "quarter", "year"}
		default:
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}

func isBoolFlag(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
