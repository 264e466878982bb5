package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/housefax/marketdata/cmd"
)

func main() {
	// Shell completion: a no-op unless invoked by the shell's completion
	// machinery.
	complete.Complete("hfm", &complete.Command{
		Sub: map[string]*complete.Command{
			"fetch":   {},
			"lookup":  {Args: predict.Something},
			"regions": {Flags: map[string]complete.Predictor{"state": predict.Something}},
			"source":  {Args: predict.Set{"bulk", "ondemand", "sample", "default"}},
			"cache":   {Args: predict.Set{"clear"}},
			"assist":  {},
		},
	})

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
