package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
)

type sourceCmd struct{}

func (*sourceCmd) Name() string     { return "source" }
func (*sourceCmd) Synopsis() string { return "show or select the data source kind" }
func (*sourceCmd) Usage() string {
	return `hfm source [bulk|ondemand|sample|default]

Without argument, shows the configured source kind and the persisted user
selection if any. With a kind, persists that selection: it overrides the
deployment default on every later run. 'default' removes the selection.
`
}

func (*sourceCmd) SetFlags(_ *flag.FlagSet) {}

func (c *sourceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := marketdata.DefaultConfig()

	if f.NArg() == 0 {
		fmt.Printf("Configured source kind: %s\n", cfg.Kind)
		if kind, ok := registry.PreferredKind(); ok {
			fmt.Printf("Persisted selection:    %s (overrides the configured kind)\n", kind)
		}
		return subcommands.ExitSuccess
	}

	arg := f.Arg(0)
	if arg == "default" {
		if err := registry.ClearPreferredKind(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		registry.Clear()
		fmt.Println("Selection removed, the configured kind applies again.")
		return subcommands.ExitSuccess
	}

	kind, err := marketdata.ParseSourceKind(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := registry.SetPreferredKind(kind); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// Memoized providers belong to the previous selection.
	registry.Clear()
	fmt.Printf("Data source set to %s.\n", kind)
	return subcommands.ExitSuccess
}
