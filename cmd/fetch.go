package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "load the whole dataset from the data source" }
func (*fetchCmd) Usage() string {
	return `hfm fetch

Downloads, parses and merges the home-value and rental index files, builds
the lookup index and persists the parsed dataset in the durable cache.
Later runs load from the cache and skip the network entirely.

With an on-demand data source there is nothing to pre-load and this command
is a no-op.
`
}

func (*fetchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bulk, ok := provider().(marketdata.BulkLoader)
	if !ok {
		fmt.Println("The current data source loads on demand. Nothing to fetch.")
		return subcommands.ExitSuccess
	}

	done := make(chan error, 1)
	go func() { done <- bulk.AwaitReady(ctx) }()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if err != nil {
				fmt.Fprintf(os.Stderr, "\rError: load failed: %v\n", err)
				return subcommands.ExitFailure
			}
			records, err := bulk.All(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\rError: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("\r100%% done: %d regions ready.           \n", len(records))
			return subcommands.ExitSuccess
		case <-ticker.C:
			p := bulk.Progress()
			fmt.Printf("\r%3.0f%% %-40s", p.Percent, p.Message)
		}
	}
}
