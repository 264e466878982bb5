package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
	"github.com/housefax/marketdata/cache"
)

type cacheCmd struct{}

func (*cacheCmd) Name() string     { return "cache" }
func (*cacheCmd) Synopsis() string { return "clear the durable dataset cache" }
func (*cacheCmd) Usage() string {
	return `hfm cache clear

Removes the persisted dataset of the current cache namespace. The next bulk
load will download and parse the index files again.
`
}

func (*cacheCmd) SetFlags(_ *flag.FlagSet) {}

func (c *cacheCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || f.Arg(0) != "clear" {
		fmt.Fprintln(os.Stderr, "Error: the only supported operation is 'clear'")
		return subcommands.ExitUsageError
	}

	cfg := marketdata.DefaultConfig()
	store, err := cache.Open(cfg.Namespace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	registry.Clear()
	fmt.Printf("Cache namespace %q cleared.\n", cfg.Namespace)
	return subcommands.ExitSuccess
}
