package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
	"github.com/housefax/marketdata/renderer"
)

type lookupCmd struct {
	raw bool
}

func (*lookupCmd) Name() string     { return "lookup" }
func (*lookupCmd) Synopsis() string { return "show home value and rent statistics for one region" }
func (*lookupCmd) Usage() string {
	return `hfm lookup <query>

Resolves a region query and prints its report. The query can be a zip code
("90210"), a "City, ST" name in any casing ("detroit, mi"), or a slug
("detroit-mi").
`
}

func (c *lookupCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it.")
}

func (c *lookupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing region query")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	stats, err := provider().Stats(ctx, query)
	if errors.Is(err, marketdata.ErrNotFound) {
		fmt.Printf("No region matches %q.\n", query)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach the data source: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.RenderRegion(renderer.NewRegionReport(stats))
	if c.raw {
		fmt.Println(md)
		return subcommands.ExitSuccess
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md) // degraded but readable
		return subcommands.ExitSuccess
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return subcommands.ExitSuccess
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
