package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
)

type regionsCmd struct {
	state string
}

func (*regionsCmd) Name() string     { return "regions" }
func (*regionsCmd) Synopsis() string { return "list every region the data source covers" }
func (*regionsCmd) Usage() string {
	return `hfm regions [-state ST]

Lists the distinct regions of the loaded dataset with their latest figures.
Only available with a bulk data source: an on-demand source has no listing.
`
}

func (c *regionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.state, "state", "", "Only list regions in this state.")
}

func (c *regionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bulk, ok := provider().(marketdata.BulkLoader)
	if !ok {
		fmt.Println("The current data source fetches regions on demand and has no listing.")
		return subcommands.ExitSuccess
	}

	records, err := bulk.All(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREGION\tZIP\tVALUE\tCHANGE\tRENT")
	n := 0
	for _, rec := range records {
		if c.state != "" && !strings.EqualFold(rec.State, c.state) {
			continue
		}
		n++
		rent := "-"
		if rec.Rents != nil {
			rent = rec.CurrentRentPrice().String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Name, rec.ZipCode, rec.CurrentPrice(), rec.ValueChange.SignedString(), rent)
	}
	w.Flush()
	fmt.Printf("%d regions.\n", n)
	return subcommands.ExitSuccess
}
