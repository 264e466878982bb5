// Package cmd implements the CLI application to browse housing market data.
package cmd

import (
	"github.com/google/subcommands"

	"github.com/housefax/marketdata"
)

// Register the subcommands.
// A main package calls Register() to declare subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "data")
	c.Register(&lookupCmd{}, "data")
	c.Register(&regionsCmd{}, "data")

	c.Register(&sourceCmd{}, "configuration")
	c.Register(&cacheCmd{}, "configuration")

	c.Register(&assistCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so one shared
// registry is fine.
var registry = marketdata.NewRegistry()

// provider resolves the current data source. It never fails: an unusable
// configuration resolves to sample data.
func provider() marketdata.Provider {
	return registry.Provider(marketdata.DefaultConfig())
}
