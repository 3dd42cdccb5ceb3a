package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundval"
	"github.com/etnz/fundval/renderer"
	"github.com/google/subcommands"
)

type syntheticCmd struct {
	investment string
	fund       string
}

func (*syntheticCmd) Name() string { return "synthetic" }
func (*syntheticCmd) Synopsis() string {
	return "compute the synthetic, payment weighted, refund of an investment's funds"
}
func (*syntheticCmd) Usage() string {
	return `fundq synthetic -i <investment> [-f <fund>]

  Splits a fund's history into payment periods (one per purchase) and
  aggregates the per period refunds weighted by their duration, yielding a
  yearly refund estimate that is independent of the amounts paid in.
`
}

func (c *syntheticCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investment, "i", "", "investment name")
	f.StringVar(&c.fund, "f", "", "fund identifier (default: every fund of the investment)")
}

func (c *syntheticCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.investment == "" {
		fmt.Fprintln(os.Stderr, "missing -i <investment>")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	market, err := LoadMarket(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	wallet, err := LoadWallet(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	inv := wallet.Get(c.investment)
	if inv == nil {
		fmt.Fprintf(os.Stderr, "unknown investment %q\n", c.investment)
		return subcommands.ExitFailure
	}

	fundIDs := inv.FundIDs()
	if c.fund != "" {
		fundIDs = []string{c.fund}
	}
	for _, id := range fundIDs {
		analysis, err := fundval.NewSyntheticAnalysis(inv, market, id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.SyntheticMarkdown(analysis))
	}
	return subcommands.ExitSuccess
}
