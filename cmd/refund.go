package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundval/renderer"
	"github.com/google/subcommands"
)

type refundCmd struct{}

func (*refundCmd) Name() string     { return "refund" }
func (*refundCmd) Synopsis() string { return "compute the refund analysis of every investment" }
func (*refundCmd) Usage() string {
	return `fundq refund

  Values every investment day by day, then prints per investment its profit,
  refund rate, daily rates and yearly projection, with a detail row per fund.

  Closed investments are read back from their archive when one is available,
  and are reported with the "(Arch.)" prefix.
`
}

func (c *refundCmd) SetFlags(f *flag.FlagSet) {}

func (c *refundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	rows, err := wallet.Results(market, Archive(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ResultsMarkdown(rows))
	return subcommands.ExitSuccess
}
