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

type fundsCmd struct{}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "display the latest known details of every fund" }
func (*fundsCmd) Usage() string {
	return `fundq funds

  Displays each fund's latest quotation with its one day change, derived
  from the stored quotation histories.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	infos := make([]fundval.FundInfo, 0, market.Len())
	for fund := range market.Funds() {
		infos = append(infos, fund.Info())
	}

	printMarkdown(renderer.FundsMarkdown(infos))
	return subcommands.ExitSuccess
}
