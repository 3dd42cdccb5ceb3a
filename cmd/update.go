package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundval"
	"github.com/etnz/fundval/analizy"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "download the quotation history of every configured fund" }
func (*updateCmd) Usage() string {
	return `fundq update

  Downloads the full quotation history of every fund URL listed in the
  configuration and stores it in the quotation directory, one JSON file per
  fund. Responses are cached for a day.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(cfg.FundURLs) == 0 {
		fmt.Fprintln(os.Stderr, "no fund URLs configured in FundsToCheckURLs")
		return subcommands.ExitFailure
	}

	market, err := analizy.FetchAll(analizy.Client(), cfg.FundURLs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := fundval.EncodeMarket(cfg.QuotationDir, market); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Updated %d funds into %s\n", market.Len(), cfg.QuotationDir)
	return subcommands.ExitSuccess
}
