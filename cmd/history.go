package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundval"
	"github.com/google/subcommands"

	"github.com/etnz/fundval/renderer"
)

type historyCmd struct {
	investment string
	tail       int
	save       bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the day by day valuation of an investment" }
func (*historyCmd) Usage() string {
	return `fundq history -i <investment> [-n <rows>] [-save]

  Prints the valuation ledger of one investment, one row per priceable day,
  with per fund participation units, value, invested money and refund rate.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investment, "i", "", "investment name (default: all investments)")
	f.IntVar(&c.tail, "n", 10, "number of most recent rows to display, 0 for all")
	f.BoolVar(&c.save, "save", false, "write the ledger to the archive directory")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var investments []*fundval.Investment
	if c.investment != "" {
		inv := wallet.Get(c.investment)
		if inv == nil {
			fmt.Fprintf(os.Stderr, "unknown investment %q\n", c.investment)
			return subcommands.ExitFailure
		}
		investments = append(investments, inv)
	} else {
		for inv := range wallet.Investments() {
			investments = append(investments, inv)
		}
	}

	store := Archive(cfg)
	for _, inv := range investments {
		ledger, err := fundval.LedgerOf(inv, market, store)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.HistoryMarkdown(ledger, c.tail))
		if c.save {
			if err := store.Save(inv.Name(), ledger); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
			fmt.Printf("saved %q history to %s\n", inv.Name(), cfg.QuotationDir)
		}
	}
	return subcommands.ExitSuccess
}
