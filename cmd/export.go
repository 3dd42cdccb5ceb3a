package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fundval"
	"github.com/google/subcommands"
)

type exportCmd struct {
	fund   string
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a fund's quotation history" }
func (*exportCmd) Usage() string {
	return `fundq export -f <fund> [-format csv|json] [-o <file>]

  Writes the full quotation history of one fund, either as a tab separated
  CSV or as the JSON layout used by the quotation store.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "fund identifier")
	f.StringVar(&c.format, "format", "csv", "output format, csv or json")
	f.StringVar(&c.output, "o", "", "output file (default: stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
		fmt.Fprintln(os.Stderr, "missing -f <fund>")
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
	fund, err := market.Fund(c.fund)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	switch c.format {
	case "csv":
		err = fundval.ExportQuotationCSV(w, fund)
	case "json":
		err = fundval.ExportQuotationJSON(w, fund)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q, want csv or json\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
