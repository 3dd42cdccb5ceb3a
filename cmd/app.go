// Package cmd implements the CLI application to track fund investments.
package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundval"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "quotations")
	c.Register(&fundsCmd{}, "quotations")
	c.Register(&exportCmd{}, "quotations")

	c.Register(&refundCmd{}, "investments")
	c.Register(&historyCmd{}, "investments")
	c.Register(&syntheticCmd{}, "investments")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "CONFIG.json", "Path to the configuration file")

// Config is the content of the configuration file:
//
//	{
//	  "HistoricalQuotationDirectoryName": "Output",
//	  "InvestmentsFilePath": "Investments.json",
//	  "FundsToCheckURLs": ["https://www.analizy.pl/..."]
//	}
type Config struct {
	QuotationDir    string   `json:"HistoricalQuotationDirectoryName"`
	InvestmentsFile string   `json:"InvestmentsFilePath"`
	FundURLs        []string `json:"FundsToCheckURLs"`
}

// LoadConfig reads the app configuration file.
func LoadConfig() (Config, error) {
	raw, err := os.ReadFile(*configFile)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration %q: %w", *configFile, err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration %q: %w", *configFile, err)
	}
	if cfg.QuotationDir == "" {
		cfg.QuotationDir = "Output"
	}
	if cfg.InvestmentsFile == "" {
		cfg.InvestmentsFile = "Investments.json"
	}
	return cfg, nil
}

// LoadMarket decodes the quotation histories stored in the quotation
// directory.
func LoadMarket(cfg Config) (*fundval.Market, error) {
	m, err := fundval.DecodeMarket(cfg.QuotationDir)
	if err != nil {
		return nil, err
	}
	if m.Len() == 0 {
		return nil, fmt.Errorf("no quotations in %q, run 'fundq update' first", cfg.QuotationDir)
	}
	return m, nil
}

// LoadWallet decodes the investment definitions.
func LoadWallet(cfg Config) (*fundval.Wallet, error) {
	return fundval.LoadInvestments(cfg.InvestmentsFile)
}

// Archive returns the ledger archive store, rooted in the quotation
// directory.
func Archive(cfg Config) fundval.ArchiveStore {
	return fundval.DirStore{Dir: cfg.QuotationDir}
}
