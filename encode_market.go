package fundval

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// This file contains code to persist quotation histories in a folder, one
// JSON file per fund, in a way that is still human-readable and git-friendly.
// The layout mirrors the quotation feed response so that a freshly fetched
// history and a reloaded one are indistinguishable.

const marketFileGlob = "FQ_*.json"

// marketFile is the on-disk representation of one fund's history.
type marketFile struct {
	FundID   string       `json:"FundID"`
	FundName string       `json:"FundName,omitempty"`
	Currency string       `json:"Currency"`
	Price    []pricePoint `json:"Price"`
}

type pricePoint struct {
	Date  date.Date       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

func marketFileName(fundID string) string { return fmt.Sprintf("FQ_%s.json", fundID) }

// DecodeMarket reads all fund quotation files from a directory.
func DecodeMarket(dir string) (*Market, error) {
	filenames, err := filepath.Glob(filepath.Join(dir, marketFileGlob))
	if err != nil {
		return nil, fmt.Errorf("cannot scan market directory %q: %w", dir, err)
	}

	m := NewMarket()
	for _, filename := range filenames {
		raw, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", filename, err)
		}
		var mf marketFile
		if err := json.Unmarshal(raw, &mf); err != nil {
			return nil, fmt.Errorf("format error in %q: %w", filename, err)
		}
		if mf.FundID == "" {
			return nil, fmt.Errorf("format error in %q: missing FundID", filename)
		}
		if m.Has(mf.FundID) {
			log.Printf("warning: fund %q is defined twice, keeping %q", mf.FundID, filename)
		}
		f := NewFund(mf.FundID, mf.FundName, mf.Currency)
		for _, p := range mf.Price {
			f.Append(p.Date, p.Value)
		}
		m.Add(f)
	}
	return m, nil
}

// EncodeMarket writes every fund's quotation history into the directory,
// creating it if needed. Existing files for the same funds are overwritten;
// files of funds no longer tracked are left alone.
func EncodeMarket(dir string, m *Market) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create market directory %q: %w", dir, err)
	}
	for f := range m.Funds() {
		mf := marketFile{
			FundID:   f.ID(),
			FundName: f.Name(),
			Currency: f.Currency(),
			Price:    make([]pricePoint, 0, f.Len()),
		}
		for on, value := range f.Quotations() {
			mf.Price = append(mf.Price, pricePoint{Date: on, Value: value})
		}
		raw, err := json.MarshalIndent(mf, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode fund %q: %w", f.ID(), err)
		}
		filename := filepath.Join(dir, marketFileName(f.ID()))
		if err := os.WriteFile(filename, raw, 0644); err != nil {
			return fmt.Errorf("cannot write %q: %w", filename, err)
		}
	}
	return nil
}
