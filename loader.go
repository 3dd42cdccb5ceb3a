package fundval

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// Investment definitions are kept in a single JSON file:
//
//	{
//	  "Retirement": {
//	    "StartDate": "2024-01-25",
//	    "EndDate": "2024-06-01",
//	    "Funds": {
//	      "ABC123": [
//	        {"BuyDate": "2024-01-25", "Money": 1000},
//	        {"BuyDate": "2024-02-25", "Money": 500}
//	      ]
//	    }
//	  }
//	}
//
// EndDate is optional: absent means the investment is still open.

// to parse the json, we use dedicated local structs with tag annotation.
type jinvestment struct {
	StartDate date.Date           `json:"StartDate"`
	EndDate   *date.Date          `json:"EndDate,omitempty"`
	Funds     map[string][]jorder `json:"Funds"`
}

type jorder struct {
	BuyDate date.Date       `json:"BuyDate"`
	Money   decimal.Decimal `json:"Money"`
}

// DecodeInvestments parses a wallet of investment definitions.
func DecodeInvestments(r io.Reader) (*Wallet, error) {
	var file map[string]jinvestment
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid investments file: %w", err)
	}

	investments := make([]*Investment, 0, len(file))
	for name, ji := range file {
		if len(ji.Funds) == 0 {
			return nil, fmt.Errorf("investment %q defines no funds", name)
		}
		orders := make(map[string][]PurchaseOrder, len(ji.Funds))
		for fundID, list := range ji.Funds {
			if len(list) == 0 {
				return nil, fmt.Errorf("investment %q: fund %q has no purchase orders", name, fundID)
			}
			for _, o := range list {
				if o.Money.IsNegative() {
					return nil, fmt.Errorf("investment %q: fund %q has a negative order on %s", name, fundID, o.BuyDate)
				}
				orders[fundID] = append(orders[fundID], PurchaseOrder{BuyDate: o.BuyDate, Money: o.Money})
			}
		}
		var end date.Date
		if ji.EndDate != nil {
			end = *ji.EndDate
		}
		investments = append(investments, NewInvestment(name, ji.StartDate, end, orders))
	}
	return NewWallet(investments...), nil
}

// LoadInvestments reads the investments file from disk.
func LoadInvestments(path string) (*Wallet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open investments file: %w", err)
	}
	defer f.Close()
	return DecodeInvestments(f)
}

// EncodeInvestments writes the wallet back in the investments file layout,
// the canonical formatting counterpart of DecodeInvestments.
func EncodeInvestments(w io.Writer, wallet *Wallet) error {
	file := make(map[string]jinvestment, wallet.Len())
	for inv := range wallet.Investments() {
		ji := jinvestment{
			StartDate: inv.StartDate(),
			Funds:     make(map[string][]jorder),
		}
		if inv.Closed() {
			end := inv.EndDate()
			ji.EndDate = &end
		}
		for _, fundID := range inv.FundIDs() {
			for _, o := range inv.Orders(fundID) {
				ji.Funds[fundID] = append(ji.Funds[fundID], jorder{BuyDate: o.BuyDate, Money: o.Money})
			}
		}
		file[inv.Name()] = ji
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}
