package fundval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

const investmentsJSON = `{
  "Retirement": {
    "StartDate": "2024-01-25",
    "Funds": {
      "ABC123": [
        {"BuyDate": "2024-01-25", "Money": 1000},
        {"BuyDate": "2024-02-25", "Money": 500}
      ]
    }
  },
  "College": {
    "StartDate": "2023-01-01",
    "EndDate": "2023-12-31",
    "Funds": {
      "XYZ9": [{"BuyDate": "2023-01-01", "Money": 2000}]
    }
  }
}`

func TestDecodeInvestments(t *testing.T) {
	wallet, err := DecodeInvestments(strings.NewReader(investmentsJSON))
	if err != nil {
		t.Fatal(err)
	}
	if wallet.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", wallet.Len())
	}

	retirement := wallet.Get("Retirement")
	if retirement == nil {
		t.Fatal("Get(Retirement) = nil")
	}
	if retirement.Closed() {
		t.Error("Retirement has no EndDate, want open")
	}
	orders := retirement.Orders("ABC123")
	if len(orders) != 2 {
		t.Fatalf("Orders(ABC123) = %d, want 2", len(orders))
	}
	if orders[0].BuyDate != date.MustParse("2024-01-25") || !orders[0].Money.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("first order = %+v, want 1000 on 2024-01-25", orders[0])
	}

	college := wallet.Get("College")
	if college == nil {
		t.Fatal("Get(College) = nil")
	}
	if !college.Closed() || college.EndDate() != date.MustParse("2023-12-31") {
		t.Errorf("College end = %s (closed %v), want closed on 2023-12-31", college.EndDate(), college.Closed())
	}
}

func TestDecodeInvestments_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		json string
	}{
		{
			name: "no funds",
			json: `{"Empty": {"StartDate": "2024-01-01", "Funds": {}}}`,
		},
		{
			name: "fund without orders",
			json: `{"Empty": {"StartDate": "2024-01-01", "Funds": {"ABC": []}}}`,
		},
		{
			name: "negative order",
			json: `{"Bad": {"StartDate": "2024-01-01", "Funds": {"ABC": [{"BuyDate": "2024-01-01", "Money": -5}]}}}`,
		},
		{
			name: "unknown field",
			json: `{"Bad": {"StartDate": "2024-01-01", "Typo": true, "Funds": {"ABC": [{"BuyDate": "2024-01-01", "Money": 5}]}}}`,
		},
		{
			name: "not json",
			json: `o hai`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeInvestments(strings.NewReader(tc.json)); err == nil {
				t.Error("DecodeInvestments() = nil error, want a failure")
			}
		})
	}
}

func TestEncodeInvestments_RoundTrip(t *testing.T) {
	wallet, err := DecodeInvestments(strings.NewReader(investmentsJSON))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeInvestments(&buf, wallet); err != nil {
		t.Fatal(err)
	}
	again, err := DecodeInvestments(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if again.Len() != wallet.Len() {
		t.Fatalf("Len() = %d, want %d", again.Len(), wallet.Len())
	}
	for inv := range wallet.Investments() {
		other := again.Get(inv.Name())
		if other == nil {
			t.Fatalf("investment %q lost in round trip", inv.Name())
		}
		if other.StartDate() != inv.StartDate() || other.EndDate() != inv.EndDate() {
			t.Errorf("%q dates = %s..%s, want %s..%s", inv.Name(), other.StartDate(), other.EndDate(), inv.StartDate(), inv.EndDate())
		}
		for _, id := range inv.FundIDs() {
			if len(other.Orders(id)) != len(inv.Orders(id)) {
				t.Errorf("%q fund %q: %d orders, want %d", inv.Name(), id, len(other.Orders(id)), len(inv.Orders(id)))
			}
		}
	}
}

func TestWallet_Results(t *testing.T) {
	market := singleFundMarket()
	open := NewInvestment("open", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
	})
	closed := NewInvestment("closed", date.MustParse("2024-01-01"), date.MustParse("2024-01-03"), map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(500)}},
	})
	wallet := NewWallet(open, closed)

	rows, err := wallet.Results(market, MemStore{})
	if err != nil {
		t.Fatal(err)
	}
	// Both investments hold a single fund: one merged row each, in name
	// order.
	if len(rows) != 2 {
		t.Fatalf("Results() = %d rows, want 2", len(rows))
	}
	if !strings.HasPrefix(rows[0].Investment, "(Arch.)") {
		t.Errorf("rows[0].Investment = %q, want the closed investment first, archived", rows[0].Investment)
	}
	if rows[1].Investment != "open" {
		t.Errorf("rows[1].Investment = %q, want %q", rows[1].Investment, "open")
	}
}
