package fundval

import (
	"bytes"
	"testing"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// dualCurrencyLedger computes a two-fund, two-currency ledger for round-trip
// tests.
func dualCurrencyLedger(t *testing.T) (*Investment, *Ledger) {
	t.Helper()
	market := NewMarket()
	a := NewFund("A", "Fund A", "PLN")
	a.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(100))
	a.Append(date.MustParse("2024-01-02"), decimal.NewFromInt(102))
	market.Add(a)
	b := NewFund("B", "Fund B", "EUR")
	b.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(50))
	b.Append(date.MustParse("2024-01-02"), decimal.NewFromInt(51))
	market.Add(b)

	inv := NewInvestment("mixed", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"A": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(600)}},
		"B": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(400)}},
	})
	ledger, err := ComputeLedgerAsOf(inv, market, date.MustParse("2024-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	return inv, ledger
}

func TestLedgerCSV_RoundTrip(t *testing.T) {
	_, ledger := dualCurrencyLedger(t)

	var buf bytes.Buffer
	if err := EncodeLedgerCSV(&buf, ledger); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeLedgerCSV(&buf, ledger.Name())
	if err != nil {
		t.Fatal(err)
	}

	if got.Name() != ledger.Name() {
		t.Errorf("Name() = %q, want %q", got.Name(), ledger.Name())
	}
	if got.Currency() != "EUR / PLN" {
		t.Errorf("Currency() = %q, want the concatenated label recovered from the fund columns", got.Currency())
	}
	if got.Len() != ledger.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), ledger.Len())
	}

	wantRows := make([]Row, 0, ledger.Len())
	for r := range ledger.Rows() {
		wantRows = append(wantRows, r)
	}
	i := 0
	for r := range got.Rows() {
		want := wantRows[i]
		if r.Date != want.Date {
			t.Errorf("row %d date = %s, want %s", i, r.Date, want.Date)
		}
		if !r.Value.Equal(want.Value) {
			t.Errorf("row %d value = %s, want %s", i, r.Value, want.Value)
		}
		if !r.Invested.Equal(want.Invested) {
			t.Errorf("row %d invested = %s, want %s", i, r.Invested, want.Invested)
		}
		for _, id := range ledger.FundIDs() {
			gp, wp := r.Funds[id], want.Funds[id]
			if !gp.Units.Equal(wp.Units) || !gp.Value.Equal(wp.Value) || !gp.Invested.Equal(wp.Invested) {
				t.Errorf("row %d fund %q = %+v, want %+v", i, id, gp, wp)
			}
			if !gp.Refund.Equal(wp.Refund) {
				t.Errorf("row %d fund %q refund = %s, want %s", i, id, gp.Refund, wp.Refund)
			}
			if gp.Currency != wp.Currency {
				t.Errorf("row %d fund %q currency = %q, want %q", i, id, gp.Currency, wp.Currency)
			}
		}
		i++
	}
}

func TestLedgerOf_UsesArchiveForClosedInvestment(t *testing.T) {
	market := singleFundMarket()
	inv := NewInvestment("done", date.MustParse("2024-01-01"), date.MustParse("2024-01-03"), map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
	})

	// A recognizable archive: its single row carries a value no computation
	// would produce.
	archived := &Ledger{
		name:     "done",
		fundIDs:  []string{"ABC123"},
		currency: "PLN",
		rows: []Row{{
			Date:     date.MustParse("2024-01-03"),
			Value:    M(424242, "PLN"),
			Invested: M(1000, "PLN"),
			Funds:    map[string]FundPosition{"ABC123": {Currency: "PLN"}},
		}},
	}
	store := MemStore{"done": archived}

	got, err := LedgerOf(inv, market, store)
	if err != nil {
		t.Fatal(err)
	}
	if got != archived {
		t.Error("LedgerOf() recomputed, want the archived ledger returned as-is")
	}
}

func TestLedgerOf_StaleArchiveIsRecomputed(t *testing.T) {
	market := singleFundMarket()
	inv := NewInvestment("done", date.MustParse("2024-01-01"), date.MustParse("2024-01-03"), map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
	})

	// The archive stops one day short of the end date.
	stale := &Ledger{
		name:    "done",
		fundIDs: []string{"ABC123"},
		rows:    []Row{{Date: date.MustParse("2024-01-02")}},
	}
	store := MemStore{"done": stale}

	got, err := LedgerOf(inv, market, store)
	if err != nil {
		t.Fatal(err)
	}
	if got == stale {
		t.Fatal("LedgerOf() returned the stale archive, want a recomputation")
	}
	last, _ := got.LastRow()
	if last.Date != date.MustParse("2024-01-03") {
		t.Errorf("recomputed last row = %s, want 2024-01-03", last.Date)
	}
}

func TestLedgerOf_OpenInvestmentIgnoresArchive(t *testing.T) {
	market := singleFundMarket()
	inv := NewInvestment("open", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
	})

	archived := &Ledger{name: "open", rows: []Row{{Date: OpenEndDate}}}
	store := MemStore{"open": archived}

	got, err := LedgerOf(inv, market, store)
	if err != nil {
		t.Fatal(err)
	}
	if got == archived {
		t.Fatal("LedgerOf() used an archive for a still-open investment")
	}
}

func TestDirStore(t *testing.T) {
	_, ledger := dualCurrencyLedger(t)
	store := DirStore{Dir: t.TempDir()}

	if _, ok, err := store.Load("mixed"); err != nil || ok {
		t.Fatalf("Load() before Save = ok %v, err %v; want a clean miss", ok, err)
	}

	if err := store.Save("mixed", ledger); err != nil {
		t.Fatal(err)
	}
	got, ok, err := store.Load("mixed")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Load() after Save: not found")
	}
	if got.Len() != ledger.Len() {
		t.Errorf("Len() = %d, want %d", got.Len(), ledger.Len())
	}
	last, _ := got.LastRow()
	wantLast, _ := ledger.LastRow()
	if last.Date != wantLast.Date {
		t.Errorf("last row date = %s, want %s", last.Date, wantLast.Date)
	}
}
