package fundval

import (
	"testing"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

func TestNewSyntheticAnalysis_SinglePurchase(t *testing.T) {
	market := NewMarket()
	f := NewFund("ABC123", "Test Fund", "PLN")
	f.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(100))
	f.Append(date.MustParse("2024-01-10"), decimal.NewFromInt(120))
	market.Add(f)

	inv := NewInvestment("single", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
	})

	a, err := NewSyntheticAnalysis(inv, market, "ABC123")
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Periods) != 1 {
		t.Fatalf("Periods = %d, want 1", len(a.Periods))
	}
	p := a.Periods[0]
	if p.End != date.MustParse("2024-01-10") {
		t.Errorf("End = %s, want the last quotation date", p.End)
	}
	// Nine calendar days, minus the purchase day itself.
	if p.TimeFrame != 8 {
		t.Errorf("TimeFrame = %d, want 8", p.TimeFrame)
	}
	if !p.Refund.Equal(20) {
		t.Errorf("Refund = %s, want 20%%", p.Refund)
	}
	if !a.WeightedRefund.Equal(20) {
		t.Errorf("WeightedRefund = %s, want 20%%", a.WeightedRefund)
	}
	if !a.RefundPerDay.Equal(2.5) {
		t.Errorf("RefundPerDay = %s, want 2.50%%", a.RefundPerDay)
	}
	if !a.RefundYearly.Equal(2.5 * 365) {
		t.Errorf("RefundYearly = %s, want %.2f%%", a.RefundYearly, 2.5*365)
	}
}

func TestNewSyntheticAnalysis_SameDayOrdersAreOnePayment(t *testing.T) {
	market := NewMarket()
	f := NewFund("ABC123", "Test Fund", "PLN")
	f.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(100))
	f.Append(date.MustParse("2024-01-10"), decimal.NewFromInt(120))
	market.Add(f)

	inv := NewInvestment("split-order", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {
			{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(600)},
			{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(400)},
		},
	})

	a, err := NewSyntheticAnalysis(inv, market, "ABC123")
	if err != nil {
		t.Fatal(err)
	}

	// Two orders on the same day are one payment: no zero-length period may
	// exist, and the figures must match a single 1000 order on that day.
	if len(a.Periods) != 1 {
		t.Fatalf("Periods = %d, want 1", len(a.Periods))
	}
	if a.Periods[0].TimeFrame != 8 {
		t.Errorf("TimeFrame = %d, want 8", a.Periods[0].TimeFrame)
	}
	if !a.WeightedRefund.Equal(20) {
		t.Errorf("WeightedRefund = %s, want 20%%", a.WeightedRefund)
	}
	if !a.RefundPerDay.Equal(2.5) {
		t.Errorf("RefundPerDay = %s, want 2.50%%", a.RefundPerDay)
	}
}

func TestNewSyntheticAnalysis_WeightsPeriodsByDuration(t *testing.T) {
	market := NewMarket()
	f := NewFund("ABC123", "Test Fund", "PLN")
	f.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(100))
	f.Append(date.MustParse("2024-01-05"), decimal.NewFromInt(110))
	f.Append(date.MustParse("2024-01-10"), decimal.NewFromInt(121))
	market.Add(f)

	inv := NewInvestment("recurring", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {
			{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)},
			{BuyDate: date.MustParse("2024-01-05"), Money: decimal.NewFromInt(1000)},
		},
	})

	a, err := NewSyntheticAnalysis(inv, market, "ABC123")
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Periods) != 2 {
		t.Fatalf("Periods = %d, want one per purchase", len(a.Periods))
	}
	first, second := a.Periods[0], a.Periods[1]
	if first.End != second.Start {
		t.Errorf("periods are not contiguous: %s..%s then %s..%s", first.Start, first.End, second.Start, second.End)
	}
	if first.TimeFrame != 3 || second.TimeFrame != 4 {
		t.Errorf("TimeFrames = %d, %d, want 3 and 4", first.TimeFrame, second.TimeFrame)
	}
	// Both periods earned 10%: the weighted aggregate is 10% too, over the
	// 7 days of combined time frame.
	if !a.WeightedRefund.Equal(10) {
		t.Errorf("WeightedRefund = %s, want 10%%", a.WeightedRefund)
	}
	if !a.RefundPerDay.Equal(10.0 / 7) {
		t.Errorf("RefundPerDay = %s, want %.4f%%", a.RefundPerDay, 10.0/7)
	}
}

func TestNewSyntheticAnalysis_PurchaseDayUsesNearestEarlierPrice(t *testing.T) {
	market := NewMarket()
	f := NewFund("ABC123", "Test Fund", "PLN")
	f.Append(date.MustParse("2024-01-01"), decimal.NewFromInt(100))
	f.Append(date.MustParse("2024-01-10"), decimal.NewFromInt(110))
	market.Add(f)

	// The purchase falls in a quotation hole: unlike the ledger walk, the
	// synthetic analysis tolerates it, using the day-1 price.
	inv := NewInvestment("hole", date.MustParse("2024-01-03"), date.Date{}, map[string][]PurchaseOrder{
		"ABC123": {{BuyDate: date.MustParse("2024-01-03"), Money: decimal.NewFromInt(1000)}},
	})

	a, err := NewSyntheticAnalysis(inv, market, "ABC123")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Periods[0].Refund.Equal(10) {
		t.Errorf("Refund = %s, want 10%% from the fallback start price", a.Periods[0].Refund)
	}
}

func TestNewSyntheticAnalysis_Errors(t *testing.T) {
	market := NewMarket()
	f := NewFund("ABC123", "Test Fund", "PLN")
	f.Append(date.MustParse("2024-06-01"), decimal.NewFromInt(100))
	market.Add(f)

	t.Run("no orders for the fund", func(t *testing.T) {
		inv := NewInvestment("other", date.MustParse("2024-06-01"), date.Date{}, map[string][]PurchaseOrder{
			"XYZ": {{BuyDate: date.MustParse("2024-06-01"), Money: decimal.NewFromInt(1)}},
		})
		if _, err := NewSyntheticAnalysis(inv, market, "ABC123"); err == nil {
			t.Fatal("want an error when the investment holds no orders for the fund")
		}
	})

	t.Run("no quotation near the purchase", func(t *testing.T) {
		inv := NewInvestment("early", date.MustParse("2024-01-01"), date.Date{}, map[string][]PurchaseOrder{
			"ABC123": {{BuyDate: date.MustParse("2024-01-01"), Money: decimal.NewFromInt(1000)}},
		})
		if _, err := NewSyntheticAnalysis(inv, market, "ABC123"); err == nil {
			t.Fatal("want an error when no quotation exists within the lookback")
		}
	})
}
