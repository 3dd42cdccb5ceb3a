package fundval

import (
	"iter"
	"slices"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// FundPosition is the state of one fund inside a ledger row.
type FundPosition struct {
	Units    Quantity
	Value    Money
	Invested Money
	Refund   decimal.Decimal // fraction: Value/Invested - 1, 0 while unfunded
	Currency string
}

// Row is one day's fully priced valuation snapshot.
type Row struct {
	Date     date.Date
	Value    Money // total investment value, tagged with the investment currency label
	Invested Money
	Funds    map[string]FundPosition
}

// Ledger is the day-by-day valuation of one investment: an append-only,
// chronological sequence with one row per day that could be fully priced.
// Days where no fund quotes (weekends, holidays) are absent, never recorded
// with a misleading zero value.
type Ledger struct {
	name     string
	fundIDs  []string
	currency string
	rows     []Row
}

func (l *Ledger) Name() string      { return l.name }
func (l *Ledger) Currency() string  { return l.currency }
func (l *Ledger) FundIDs() []string { return slices.Clone(l.fundIDs) }
func (l *Ledger) Len() int          { return len(l.rows) }

// Rows returns an iterator over the rows in chronological order.
func (l *Ledger) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range l.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// FirstDate returns the date of the first row.
func (l *Ledger) FirstDate() date.Date {
	if len(l.rows) == 0 {
		return date.Date{}
	}
	return l.rows[0].Date
}

// LastRow returns the most recent row.
func (l *Ledger) LastRow() (Row, bool) {
	if len(l.rows) == 0 {
		return Row{}, false
	}
	return l.rows[len(l.rows)-1], true
}

// ComputeLedger walks calendar days from the investment's first purchase to
// min(today, end date) and values the whole position every day it can.
func ComputeLedger(inv *Investment, m *Market) (*Ledger, error) {
	return ComputeLedgerAsOf(inv, m, date.Today())
}

// ComputeLedgerAsOf is ComputeLedger with an explicit wall-clock "today",
// so a past run can be reproduced exactly.
//
// Per-day policy:
//   - purchases take effect the same day, before pricing;
//   - a day where no fund at all quotes is skipped silently;
//   - a fund without an exact quotation falls back to the nearest earlier one
//     within DefaultLookback days;
//   - a fund that holds units but cannot be priced even by fallback drops the
//     whole day: a row is all-or-nothing;
//   - a fund that holds no units yet is neutral: it appears in the row with
//     zero value, zero invested money and zero refund.
func ComputeLedgerAsOf(inv *Investment, m *Market, today date.Date) (*Ledger, error) {
	// A purchase date without an exact quotation is fatal before the walk
	// starts: no partial ledger is ever produced.
	book, err := inv.newPurchaseBook(m)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{
		name:     inv.Name(),
		fundIDs:  inv.FundIDs(),
		currency: inv.CurrencyLabel(m),
	}
	// No orders at all: nothing to walk from.
	if book.first.IsZero() {
		return ledger, nil
	}

	funds := make(map[string]*Fund, len(inv.fundIDs))
	var lastQuote date.Date
	for _, id := range inv.fundIDs {
		f, err := m.Fund(id)
		if err != nil {
			return nil, err
		}
		funds[id] = f
		lastQuote = date.Max(lastQuote, f.LastQuotationDate())
	}
	// When the quotation feed lags real time, the latest quotation stands in
	// for today, so the walk does not end on a tail of unpriceable days.
	end := date.Min(date.Min(today, lastQuote), inv.EndDate())

	totals := inv.newCumulativeTotals(m)

	for day := book.first; !day.After(end); day = day.Add(1) {
		if orders, ok := book.byDate[day]; ok {
			for id, o := range orders {
				totals[id].units = totals[id].units.Add(o.units)
				totals[id].money = totals[id].money.Add(o.money)
			}
		}

		row, ok := priceDay(funds, totals, day, ledger.currency)
		if !ok {
			continue
		}
		ledger.rows = append(ledger.rows, row)
	}
	return ledger, nil
}

// priceDay builds the row for one day, or reports that the day must be
// dropped.
func priceDay(funds map[string]*Fund, totals map[string]*cumulative, day date.Date, label string) (Row, bool) {
	// First pass: exact quotations only. If nothing at all is known about
	// this day it is a market holiday: skip without consuming any fallback.
	prices := make(map[string]Money, len(funds))
	for id, f := range funds {
		if p, ok := f.PriceOn(day); ok {
			prices[id] = p
		}
	}
	if len(prices) == 0 {
		return Row{}, false
	}

	// Second pass: bounded backward fallback for the funds that failed.
	for id, f := range funds {
		if _, ok := prices[id]; ok {
			continue
		}
		if p, ok := f.NearestPriceOn(day, DefaultLookback); ok {
			prices[id] = p
			continue
		}
		if !totals[id].units.IsZero() {
			// A priced position is missing: consistency requires every funded
			// position to be valued before a row is emitted.
			return Row{}, false
		}
		// Not yet funded: neutral, the position stays at zero.
	}

	row := Row{Date: day, Funds: make(map[string]FundPosition, len(funds))}
	totalValue := decimal.Zero
	totalInvested := decimal.Zero
	for id, f := range funds {
		t := totals[id]
		pos := FundPosition{
			Units:    t.units,
			Invested: t.money.Round(2),
			Currency: f.Currency(),
		}
		if price, ok := prices[id]; ok {
			pos.Value = price.Mul(t.units).Round(2)
		} else {
			pos.Value = M(0, f.Currency())
		}
		if !pos.Invested.IsZero() {
			pos.Refund = pos.Value.Ratio(pos.Invested).Round(4)
		}
		row.Funds[id] = pos
		totalValue = totalValue.Add(pos.Value.Amount())
		totalInvested = totalInvested.Add(pos.Invested.Amount())
	}
	row.Value = Money{value: totalValue.Round(2), cur: label}
	row.Invested = Money{value: totalInvested.Round(2), cur: label}
	return row, true
}
