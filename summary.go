package fundval

import (
	"fmt"

	"github.com/etnz/fundval/date"
)

// daysInYear scales daily refund figures to the conventional yearly
// projection.
const daysInYear = 365

// ResultRow is one line of an investment's refund table: either the
// aggregate line of the whole investment, or the detail of one fund.
type ResultRow struct {
	Investment string // empty on fund detail rows
	Days       int
	FundID     string
	Share      Percent // share of the investment's current value
	HasShare   bool

	Profit       Money
	RefundRate   Percent
	ProfitDaily  Money
	RefundDaily  Percent
	RefundYearly Percent
}

// Summary is the point-in-time refund analysis of one investment, derived
// from the final ledger row. It is recomputed on demand, never stored.
type Summary struct {
	Investment   string
	Date         date.Date // date of the last priced row
	Profit       Money
	RefundRate   Percent
	DurationDays int
	Rows         []ResultRow
}

// NewSummary derives the refund summary of an investment from its computed
// (or archived) ledger.
func NewSummary(inv *Investment, l *Ledger) (*Summary, error) {
	last, ok := l.LastRow()
	if !ok {
		return nil, fmt.Errorf("investment %q: no day could be priced, nothing to summarize", inv.Name())
	}

	profit := last.Value.Sub(last.Invested)
	refundRate := Percent(0)
	if !last.Invested.IsZero() {
		refundRate = percentOf(last.Value.Ratio(last.Invested))
	}

	// Money earns nothing on its own purchase day, hence the lag.
	end := last.Date
	if inv.Closed() {
		end = inv.EndDate()
	}
	days := end.Sub(inv.StartDate()) - settlementLag

	s := &Summary{
		Investment:   inv.Name(),
		Date:         last.Date,
		Profit:       profit.Round(2),
		RefundRate:   refundRate,
		DurationDays: days,
	}

	name := inv.Name()
	if inv.Closed() {
		name = archivedPrefix + " " + name
	}
	aggregate := ResultRow{
		Investment:   name,
		Days:         days,
		Profit:       s.Profit,
		RefundRate:   refundRate,
		ProfitDaily:  perDay(s.Profit, days),
		RefundDaily:  perDayPercent(refundRate, days),
		RefundYearly: perDayPercent(refundRate, days) * daysInYear,
	}

	// Once archived, individual fund attribution is suppressed.
	if inv.Closed() {
		s.Rows = []ResultRow{aggregate}
		return s, nil
	}

	fundRows := make([]ResultRow, 0, len(l.fundIDs))
	for _, id := range l.fundIDs {
		pos, ok := last.Funds[id]
		if !ok {
			continue
		}
		fundProfit := pos.Value.Sub(pos.Invested).Round(2)
		fundRefund := percentOf(pos.Refund)
		share := Percent(0)
		if !last.Value.IsZero() {
			share = Percent(pos.Value.Amount().Div(last.Value.Amount()).InexactFloat64() * 100)
		}
		fundRows = append(fundRows, ResultRow{
			FundID:       id,
			Days:         days,
			Share:        share,
			HasShare:     true,
			Profit:       fundProfit,
			RefundRate:   fundRefund,
			ProfitDaily:  perDay(fundProfit, days),
			RefundDaily:  perDayPercent(fundRefund, days),
			RefundYearly: perDayPercent(fundRefund, days) * daysInYear,
		})
	}

	// A single-fund investment collapses into one line: the aggregate with
	// the fund's identity and share copied up.
	if len(fundRows) == 1 {
		aggregate.FundID = fundRows[0].FundID
		aggregate.Share = fundRows[0].Share
		aggregate.HasShare = true
		s.Rows = []ResultRow{aggregate}
		return s, nil
	}

	s.Rows = append([]ResultRow{aggregate}, fundRows...)
	return s, nil
}

// perDay spreads an amount over a duration, zero when the duration is not
// positive yet (summaries can be requested on the purchase day itself).
func perDay(m Money, days int) Money {
	if days <= 0 {
		return M(0, m.Currency())
	}
	return m.DivDays(days)
}

func perDayPercent(p Percent, days int) Percent {
	if days <= 0 {
		return 0
	}
	return p / Percent(days)
}
