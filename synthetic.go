package fundval

import (
	"fmt"

	"github.com/etnz/fundval/date"
)

// SyntheticPeriod is the refund of one inter-payment period of a fund: from
// one purchase date to the next, or from the last purchase to the last known
// quotation.
type SyntheticPeriod struct {
	Start     date.Date
	End       date.Date
	TimeFrame int // days the capital of this period was at work
	Refund    Percent
}

// SyntheticAnalysis is a payment-period-weighted annualized refund estimate
// for one fund.
//
// Unlike the end-to-end rate of a Summary, it weights each period's refund by
// its length, normalizing for capital that arrived at different times.
type SyntheticAnalysis struct {
	FundID         string
	Periods        []SyntheticPeriod
	WeightedRefund Percent
	RefundPerDay   Percent
	RefundYearly   Percent
}

// NewSyntheticAnalysis partitions the fund's purchase history of an
// investment into inter-payment periods and aggregates their time-weighted
// refund. It works from the raw orders and the quotation series alone,
// independently of any ledger.
func NewSyntheticAnalysis(inv *Investment, m *Market, fundID string) (*SyntheticAnalysis, error) {
	fund, err := m.Fund(fundID)
	if err != nil {
		return nil, err
	}
	orders := inv.Orders(fundID)
	if len(orders) == 0 {
		return nil, fmt.Errorf("investment %q holds no orders for fund %q", inv.Name(), fundID)
	}

	// Same-day orders are one logical payment: a duplicate buy date must not
	// spawn a degenerate zero-length period.
	var buyDates []date.Date
	for _, o := range orders {
		if len(buyDates) == 0 || buyDates[len(buyDates)-1] != o.BuyDate {
			buyDates = append(buyDates, o.BuyDate)
		}
	}

	a := &SyntheticAnalysis{FundID: fundID}
	for i, start := range buyDates {
		end := fund.LastQuotationDate()
		if i+1 < len(buyDates) {
			end = buyDates[i+1]
		}
		p, err := newSyntheticPeriod(fund, start, end)
		if err != nil {
			return nil, err
		}
		a.Periods = append(a.Periods, p)
	}

	var weighted, totalDays float64
	for _, p := range a.Periods {
		weighted += float64(p.TimeFrame) * float64(p.Refund)
		totalDays += float64(p.TimeFrame)
	}
	if totalDays > 0 {
		a.WeightedRefund = Percent(weighted / totalDays)
		a.RefundPerDay = a.WeightedRefund / Percent(totalDays)
		a.RefundYearly = a.RefundPerDay * daysInYear
	}
	return a, nil
}

func newSyntheticPeriod(fund *Fund, start, end date.Date) (SyntheticPeriod, error) {
	startPrice, ok := fund.NearestPriceOn(start, DefaultLookback)
	if !ok {
		return SyntheticPeriod{}, fmt.Errorf("fund %q: no quotation within %d days before %s", fund.ID(), DefaultLookback, start)
	}
	endPrice, ok := fund.NearestPriceOn(end, DefaultLookback)
	if !ok {
		return SyntheticPeriod{}, fmt.Errorf("fund %q: no quotation within %d days before %s", fund.ID(), DefaultLookback, end)
	}
	return SyntheticPeriod{
		Start:     start,
		End:       end,
		TimeFrame: end.Sub(start) - settlementLag,
		Refund:    percentOf(endPrice.Ratio(startPrice)),
	}, nil
}
