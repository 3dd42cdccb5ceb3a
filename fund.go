package fundval

import (
	"iter"
	"slices"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// DefaultLookback is how many days back a missing quotation may be
// substituted with the nearest earlier one. Funds quote at most once per
// business day, so a week covers weekends and ordinary holiday gaps.
const DefaultLookback = 7

// Fund holds the quotation history of a single investment fund.
//
// The history is a sparse series: weekends, holidays and feed outages leave
// holes. Dates are unique and kept in chronological order. Once loaded for a
// run the series is read-only, so a Fund may be shared by several
// investments.
type Fund struct {
	id       string
	name     string
	currency string

	days   []date.Date
	prices []decimal.Decimal
}

// NewFund returns an empty fund with the given identity.
func NewFund(id, name, currency string) *Fund {
	return &Fund{id: id, name: name, currency: currency}
}

func (f *Fund) ID() string       { return f.id }
func (f *Fund) Name() string     { return f.name }
func (f *Fund) Currency() string { return f.currency }
func (f *Fund) Len() int         { return len(f.days) }

// Append adds a quotation to the fund's history, keeping the series sorted.
// A quotation on an already known date overwrites the previous one, giving
// priority to the most recently loaded data.
func (f *Fund) Append(on date.Date, price decimal.Decimal) *Fund {
	i, found := slices.BinarySearchFunc(f.days, on, date.Date.Compare)
	if found {
		f.prices[i] = price
		return f
	}
	f.days = slices.Insert(f.days, i, on)
	f.prices = slices.Insert(f.prices, i, price)
	return f
}

// Quotations returns an iterator over all quotations in chronological order.
func (f *Fund) Quotations() iter.Seq2[date.Date, decimal.Decimal] {
	return func(yield func(date.Date, decimal.Decimal) bool) {
		for i, on := range f.days {
			if !yield(on, f.prices[i]) {
				return
			}
		}
	}
}

// PriceOn returns the quotation on exactly that day.
func (f *Fund) PriceOn(on date.Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(f.days, on, date.Date.Compare)
	if !found {
		return Money{}, false
	}
	return Money{value: f.prices[i], cur: f.currency}, true
}

// NearestPriceOn returns the quotation on that day, or failing that, the
// nearest earlier one within maxLookback days. It never looks forward: a past
// valuation must not use future information.
func (f *Fund) NearestPriceOn(on date.Date, maxLookback int) (Money, bool) {
	for lookback := 0; lookback <= maxLookback; lookback++ {
		if price, ok := f.PriceOn(on.Add(-lookback)); ok {
			return price, true
		}
	}
	return Money{}, false
}

// LastQuotationDate returns the latest date in the series. For a still-open
// investment it serves as the effective "today" when the feed lags real time.
func (f *Fund) LastQuotationDate() date.Date {
	if len(f.days) == 0 {
		return date.Date{}
	}
	return f.days[len(f.days)-1]
}

// FirstQuotationDate returns the earliest date in the series.
func (f *Fund) FirstQuotationDate() date.Date {
	if len(f.days) == 0 {
		return date.Date{}
	}
	return f.days[0]
}

// FundInfo is a snapshot of a fund's latest known quotation, with the change
// against the previous one.
type FundInfo struct {
	ID            string
	Name          string
	Price         Money
	UpdateDate    date.Date
	Change        Money
	ChangePercent Percent
}

// Info derives the latest details from the quotation history.
func (f *Fund) Info() FundInfo {
	info := FundInfo{ID: f.id, Name: f.name}
	n := len(f.days)
	if n == 0 {
		return info
	}
	info.UpdateDate = f.days[n-1]
	info.Price = Money{value: f.prices[n-1], cur: f.currency}
	if n > 1 {
		prev := Money{value: f.prices[n-2], cur: f.currency}
		info.Change = info.Price.Sub(prev)
		info.ChangePercent = percentOf(info.Price.Ratio(prev))
	}
	return info
}
