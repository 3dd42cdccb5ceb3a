package fundval

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable reports a purchase date with no exact quotation. A
// purchase executed at a known price or the input is invalid: it is never
// priced approximately, and the whole investment computation is abandoned.
var ErrPriceUnavailable = errors.New("no quotation on purchase date")

// OpenEndDate is the sentinel end date of an investment that is still
// running.
var OpenEndDate = date.New(2200, time.January, 1)

// settlementLag encodes the policy that money cannot earn a return on its own
// purchase day: durations and period time frames are shortened by this many
// days.
const settlementLag = 1

const currencySeparator = " / "

// archivedPrefix marks results of an investment that has been closed.
const archivedPrefix = "(Arch.)"

// JoinCurrencies merges currency codes into a single display label. Distinct
// codes are concatenated with a separator: amounts are tagged, never
// converted.
func JoinCurrencies(currencies ...string) string {
	uniq := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c != "" && !slices.Contains(uniq, c) {
			uniq = append(uniq, c)
		}
	}
	sort.Strings(uniq)
	return strings.Join(uniq, currencySeparator)
}

// PurchaseOrder is a dated allocation of money to one fund.
type PurchaseOrder struct {
	BuyDate date.Date
	Money   decimal.Decimal
}

// Investment is a named set of purchase orders across one or more funds.
// It is immutable input, owned by the wallet that defined it.
type Investment struct {
	name    string
	start   date.Date
	end     date.Date // OpenEndDate while the investment is running
	orders  map[string][]PurchaseOrder
	fundIDs []string
}

// NewInvestment builds an investment from its definition. A zero end date
// means the investment is still open. Orders are copied and sorted by buy
// date.
func NewInvestment(name string, start, end date.Date, orders map[string][]PurchaseOrder) *Investment {
	if end.IsZero() {
		end = OpenEndDate
	}
	inv := &Investment{
		name:    name,
		start:   start,
		end:     end,
		orders:  make(map[string][]PurchaseOrder, len(orders)),
		fundIDs: make([]string, 0, len(orders)),
	}
	for id, list := range orders {
		cp := slices.Clone(list)
		slices.SortStableFunc(cp, func(a, b PurchaseOrder) int { return a.BuyDate.Compare(b.BuyDate) })
		inv.orders[id] = cp
		inv.fundIDs = append(inv.fundIDs, id)
	}
	sort.Strings(inv.fundIDs)
	return inv
}

func (inv *Investment) Name() string         { return inv.name }
func (inv *Investment) StartDate() date.Date { return inv.start }

// EndDate returns the configured end date, or the open sentinel.
func (inv *Investment) EndDate() date.Date { return inv.end }

// Closed reports whether the investment has an end date set.
func (inv *Investment) Closed() bool { return inv.end != OpenEndDate }

// FundIDs returns the IDs of all funds in the investment, sorted.
func (inv *Investment) FundIDs() []string { return slices.Clone(inv.fundIDs) }

// Orders returns the purchase orders of one fund in buy-date order.
func (inv *Investment) Orders(fundID string) []PurchaseOrder {
	return slices.Clone(inv.orders[fundID])
}

// firstBuyDate returns the earliest purchase date across all funds.
func (inv *Investment) firstBuyDate() date.Date {
	var first date.Date
	for _, list := range inv.orders {
		for _, o := range list {
			if first.IsZero() || o.BuyDate.Before(first) {
				first = o.BuyDate
			}
		}
	}
	return first
}

// CurrencyLabel returns the display currency of the investment: the single
// currency of its funds, or the concatenation of all of them.
func (inv *Investment) CurrencyLabel(m *Market) string {
	currencies := make([]string, 0, len(inv.fundIDs))
	for _, id := range inv.fundIDs {
		if f := m.Get(id); f != nil {
			currencies = append(currencies, f.Currency())
		}
	}
	return JoinCurrencies(currencies...)
}

// orderTotal is the consolidated purchase of one fund on one day.
type orderTotal struct {
	money Money
	units Quantity
}

// purchaseBook indexes an investment's orders by calendar date, with units
// computed at the exact quotation of each purchase day.
type purchaseBook struct {
	byDate map[date.Date]map[string]orderTotal
	first  date.Date
}

// newPurchaseBook groups the investment's orders by (fund, date) and prices
// them.
//
// Orders of the same fund on the same day are summed as money before the
// single division by the day's price. Summing separately computed unit
// counts instead would accumulate rounding drift.
func (inv *Investment) newPurchaseBook(m *Market) (*purchaseBook, error) {
	book := &purchaseBook{byDate: make(map[date.Date]map[string]orderTotal)}

	for _, fundID := range inv.fundIDs {
		fund, err := m.Fund(fundID)
		if err != nil {
			return nil, err
		}
		// First pass: sum money per buy date.
		perDay := make(map[date.Date]Money)
		for _, o := range inv.orders[fundID] {
			perDay[o.BuyDate] = perDay[o.BuyDate].Add(M(o.Money, fund.Currency()))
		}
		// Second pass: one unit computation per (fund, date).
		for on, money := range perDay {
			price, ok := fund.PriceOn(on)
			if !ok {
				return nil, fmt.Errorf("fund %q on %s: %w", fundID, on, ErrPriceUnavailable)
			}
			day, ok := book.byDate[on]
			if !ok {
				day = make(map[string]orderTotal)
				book.byDate[on] = day
			}
			day[fundID] = orderTotal{money: money, units: money.DivPrice(price)}
			if book.first.IsZero() || on.Before(book.first) {
				book.first = on
			}
		}
	}
	return book, nil
}

// cumulative is the running total of one fund inside the day-by-day walk.
type cumulative struct {
	units Quantity
	money Money
}

// newCumulativeTotals returns a zero-valued accumulator with one entry per
// fund of the investment.
func (inv *Investment) newCumulativeTotals(m *Market) map[string]*cumulative {
	totals := make(map[string]*cumulative, len(inv.fundIDs))
	for _, id := range inv.fundIDs {
		currency := ""
		if f := m.Get(id); f != nil {
			currency = f.Currency()
		}
		totals[id] = &cumulative{money: M(0, currency)}
	}
	return totals
}
