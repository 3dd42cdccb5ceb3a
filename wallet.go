package fundval

import (
	"fmt"
	"iter"
	"sort"
)

// Wallet is the set of named investments a user tracks. It owns the
// investment definitions; each investment's ledger is computed independently.
type Wallet struct {
	investments []*Investment
	index       map[string]*Investment
}

// NewWallet builds a wallet from investment definitions, ordered by name.
func NewWallet(investments ...*Investment) *Wallet {
	w := &Wallet{index: make(map[string]*Investment, len(investments))}
	for _, inv := range investments {
		w.investments = append(w.investments, inv)
		w.index[inv.Name()] = inv
	}
	sort.Slice(w.investments, func(i, j int) bool { return w.investments[i].Name() < w.investments[j].Name() })
	return w
}

// Get returns the investment with that name, or nil.
func (w *Wallet) Get(name string) *Investment { return w.index[name] }

// Len returns the number of investments.
func (w *Wallet) Len() int { return len(w.investments) }

// Investments returns an iterator over all investments in name order.
func (w *Wallet) Investments() iter.Seq[*Investment] {
	return func(yield func(*Investment) bool) {
		for _, inv := range w.investments {
			if !yield(inv) {
				return
			}
		}
	}
}

// Results computes the refund summary of every investment and returns all
// result rows, wallet after wallet, ready for rendering as one table.
func (w *Wallet) Results(m *Market, store ArchiveStore) ([]ResultRow, error) {
	var rows []ResultRow
	for _, inv := range w.investments {
		ledger, err := LedgerOf(inv, m, store)
		if err != nil {
			return nil, fmt.Errorf("investment %q: %w", inv.Name(), err)
		}
		summary, err := NewSummary(inv, ledger)
		if err != nil {
			return nil, err
		}
		rows = append(rows, summary.Rows...)
	}
	return rows, nil
}
