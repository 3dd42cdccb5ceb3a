package fundval

import (
	"fmt"
	"iter"
	"sort"
)

// Market holds quotation histories for a set of funds, indexed by fund ID.
type Market struct {
	funds []*Fund
	index map[string]*Fund
}

// NewMarket returns a new empty market data collection.
func NewMarket() *Market {
	return &Market{
		funds: make([]*Fund, 0),
		index: make(map[string]*Fund),
	}
}

func (m *Market) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Get returns the fund with that ID, or nil if unknown.
func (m *Market) Get(id string) *Fund { return m.index[id] }

// Fund returns the fund with that ID or an error naming it, for callers that
// treat an unknown fund as a configuration defect.
func (m *Market) Fund(id string) (*Fund, error) {
	f, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("unknown fund %q: it is referenced by an investment but has no quotations loaded", id)
	}
	return f, nil
}

// Add registers a fund. Adding a fund with an already known ID replaces the
// previous one.
func (m *Market) Add(f *Fund) {
	if old, ok := m.index[f.id]; ok {
		for i, existing := range m.funds {
			if existing == old {
				m.funds[i] = f
				break
			}
		}
		m.index[f.id] = f
		return
	}
	m.funds = append(m.funds, f)
	m.index[f.id] = f
	sort.Slice(m.funds, func(i, j int) bool { return m.funds[i].id < m.funds[j].id })
}

// Len returns the number of funds in the market.
func (m *Market) Len() int { return len(m.funds) }

// Funds returns an iterator over all funds in ID order.
func (m *Market) Funds() iter.Seq[*Fund] {
	return func(yield func(*Fund) bool) {
		for _, f := range m.funds {
			if !yield(f) {
				return
			}
		}
	}
}
