package fundval

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

// ArchiveStore is a persisted copy of previously computed ledgers. It lets a
// closed investment skip recomputation: the engine consults it before the
// day-by-day walk and accepts the archived ledger only when its last row
// lands exactly on the investment's end date.
//
// It is an injectable capability so the engine can be tested against an
// in-memory fake instead of a filesystem.
type ArchiveStore interface {
	// Load returns the archived ledger for that investment name, or
	// ok=false when no archive exists.
	Load(name string) (l *Ledger, ok bool, err error)
	// Save persists the ledger under the investment name, overwriting any
	// previous archive.
	Save(name string, l *Ledger) error
}

// LedgerOf returns the investment's ledger, reusing the archive when the
// investment is closed and the archived copy ends exactly on the end date.
// A stale archive is not an error: the ledger is recomputed in full.
func LedgerOf(inv *Investment, m *Market, store ArchiveStore) (*Ledger, error) {
	if inv.Closed() && store != nil {
		archived, ok, err := store.Load(inv.Name())
		if err != nil {
			return nil, fmt.Errorf("archive of %q: %w", inv.Name(), err)
		}
		if ok {
			if last, any := archived.LastRow(); any && last.Date == inv.EndDate() {
				return archived, nil
			}
		}
	}
	return ComputeLedger(inv, m)
}

// ledger CSV layout: a tab-separated table keyed by date, with a column group
// per fund. The "{fund} Currency" column makes a reload self-contained: no
// live quotation series is needed to interpret an archive.
const (
	colDate     = "Date"
	colValue    = "Value"
	colInvested = "Invested Money"

	colFundUnits    = " P.U."
	colFundValue    = " Value"
	colFundInvested = " Invested Money"
	colFundRefund   = " Refund"
	colFundCurrency = " Currency"
)

// EncodeLedgerCSV writes the full day-by-day ledger as tab-separated CSV.
func EncodeLedgerCSV(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := []string{colDate, colValue, colInvested}
	for _, id := range l.fundIDs {
		header = append(header,
			id+colFundUnits, id+colFundValue, id+colFundInvested, id+colFundRefund, id+colFundCurrency)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for row := range l.Rows() {
		record := []string{
			row.Date.String(),
			row.Value.Amount().StringFixed(2),
			row.Invested.Amount().StringFixed(2),
		}
		for _, id := range l.fundIDs {
			pos := row.Funds[id]
			record = append(record,
				pos.Units.String(),
				pos.Value.Amount().StringFixed(2),
				pos.Invested.Amount().StringFixed(2),
				pos.Refund.String(),
				pos.Currency,
			)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeLedgerCSV reads a ledger back from its CSV form. The fund IDs are
// recovered from the header, the currencies from the per-fund currency
// columns.
func DecodeLedgerCSV(r io.Reader, name string) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read archive header: %w", err)
	}
	if len(header) < 3 || header[0] != colDate || header[1] != colValue || header[2] != colInvested {
		return nil, fmt.Errorf("unexpected archive header %v", header)
	}

	// Every fund contributes five columns; the units column names the fund.
	var fundIDs []string
	for i := 3; i < len(header); i += 5 {
		id, ok := strings.CutSuffix(header[i], colFundUnits)
		if !ok || i+4 >= len(header) {
			return nil, fmt.Errorf("unexpected archive column %q", header[i])
		}
		fundIDs = append(fundIDs, id)
	}

	l := &Ledger{name: name, fundIDs: fundIDs}
	currencies := make(map[string]string, len(fundIDs))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read archive row: %w", err)
		}
		row, err := decodeLedgerRow(record, fundIDs)
		if err != nil {
			return nil, err
		}
		for id, pos := range row.Funds {
			currencies[id] = pos.Currency
		}
		l.rows = append(l.rows, row)
	}

	labels := make([]string, 0, len(currencies))
	for _, c := range currencies {
		labels = append(labels, c)
	}
	l.currency = JoinCurrencies(labels...)
	for i := range l.rows {
		l.rows[i].Value = l.rows[i].Value.WithCurrency(l.currency)
		l.rows[i].Invested = l.rows[i].Invested.WithCurrency(l.currency)
	}
	return l, nil
}

func decodeLedgerRow(record []string, fundIDs []string) (Row, error) {
	if len(record) != 3+5*len(fundIDs) {
		return Row{}, fmt.Errorf("archive row has %d fields, want %d", len(record), 3+5*len(fundIDs))
	}
	day, err := date.Parse(record[0])
	if err != nil {
		return Row{}, fmt.Errorf("archive row: %w", err)
	}
	value, err := decimal.NewFromString(record[1])
	if err != nil {
		return Row{}, fmt.Errorf("archive row %s: bad value: %w", day, err)
	}
	invested, err := decimal.NewFromString(record[2])
	if err != nil {
		return Row{}, fmt.Errorf("archive row %s: bad invested money: %w", day, err)
	}

	row := Row{
		Date:     day,
		Value:    Money{value: value},
		Invested: Money{value: invested},
		Funds:    make(map[string]FundPosition, len(fundIDs)),
	}
	for i, id := range fundIDs {
		base := 3 + 5*i
		units, err := decimal.NewFromString(record[base])
		if err != nil {
			return Row{}, fmt.Errorf("archive row %s, fund %q: bad units: %w", day, id, err)
		}
		fundValue, err := decimal.NewFromString(record[base+1])
		if err != nil {
			return Row{}, fmt.Errorf("archive row %s, fund %q: bad value: %w", day, id, err)
		}
		fundInvested, err := decimal.NewFromString(record[base+2])
		if err != nil {
			return Row{}, fmt.Errorf("archive row %s, fund %q: bad invested money: %w", day, id, err)
		}
		refund, err := decimal.NewFromString(record[base+3])
		if err != nil {
			return Row{}, fmt.Errorf("archive row %s, fund %q: bad refund: %w", day, id, err)
		}
		currency := record[base+4]
		row.Funds[id] = FundPosition{
			Units:    Quantity{value: units},
			Value:    Money{value: fundValue, cur: currency},
			Invested: Money{value: fundInvested, cur: currency},
			Refund:   refund,
			Currency: currency,
		}
	}
	return row, nil
}

// DirStore archives ledgers as one CSV file per investment in a directory.
type DirStore struct {
	Dir string
}

func (s DirStore) path(name string) string { return filepath.Join(s.Dir, name+".csv") }

func (s DirStore) Load(name string) (*Ledger, bool, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	l, err := DecodeLedgerCSV(f, name)
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

func (s DirStore) Save(name string, l *Ledger) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("cannot create archive directory %q: %w", s.Dir, err)
	}
	f, err := os.Create(s.path(name))
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, l)
}

// MemStore is an in-memory ArchiveStore for tests.
type MemStore map[string]*Ledger

func (s MemStore) Load(name string) (*Ledger, bool, error) {
	l, ok := s[name]
	return l, ok, nil
}

func (s MemStore) Save(name string, l *Ledger) error {
	s[name] = l
	return nil
}

var _ ArchiveStore = DirStore{}
var _ ArchiveStore = MemStore{}
