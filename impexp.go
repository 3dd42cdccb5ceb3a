package fundval

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/fundval/date"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Import/export of a single fund's quotation history in interchange formats.
// The CSV layout is tab-separated with a Date, Price, Currency header, the
// format historically used to hand quotations to spreadsheets.

// QuotationRecord is one line of the quotation CSV interchange format.
type QuotationRecord struct {
	Date     date.Date       `csv:"Date"`
	Price    decimal.Decimal `csv:"Price"`
	Currency string          `csv:"Currency"`
}

// ExportQuotationCSV writes the fund's full history as tab-separated CSV.
func ExportQuotationCSV(w io.Writer, f *Fund) error {
	records := make([]QuotationRecord, 0, f.Len())
	for on, value := range f.Quotations() {
		records = append(records, QuotationRecord{Date: on, Price: value, Currency: f.Currency()})
	}
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("cannot export quotations of %q: %w", f.ID(), err)
	}
	return nil
}

// ImportQuotationCSV reads a quotation CSV back into a fund. The fund identity
// cannot be recovered from the file, so the caller provides id and name.
func ImportQuotationCSV(r io.Reader, id, name string) (*Fund, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	var records []QuotationRecord
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, fmt.Errorf("cannot import quotations for %q: %w", id, err)
	}
	currency := ""
	if len(records) > 0 {
		currency = records[0].Currency
	}
	f := NewFund(id, name, currency)
	for _, rec := range records {
		f.Append(rec.Date, rec.Price)
	}
	return f, nil
}

// ExportQuotationJSON writes the fund's history in the same JSON layout used
// by the market directory, pretty printed.
func ExportQuotationJSON(w io.Writer, f *Fund) error {
	mf := marketFile{
		FundID:   f.ID(),
		FundName: f.Name(),
		Currency: f.Currency(),
		Price:    make([]pricePoint, 0, f.Len()),
	}
	for on, value := range f.Quotations() {
		mf.Price = append(mf.Price, pricePoint{Date: on, Value: value})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mf)
}
