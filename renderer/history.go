package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fundval"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the last n rows of a day-by-day ledger, or all of
// them when n <= 0.
func HistoryMarkdown(l *fundval.Ledger, n int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investment %s day by day", l.Name()))

	fundIDs := l.FundIDs()
	header := []string{"Date", "Value", "Invested Money"}
	for _, id := range fundIDs {
		header = append(header, id+" P.U.", id+" Value", id+" Refund")
	}
	table := md.TableSet{Header: header}

	skip := 0
	if n > 0 && l.Len() > n {
		skip = l.Len() - n
	}
	i := 0
	for row := range l.Rows() {
		if i < skip {
			i++
			continue
		}
		i++
		record := []string{
			row.Date.String(),
			row.Value.Amount().StringFixed(2),
			row.Invested.Amount().StringFixed(2),
		}
		for _, id := range fundIDs {
			pos := row.Funds[id]
			record = append(record,
				pos.Units.String(),
				pos.Value.String(),
				fundval.Percent(pos.Refund.InexactFloat64()*100).SignedString(),
			)
		}
		table.Rows = append(table.Rows, record)
	}
	doc.Table(table)

	return doc.String()
}
