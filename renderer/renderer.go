// Package renderer turns fundval reports into markdown, ready to be printed
// raw or through a terminal renderer.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/fundval"
	md "github.com/nao1215/markdown"
)

// ResultsMarkdown renders the refund table of one or more investments.
// Aggregate rows carry the investment name and duration; fund detail rows
// carry the fund identity and its share of the investment value.
func ResultsMarkdown(rows []fundval.ResultRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Investment Results")

	table := md.TableSet{
		Header: []string{"Investment Name", "Days", "Fund ID", "Investment %", "Profit", "Refund Rate", "Profit daily", "Refund daily", "Refund yearly"},
	}
	for _, r := range rows {
		days := ""
		if r.Investment != "" {
			days = strconv.Itoa(r.Days)
		}
		share := ""
		if r.HasShare {
			share = fmt.Sprintf("%.2f%%", float64(r.Share))
		}
		table.Rows = append(table.Rows, []string{
			r.Investment,
			days,
			r.FundID,
			share,
			r.Profit.SignedString(),
			r.RefundRate.SignedString(),
			r.ProfitDaily.SignedString(),
			r.RefundDaily.SignedString(),
			r.RefundYearly.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
