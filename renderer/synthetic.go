package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/fundval"
	md "github.com/nao1215/markdown"
)

// SyntheticMarkdown renders the payment-period-weighted refund analysis of
// one fund.
func SyntheticMarkdown(a *fundval.SyntheticAnalysis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Synthetic refund of %s", a.FundID))

	table := md.TableSet{
		Header: []string{"Start", "End", "Days", "Refund"},
	}
	for _, p := range a.Periods {
		table.Rows = append(table.Rows, []string{
			p.Start.String(),
			p.End.String(),
			strconv.Itoa(p.TimeFrame),
			p.Refund.SignedString(),
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("Weighted refund: %s, per day: %+.4f%%, yearly: %s",
		a.WeightedRefund.SignedString(), float64(a.RefundPerDay), a.RefundYearly.SignedString()))

	return doc.String()
}
