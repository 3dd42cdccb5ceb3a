package renderer

import (
	"bytes"

	"github.com/etnz/fundval"
	md "github.com/nao1215/markdown"
)

// FundsMarkdown renders the latest known details of each fund.
func FundsMarkdown(infos []fundval.FundInfo) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Funds")

	table := md.TableSet{
		Header: []string{"Name", "ID", "Price", "Change (1D)", "Change % (1D)", "Last Update"},
	}
	for _, info := range infos {
		table.Rows = append(table.Rows, []string{
			info.Name,
			info.ID,
			info.Price.String(),
			info.Change.SignedString(),
			info.ChangePercent.SignedString(),
			info.UpdateDate.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
