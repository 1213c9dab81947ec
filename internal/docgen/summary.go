package docgen

import (
	"strings"

	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
)

// StyleSummary gives the financial summary white borders and the invoice typeface and right
// aligns the amounts. With applyLateFee the late fee label is highlighted, provided the
// label row still reads LATE FEE.
func StyleSummary(doc *docx.Document, applyLateFee bool) error {
	return styleSummary(doc, DefaultTemplateSchema, applyLateFee)
}

func styleSummary(doc *docx.Document, schema TemplateSchema, applyLateFee bool) error {
	table, err := schema.summaryTable(doc)
	if err != nil {
		return err
	}

	rows := table.Rows()
	for _, row := range rows {
		cells := row.Cells()
		for _, cell := range cells {
			cell.SetBorders(BorderColor, SummaryBorderSize)
			setCellFont(cell)
		}
		setCellAlignment(cells[1], docx.AlignRight)
	}

	if !applyLateFee {
		return nil
	}

	label := rows[schema.LateFeeRow].Cells()[0]
	text := label.Text()
	if !strings.Contains(text, invoice.LateFeeLabel) {
		return nil
	}

	label.SetText(text)
	for _, p := range label.Paragraphs() {
		for _, r := range p.Runs() {
			r.SetColor(LateFeeColor)
			r.SetFont(FontName)
		}
	}
	return nil
}
