package docgen

import (
	"github.com/marketixlab/invoicegen/internal/docx"
)

const (
	FontName = "Courier New"
	// FontSize is in points
	FontSize = 10

	BorderColor = "FFFFFF"
	// border sizes are in eighths of a point
	ItemBorderSize    = 6
	SummaryBorderSize = 4

	ItemShading  = "DDEFD5"
	LateFeeColor = "D95132"
)

// itemAlignments are the paragraph alignments of description, unit price, quantity and total
var itemAlignments = []docx.Alignment{
	docx.AlignLeft,
	docx.AlignRight,
	docx.AlignCenter,
	docx.AlignRight,
}

// setCellFont applies the invoice typeface and size to every run of the cell
func setCellFont(cell *docx.Cell) {
	for _, p := range cell.Paragraphs() {
		for _, r := range p.Runs() {
			r.SetFont(FontName)
			r.SetSize(FontSize)
		}
	}
}

func setCellAlignment(cell *docx.Cell, a docx.Alignment) {
	for _, p := range cell.Paragraphs() {
		p.SetAlignment(a)
	}
}

// applyBodyFont sets the invoice typeface on every run of the body paragraphs. Table cells
// are styled by the items builder and summary styler.
func applyBodyFont(doc *docx.Document) {
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			r.SetFont(FontName)
		}
	}
}
