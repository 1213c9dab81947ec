package docgen

import (
	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/shopspring/decimal"
)

// CurrencyFormatter renders an amount for display, see types.FormatCurrency
type CurrencyFormatter func(amount decimal.Decimal) string

// BuildItemsTable replaces the placeholder row of the items table with one styled row per
// item. The header row is kept, so the table ends up with len(items)+1 rows.
func BuildItemsTable(doc *docx.Document, items []invoice.LineItem) (*docx.Document, error) {
	return buildItemsTable(doc, DefaultTemplateSchema, items, types.FormatCurrency)
}

func buildItemsTable(doc *docx.Document, schema TemplateSchema, items []invoice.LineItem, formatCurrency CurrencyFormatter) (*docx.Document, error) {
	table, err := schema.itemsTable(doc)
	if err != nil {
		return nil, err
	}

	for _, row := range table.Rows() {
		for _, cell := range row.Cells() {
			cell.SetBorders(BorderColor, ItemBorderSize)
		}
	}

	rows := table.Rows()
	for _, extra := range rows[2:] {
		table.RemoveRow(extra)
	}
	placeholder := rows[1]

	for _, item := range items {
		values := []string{
			item.Description,
			formatCurrency(item.UnitPrice),
			types.FormatQuantity(item.Quantity),
			formatCurrency(item.Total),
		}

		cells := table.AddRow().Cells()
		for i, value := range values {
			cell := cells[i]
			cell.SetText(value)
			cell.SetShading(ItemShading)
			cell.SetBorders(BorderColor, ItemBorderSize)
			setCellFont(cell)
			setCellAlignment(cell, itemAlignments[i])
		}
	}

	table.RemoveRow(placeholder)
	return doc, nil
}
