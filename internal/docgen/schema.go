package docgen

import (
	"github.com/marketixlab/invoicegen/internal/docx"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
)

// TemplateSchema names the body tables of the invoice template and the shape each must have
type TemplateSchema struct {
	// ItemsTable is the index of the line items table: a header row followed by one
	// placeholder row
	ItemsTable   int
	MinItemRows  int
	ItemColumns  int
	SummaryTable int
	// SummaryRows is the exact row count of the financial summary, LateFeeRow being one of them
	SummaryRows    int
	SummaryColumns int
	LateFeeRow     int
}

// DefaultTemplateSchema describes the single invoice template
var DefaultTemplateSchema = TemplateSchema{
	ItemsTable:     0,
	MinItemRows:    2,
	ItemColumns:    4,
	SummaryTable:   1,
	SummaryRows:    4,
	SummaryColumns: 2,
	LateFeeRow:     3,
}

// Check verifies doc has the layout the items builder and summary styler rely on
func (s TemplateSchema) Check(doc *docx.Document) error {
	if _, err := s.itemsTable(doc); err != nil {
		return err
	}
	if _, err := s.summaryTable(doc); err != nil {
		return err
	}
	return nil
}

func (s TemplateSchema) itemsTable(doc *docx.Document) (*docx.Table, error) {
	tables := doc.Tables()
	if len(tables) <= s.ItemsTable {
		return nil, malformed("items table is missing", map[string]any{
			"tables": len(tables),
		})
	}

	table := tables[s.ItemsTable]
	if rows := len(table.Rows()); rows < s.MinItemRows {
		return nil, malformed("items table needs a header and a placeholder row", map[string]any{
			"rows":     rows,
			"min_rows": s.MinItemRows,
		})
	}
	if columns := table.ColumnCount(); columns < s.ItemColumns {
		return nil, malformed("items table has too few columns", map[string]any{
			"columns":     columns,
			"min_columns": s.ItemColumns,
		})
	}
	return table, nil
}

func (s TemplateSchema) summaryTable(doc *docx.Document) (*docx.Table, error) {
	tables := doc.Tables()
	if len(tables) <= s.SummaryTable {
		return nil, malformed("financial summary table is missing", map[string]any{
			"tables": len(tables),
		})
	}

	table := tables[s.SummaryTable]
	rows := table.Rows()
	if len(rows) != s.SummaryRows {
		return nil, malformed("financial summary has an unexpected row count", map[string]any{
			"rows":          len(rows),
			"expected_rows": s.SummaryRows,
		})
	}
	for i, row := range rows {
		if cells := len(row.Cells()); cells < s.SummaryColumns {
			return nil, malformed("financial summary row has too few cells", map[string]any{
				"row":       i,
				"cells":     cells,
				"min_cells": s.SummaryColumns,
			})
		}
	}
	return table, nil
}

func malformed(msg string, details map[string]any) error {
	return ierr.NewError(msg).
		WithHint("The invoice template does not match the expected layout").
		WithReportableDetails(details).
		Mark(ierr.ErrMalformedTemplate)
}
