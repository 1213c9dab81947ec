package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	"github.com/marketixlab/invoicegen/internal/testutil"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openTemplate(t *testing.T, opts ...testutil.TemplateOption) *docx.Document {
	t.Helper()
	doc, err := docx.Read(testutil.NewInvoiceTemplate(opts...))
	require.NoError(t, err)
	return doc
}

func reopen(t *testing.T, data []byte) *docx.Document {
	t.Helper()
	doc, err := docx.Read(data)
	require.NoError(t, err)
	return doc
}

// texts returns every body paragraph and every table cell text of doc
func texts(doc *docx.Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				out = append(out, cell.Text())
			}
		}
	}
	return out
}

// documentXML returns the serialized main part of a .docx package
func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func cellTexts(table *docx.Table) [][]string {
	var out [][]string
	for _, row := range table.Rows() {
		var cells []string
		for _, cell := range row.Cells() {
			cells = append(cells, cell.Text())
		}
		out = append(out, cells)
	}
	return out
}

func item(description string, price, quantity int64) invoice.LineItem {
	return invoice.NewLineItem(description, decimal.NewFromInt(price), decimal.NewFromInt(quantity))
}

type invoiceOpts struct {
	items        []invoice.LineItem
	taxRate      int64
	discount     int64
	applyLateFee bool
}

func sampleInvoice(o invoiceOpts) *invoice.InvoiceData {
	if o.items == nil {
		o.items = []invoice.LineItem{item("Consulting", 1000000, 2)}
	}
	totals := invoice.CalculateTotals(invoice.TotalsInput{
		Items:        o.items,
		TaxRate:      decimal.NewFromInt(o.taxRate),
		Discount:     decimal.NewFromInt(o.discount),
		ApplyLateFee: o.applyLateFee,
	})

	return &invoice.InvoiceData{
		InvoiceNumber:  "INV2025001",
		ClientInfo:     invoice.ClientInfo("PT Maju Jaya", "+62 812 0000 1111", "billing@majujaya.co.id", "Jl. Sudirman 1, Jakarta"),
		InvoiceDetails: invoice.InvoiceDetails("INV2025001", "21.04.2025", "28.04.2025"),
		Financials:     totals.Financials(types.FormatCurrency),
		Items:          o.items,
		ApplyLateFee:   o.applyLateFee,
	}
}
