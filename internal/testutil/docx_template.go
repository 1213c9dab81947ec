package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

	documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
)

// ItemColumnWidths are the grid widths (dxa) of the items table in the fixture template
var ItemColumnWidths = []int{4500, 1800, 900, 1800}

// TemplateOptions shapes the generated invoice template. The zero value is not useful, start
// from DefaultTemplateOptions.
type TemplateOptions struct {
	// ItemRows are the rows of the items table, header included
	ItemRows [][]string
	// SummaryRows are the rows of the financial summary table
	SummaryRows [][]string
	// OmitItemsGrid drops the w:tblGrid of the items table
	OmitItemsGrid bool
	// OmitSummary leaves the document with a single table
	OmitSummary bool
	// TextBox, when set, appends a "Logo: " paragraph holding a drawing whose text box
	// contains this text
	TextBox string
}

type TemplateOption func(o *TemplateOptions)

func DefaultTemplateOptions() TemplateOptions {
	return TemplateOptions{
		ItemRows: [][]string{
			{"DESCRIPTION", "PRICE", "QTY", "TOTAL"},
			{"[item]", "[price]", "[qty]", "[total]"},
		},
		SummaryRows: [][]string{
			{"SUBTOTAL:", "[subtotal]"},
			{"TAX:", "[tax]"},
			{"DISCOUNT:", "[discount]"},
			{"{{LATE FEE:}}", "[latefee]"},
		},
	}
}

// WithItemRows replaces the items table rows, header included
func WithItemRows(rows ...[]string) TemplateOption {
	return func(o *TemplateOptions) {
		o.ItemRows = rows
	}
}

// WithSummaryRows replaces the financial summary rows
func WithSummaryRows(rows ...[]string) TemplateOption {
	return func(o *TemplateOptions) {
		o.SummaryRows = rows
	}
}

func WithoutItemsGrid() TemplateOption {
	return func(o *TemplateOptions) {
		o.OmitItemsGrid = true
	}
}

func WithoutSummary() TemplateOption {
	return func(o *TemplateOptions) {
		o.OmitSummary = true
	}
}

func WithTextBox(text string) TemplateOption {
	return func(o *TemplateOptions) {
		o.TextBox = text
	}
}

// NewInvoiceTemplate builds the invoice .docx template in memory. The body carries every
// client, invoice and grand total token, with {{client_email}} split across two runs the way
// Word often stores edited text.
func NewInvoiceTemplate(opts ...TemplateOption) []byte {
	o := DefaultTemplateOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var body strings.Builder
	body.WriteString(paragraph(`<w:pPr><w:jc w:val="center"/></w:pPr>`, run(`<w:rPr><w:b/><w:sz w:val="32"/></w:rPr>`, "INVOICE")))
	body.WriteString(paragraph("", run("", "Billed to: "), run(`<w:rPr><w:b/></w:rPr>`, "{{client_name}}")))
	body.WriteString(paragraph("", run("", "Phone: {{client_phone}}")))
	body.WriteString(paragraph("", run("", "Email: {{client_"), run("", "email}}")))
	body.WriteString(paragraph("", run("", "Address: {{client_address}}")))
	body.WriteString(paragraph("", run(`<w:rPr><w:i/></w:rPr>`, "Invoice No: {{invoice_number}}")))
	body.WriteString(paragraph("", run("", "Date: {{invoice_date}}"), run("", "\tDue: {{due_date}}")))
	body.WriteString(table(o.ItemRows, !o.OmitItemsGrid))
	body.WriteString(paragraph("", ""))
	if !o.OmitSummary {
		body.WriteString(table(o.SummaryRows, true))
	}
	body.WriteString(paragraph(`<w:pPr><w:jc w:val="right"/></w:pPr>`, run(`<w:rPr><w:b/></w:rPr>`, "GRAND TOTAL: [grandtotal]")))
	body.WriteString(paragraph("", run("", "Thank you for your business")))
	if o.TextBox != "" {
		body.WriteString(paragraph("", run("", "Logo: "), textBox(o.TextBox)))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writePart(zw, "[Content_Types].xml", contentTypesXML)
	writePart(zw, "_rels/.rels", relsXML)
	writePart(zw, "word/document.xml", documentHeader+body.String()+documentFooter)
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteInvoiceTemplate stores the template in a temporary directory owned by t and returns
// its path
func WriteInvoiceTemplate(t testing.TB, opts ...TemplateOption) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Invoice_Template.docx")
	require.NoError(t, os.WriteFile(path, NewInvoiceTemplate(opts...), 0o644))
	return path
}

func writePart(zw *zip.Writer, name, content string) {
	w, err := zw.Create(name)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		panic(err)
	}
}

func paragraph(pPr string, runs ...string) string {
	return "<w:p>" + pPr + strings.Join(runs, "") + "</w:p>"
}

func run(rPr, text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("<w:r>")
	b.WriteString(rPr)
	for i, segment := range strings.Split(text, "\t") {
		if i > 0 {
			b.WriteString("<w:tab/>")
		}
		if segment != "" {
			fmt.Fprintf(&b, `<w:t xml:space="preserve">%s</w:t>`, segment)
		}
	}
	b.WriteString("</w:r>")
	return b.String()
}

func textBox(text string) string {
	return `<w:r><w:drawing><wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing">` +
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData>` +
		`<wps:wsp xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"><wps:txbx><w:txbxContent>` +
		paragraph("", run("", text)) +
		`</w:txbxContent></wps:txbx></wps:wsp></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`
}

func table(rows [][]string, withGrid bool) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="000000"/></w:tblBorders></w:tblPr>`)

	columns := 0
	for _, r := range rows {
		columns = max(columns, len(r))
	}
	if withGrid && columns > 0 {
		b.WriteString("<w:tblGrid>")
		for i := 0; i < columns; i++ {
			width := 2000
			if columns == len(ItemColumnWidths) {
				width = ItemColumnWidths[i]
			}
			fmt.Fprintf(&b, `<w:gridCol w:w="%d"/>`, width)
		}
		b.WriteString("</w:tblGrid>")
	}

	for _, r := range rows {
		b.WriteString("<w:tr>")
		for _, text := range r {
			b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr>`)
			b.WriteString(paragraph("", run("", text)))
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
	return b.String()
}
