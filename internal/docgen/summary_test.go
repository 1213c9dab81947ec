package docgen

import (
	"testing"

	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lateFeeLabel(doc *docx.Document) *docx.Cell {
	return doc.Tables()[1].Rows()[DefaultTemplateSchema.LateFeeRow].Cells()[0]
}

func TestStyleSummary(t *testing.T) {
	doc := openTemplate(t)
	require.NoError(t, StyleSummary(doc, false))

	for _, row := range doc.Tables()[1].Rows() {
		for i, cell := range row.Cells() {
			for _, side := range []docx.BorderSide{docx.BorderTop, docx.BorderLeft, docx.BorderBottom, docx.BorderRight} {
				assert.Equal(t, BorderColor, cell.BorderColor(side))
				assert.Equal(t, SummaryBorderSize, cell.BorderSize(side))
			}
			for _, p := range cell.Paragraphs() {
				if i == 1 {
					assert.Equal(t, docx.AlignRight, p.Alignment())
				} else {
					assert.Empty(t, p.Alignment())
				}
				for _, r := range p.Runs() {
					assert.Equal(t, FontName, r.Font())
					assert.Equal(t, float64(FontSize), r.Size())
					assert.Empty(t, r.Color())
				}
			}
		}
	}
}

func TestStyleSummaryLateFee(t *testing.T) {
	tests := []struct {
		name         string
		label        string
		applyLateFee bool
		wantColor    string
	}{
		{name: "applied", label: invoice.LateFeeLabel, applyLateFee: true, wantColor: LateFeeColor},
		{name: "applied with surrounding text", label: "LATE FEE (2%)", applyLateFee: true, wantColor: LateFeeColor},
		{name: "not applied", label: invoice.LateFeeLabel, applyLateFee: false},
		{name: "applied but label resolved empty", label: "", applyLateFee: true},
		{name: "applied but label reworded", label: "Penalty", applyLateFee: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openTemplate(t)
			_, err := Substitute(doc, invoice.NewReplacements(invoice.TokenLateFeeLabel, tt.label))
			require.NoError(t, err)

			require.NoError(t, StyleSummary(doc, tt.applyLateFee))

			cell := lateFeeLabel(doc)
			assert.Equal(t, tt.label, cell.Text())
			for _, p := range cell.Paragraphs() {
				for _, r := range p.Runs() {
					assert.Equal(t, tt.wantColor, r.Color())
					assert.Equal(t, FontName, r.Font())
				}
			}
			if tt.wantColor != "" {
				require.Len(t, cell.Paragraphs(), 1)
				assert.Len(t, cell.Paragraphs()[0].Runs(), 1)
			}
		})
	}
}

func TestStyleSummaryMalformed(t *testing.T) {
	fourRows := testutil.DefaultTemplateOptions().SummaryRows

	tests := []struct {
		name string
		opts []testutil.TemplateOption
	}{
		{name: "missing summary", opts: []testutil.TemplateOption{testutil.WithoutSummary()}},
		{name: "three rows", opts: []testutil.TemplateOption{testutil.WithSummaryRows(fourRows[:3]...)}},
		{
			name: "five rows",
			opts: []testutil.TemplateOption{testutil.WithSummaryRows(append(fourRows, []string{"TOTAL:", "[grandtotal]"})...)},
		},
		{
			name: "single cell row",
			opts: []testutil.TemplateOption{testutil.WithSummaryRows(
				fourRows[0], fourRows[1], []string{"DISCOUNT:"}, fourRows[3],
			)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openTemplate(t, tt.opts...)
			err := StyleSummary(doc, true)
			require.Error(t, err)
			assert.True(t, ierr.IsMalformedTemplate(err))
		})
	}
}

func TestStyleSummaryLateFeeRowFromSchema(t *testing.T) {
	rows := testutil.DefaultTemplateOptions().SummaryRows
	doc := openTemplate(t, testutil.WithSummaryRows(rows[0], rows[3], rows[1], rows[2]))
	_, err := Substitute(doc, invoice.NewReplacements(invoice.TokenLateFeeLabel, invoice.LateFeeLabel))
	require.NoError(t, err)

	schema := DefaultTemplateSchema
	schema.LateFeeRow = 1
	require.NoError(t, styleSummary(doc, schema, true))

	label := doc.Tables()[1].Rows()[1].Cells()[0]
	assert.Equal(t, invoice.LateFeeLabel, label.Text())
	assert.Equal(t, LateFeeColor, label.Paragraphs()[0].Runs()[0].Color())
	assert.Empty(t, lateFeeLabel(doc).Paragraphs()[0].Runs()[0].Color())
}
