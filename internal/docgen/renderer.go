package docgen

import (
	"context"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/pdf"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/shopspring/decimal"
)

// Renderer produces the .docx and PDF artifacts of an invoice
type Renderer struct {
	templates      *TemplateLoader
	pdf            pdf.Generator
	schema         TemplateSchema
	formatCurrency CurrencyFormatter
	logger         *logger.Logger
}

func NewRenderer(cfg *config.Configuration, templates *TemplateLoader, pdfGenerator pdf.Generator, log *logger.Logger) *Renderer {
	prefix := cfg.Invoice.CurrencyPrefix
	return &Renderer{
		templates: templates,
		pdf:       pdfGenerator,
		schema:    DefaultTemplateSchema,
		formatCurrency: func(amount decimal.Decimal) string {
			return types.FormatCurrencyWithPrefix(prefix, amount)
		},
		logger: log,
	}
}

// FormatCurrency renders an amount with the configured currency prefix
func (r *Renderer) FormatCurrency(amount decimal.Decimal) string {
	return r.formatCurrency(amount)
}

// Render fills the template with data and converts the result to PDF. Either both artifacts
// are returned or an error.
func (r *Renderer) Render(ctx context.Context, data *invoice.InvoiceData) (*invoice.RenderResult, error) {
	document, err := r.RenderDocument(ctx, data)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := r.pdf.RenderInvoicePdf(ctx, document.Data, data.InvoiceNumber)
	if err != nil {
		return nil, err
	}

	return &invoice.RenderResult{
		InvoiceNumber: data.InvoiceNumber,
		Document:      document,
		PDF: &invoice.Artifact{
			Filename:    invoice.PDFFilename(data.InvoiceNumber),
			ContentType: invoice.ContentTypePDF,
			Data:        pdfBytes,
		},
	}, nil
}

// RenderDocument produces the filled in .docx only
func (r *Renderer) RenderDocument(ctx context.Context, data *invoice.InvoiceData) (*invoice.Artifact, error) {
	start := time.Now()

	if err := data.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.templates.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.schema.Check(doc); err != nil {
		return nil, err
	}

	if _, err := Substitute(doc, BuildReplacements(data)); err != nil {
		return nil, err
	}

	if _, err := buildItemsTable(doc, r.schema, data.Items, r.formatCurrency); err != nil {
		return nil, err
	}

	if err := styleSummary(doc, r.schema, data.ApplyLateFee); err != nil {
		return nil, err
	}

	applyBodyFont(doc)

	out, err := serialize(doc)
	if err != nil {
		return nil, err
	}

	r.logger.Infow("rendered invoice document",
		"invoice_number", data.InvoiceNumber,
		"template", r.templates.Path(),
		"items", len(data.Items),
		"late_fee", data.ApplyLateFee,
		"size", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &invoice.Artifact{
		Filename:    invoice.DocumentFilename(data.InvoiceNumber),
		ContentType: invoice.ContentTypeDocx,
		Data:        out,
	}, nil
}

// BuildReplacements merges client info, invoice details and financials and resolves the late
// fee tokens. Without a late fee the label and the amount both render empty.
func BuildReplacements(data *invoice.InvoiceData) invoice.Replacements {
	var r invoice.Replacements
	r.Merge(data.ClientInfo)
	r.Merge(data.InvoiceDetails)
	r.Merge(data.Financials)

	if data.ApplyLateFee {
		r.Set(invoice.TokenLateFeeLabel, invoice.LateFeeLabel)
	} else {
		r.Set(invoice.TokenLateFeeLabel, "")
		r.Set(invoice.TokenLateFee, "")
	}
	return r
}

func serialize(doc *docx.Document) ([]byte, error) {
	out, err := doc.Bytes()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("serializing invoice document").
			WithHint("The invoice document could not be generated").
			Mark(ierr.ErrSystem)
	}
	return out, nil
}
