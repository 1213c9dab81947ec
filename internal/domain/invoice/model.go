package invoice

import (
	"fmt"

	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/shopspring/decimal"
)

const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
)

// InvoiceData is everything the document pipeline needs to render one invoice. It is built
// per request and never stored.
type InvoiceData struct {
	// InvoiceNumber names the output and temporary files
	InvoiceNumber string

	ClientInfo     Replacements
	InvoiceDetails Replacements
	// Financials holds pre-formatted amounts, see Totals.Financials
	Financials Replacements

	Items []LineItem

	// ApplyLateFee shows the late fee label and amount and highlights the label
	ApplyLateFee bool
}

// Validate checks the invariants the renderer relies on
func (d *InvoiceData) Validate() error {
	if d.InvoiceNumber == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Please provide an invoice number").
			Mark(ierr.ErrValidation)
	}

	if len(d.Items) == 0 {
		return ierr.NewError("at least one line item is required").
			WithHint("At least one valid item is required").
			Mark(ierr.ErrValidation)
	}

	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			return ierr.WithError(err).
				WithReportableDetails(map[string]any{
					"item_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// LineItem is one billed row of the invoice
type LineItem struct {
	Description string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	// Total is UnitPrice x Quantity, computed once by NewLineItem
	Total decimal.Decimal
}

func NewLineItem(description string, unitPrice, quantity decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Total:       unitPrice.Mul(quantity),
	}
}

// IsValid reports whether the item would be accepted by Validate
func (i LineItem) IsValid() bool {
	return i.Validate() == nil
}

func (i LineItem) Validate() error {
	if i.Description == "" {
		return ierr.NewError("line item description is required").
			WithHint("Every item needs a description").
			Mark(ierr.ErrValidation)
	}
	if !i.UnitPrice.IsPositive() {
		return ierr.NewError("line item unit price must be positive").
			WithHintf("Unit price of %q must be greater than zero", i.Description).
			Mark(ierr.ErrValidation)
	}
	if !i.Quantity.IsPositive() {
		return ierr.NewError("line item quantity must be positive").
			WithHintf("Quantity of %q must be greater than zero", i.Description).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Artifact is a generated file held in memory
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (a *Artifact) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// RenderResult carries the artifacts produced for one invoice. PDF is nil when only the
// document was requested.
type RenderResult struct {
	InvoiceNumber string
	Document      *Artifact
	PDF           *Artifact
}

func DocumentFilename(invoiceNumber string) string {
	return fmt.Sprintf("Invoice_%s.docx", invoiceNumber)
}

func PDFFilename(invoiceNumber string) string {
	return fmt.Sprintf("Invoice_%s.pdf", invoiceNumber)
}
