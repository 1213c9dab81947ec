package dto

import (
	"strings"
	"time"

	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/marketixlab/invoicegen/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// LineItemRequest is one row of the items form. Rows without a description or with a
// non-positive price or quantity are dropped, see GenerateInvoiceRequest.LineItems.
type LineItemRequest struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
}

type GenerateInvoiceRequest struct {
	Client        ClientRequest `json:"client" validate:"required"`
	InvoiceNumber string        `json:"invoice_number" validate:"required"`

	// InvoiceDate and DueDate are dd.mm.yyyy, empty means today
	InvoiceDate string `json:"invoice_date,omitempty" validate:"omitempty,ddmmyyyy"`
	DueDate     string `json:"due_date,omitempty" validate:"omitempty,ddmmyyyy"`

	Items []LineItemRequest `json:"items" validate:"required"`

	// TaxRate is a percentage
	TaxRate      decimal.Decimal `json:"tax_rate" swaggertype:"string" validate:"gte=0"`
	Discount     decimal.Decimal `json:"discount" swaggertype:"string" validate:"gte=0"`
	ApplyLateFee bool            `json:"apply_late_fee"`
}

// Validate checks the request against the invoice number prefix of the current year
func (r *GenerateInvoiceRequest) Validate(numberPrefix string) error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !strings.HasPrefix(r.InvoiceNumber, numberPrefix) {
		return ierr.NewErrorf("invoice number %s does not start with %s", r.InvoiceNumber, numberPrefix).
			WithHintf("Invoice number must start with '%s'", numberPrefix).
			WithReportableDetails(map[string]any{
				"invoice_number": r.InvoiceNumber,
			}).
			Mark(ierr.ErrValidation)
	}

	if len(r.LineItems()) == 0 {
		return ierr.NewError("no valid line items").
			WithHint("At least one valid item is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LineItems returns the valid items in request order
func (r *GenerateInvoiceRequest) LineItems() []invoice.LineItem {
	items := lo.Map(r.Items, func(item LineItemRequest, _ int) invoice.LineItem {
		return invoice.NewLineItem(strings.TrimSpace(item.Description), item.UnitPrice, item.Quantity)
	})
	return lo.Filter(items, func(item invoice.LineItem, _ int) bool {
		return item.IsValid()
	})
}

// Dates resolves empty dates to now
func (r *GenerateInvoiceRequest) Dates(now time.Time) (invoiceDate, dueDate string) {
	today := types.FormatInvoiceDate(now)
	return lo.Ternary(r.InvoiceDate == "", today, r.InvoiceDate),
		lo.Ternary(r.DueDate == "", today, r.DueDate)
}

// TotalsInput collects the financial inputs for invoice.CalculateTotals
func (r *GenerateInvoiceRequest) TotalsInput(lateFeeRate decimal.Decimal) invoice.TotalsInput {
	return invoice.TotalsInput{
		Items:        r.LineItems(),
		TaxRate:      r.TaxRate,
		Discount:     r.Discount,
		ApplyLateFee: r.ApplyLateFee,
		LateFeeRate:  lateFeeRate,
	}
}

// ArtifactResponse carries one generated file. Data is base64 encoded in JSON.
type ArtifactResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Data        []byte `json:"data,omitempty"`
	URL         string `json:"url,omitempty"`
}

func NewArtifactResponse(a *invoice.Artifact) *ArtifactResponse {
	if a == nil {
		return nil
	}
	return &ArtifactResponse{
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        a.Size(),
		Data:        a.Data,
	}
}

type TotalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal" swaggertype:"string"`
	Tax        decimal.Decimal `json:"tax" swaggertype:"string"`
	Discount   decimal.Decimal `json:"discount" swaggertype:"string"`
	LateFee    decimal.Decimal `json:"late_fee" swaggertype:"string"`
	GrandTotal decimal.Decimal `json:"grand_total" swaggertype:"string"`
}

func NewTotalsResponse(t invoice.Totals) TotalsResponse {
	return TotalsResponse(t)
}

type GenerateInvoiceResponse struct {
	InvoiceNumber string            `json:"invoice_number"`
	Totals        TotalsResponse    `json:"totals"`
	Document      *ArtifactResponse `json:"document"`
	PDF           *ArtifactResponse `json:"pdf,omitempty"`
	// CounterAdvanced is true when the suggested invoice number was used
	CounterAdvanced bool `json:"counter_advanced"`
}

type NextInvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	Prefix        string `json:"prefix"`
}
