package invoice

import (
	"github.com/shopspring/decimal"
)

// DefaultLateFeeRate is the share of the subtotal charged as a late fee
var DefaultLateFeeRate = decimal.NewFromFloat(0.02)

var hundred = decimal.NewFromInt(100)

// Totals are the computed amounts shown in the financial summary
type Totals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	LateFee    decimal.Decimal
	GrandTotal decimal.Decimal
}

// TotalsInput are the financial inputs of one invoice
type TotalsInput struct {
	Items []LineItem
	// TaxRate is a percentage, 10 means 10%
	TaxRate  decimal.Decimal
	Discount decimal.Decimal
	// ApplyLateFee charges LateFeeRate of the subtotal
	ApplyLateFee bool
	LateFeeRate  decimal.Decimal
}

// CalculateTotals computes subtotal, tax, late fee and grand total. The grand total is
// subtotal + tax - discount + late fee. A zero LateFeeRate falls back to DefaultLateFeeRate.
func CalculateTotals(in TotalsInput) Totals {
	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.Total)
	}

	tax := subtotal.Mul(in.TaxRate).Div(hundred)

	lateFee := decimal.Zero
	if in.ApplyLateFee {
		rate := in.LateFeeRate
		if rate.IsZero() {
			rate = DefaultLateFeeRate
		}
		lateFee = subtotal.Mul(rate)
	}

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   in.Discount,
		LateFee:    lateFee,
		GrandTotal: subtotal.Add(tax).Sub(in.Discount).Add(lateFee),
	}
}

// Financials renders the totals into the summary replacements using format for every amount
func (t Totals) Financials(format func(decimal.Decimal) string) Replacements {
	return NewReplacements(
		TokenSubtotal, format(t.Subtotal),
		TokenTax, format(t.Tax),
		TokenDiscount, format(t.Discount),
		TokenLateFee, format(t.LateFee),
		TokenGrandTotal, format(t.GrandTotal),
	)
}
