package types

import (
	"time"
)

// InvoiceDateLayout is the dd.mm.yyyy layout used for every date printed on an invoice
const InvoiceDateLayout = "02.01.2006"

// ParseInvoiceDate parses a dd.mm.yyyy date
func ParseInvoiceDate(value string) (time.Time, error) {
	return time.Parse(InvoiceDateLayout, value)
}

// IsValidInvoiceDate reports whether value is a real calendar date in dd.mm.yyyy form
func IsValidInvoiceDate(value string) bool {
	_, err := ParseInvoiceDate(value)
	return err == nil
}

// FormatInvoiceDate formats t as dd.mm.yyyy
func FormatInvoiceDate(t time.Time) string {
	return t.Format(InvoiceDateLayout)
}
