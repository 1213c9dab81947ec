package invoice

// Placeholders understood by the invoice template
const (
	TokenClientName    = "{{client_name}}"
	TokenClientPhone   = "{{client_phone}}"
	TokenClientEmail   = "{{client_email}}"
	TokenClientAddress = "{{client_address}}"

	TokenInvoiceNumber = "{{invoice_number}}"
	TokenInvoiceDate   = "{{invoice_date}}"
	TokenDueDate       = "{{due_date}}"

	TokenLateFeeLabel = "{{LATE FEE:}}"

	TokenSubtotal   = "[subtotal]"
	TokenTax        = "[tax]"
	TokenDiscount   = "[discount]"
	TokenLateFee    = "[latefee]"
	TokenGrandTotal = "[grandtotal]"
)

// LateFeeLabel is the text the late fee label token resolves to when the fee applies. The
// summary styler looks for it to highlight the row.
const LateFeeLabel = "LATE FEE"

// ClientInfo builds the client section replacements in template order
func ClientInfo(name, phone, email, address string) Replacements {
	return NewReplacements(
		TokenClientName, name,
		TokenClientPhone, phone,
		TokenClientEmail, email,
		TokenClientAddress, address,
	)
}

// InvoiceDetails builds the invoice header replacements in template order
func InvoiceDetails(number, invoiceDate, dueDate string) Replacements {
	return NewReplacements(
		TokenInvoiceNumber, number,
		TokenInvoiceDate, invoiceDate,
		TokenDueDate, dueDate,
	)
}
