package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrefix is the only currency the invoices are rendered in
const DefaultCurrencyPrefix = "Rp"

// FormatCurrency renders an amount with grouped thousands, e.g. "Rp 12,345" or
// "Rp 12,345.60". Zero renders as an empty string so blank financial fields stay blank.
func FormatCurrency(amount decimal.Decimal) string {
	return FormatCurrencyWithPrefix(DefaultCurrencyPrefix, amount)
}

// FormatCurrencyWithPrefix is FormatCurrency with an explicit currency prefix
func FormatCurrencyWithPrefix(prefix string, amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}

	if amount.IsInteger() {
		return prefix + " " + groupDigits(amount.Truncate(0).String())
	}

	// StringFixed rounds half away from zero
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return prefix + " " + groupDigits(whole) + "." + frac
}

// FormatQuantity renders integral quantities without a fractional part and
// everything else as the plain decimal string
func FormatQuantity(quantity decimal.Decimal) string {
	if quantity.IsInteger() {
		return quantity.Truncate(0).String()
	}
	return quantity.String()
}

// groupDigits inserts thousands separators into an optionally signed digit string. It
// works on the decimal's own digits so amounts beyond int64 keep their value.
func groupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
