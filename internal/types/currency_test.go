package types

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "zero is blank", amount: decimal.Zero, want: ""},
		{name: "zero with scale is blank", amount: decimal.RequireFromString("0.00"), want: ""},
		{name: "small integer", amount: decimal.NewFromInt(500), want: "Rp 500"},
		{name: "grouped integer", amount: decimal.NewFromInt(12345), want: "Rp 12,345"},
		{name: "millions", amount: decimal.NewFromInt(2150000), want: "Rp 2,150,000"},
		{name: "integral value with trailing zeros", amount: decimal.RequireFromString("1000.00"), want: "Rp 1,000"},
		{name: "two decimals", amount: decimal.RequireFromString("12345.6"), want: "Rp 12,345.60"},
		{name: "rounds to two places", amount: decimal.RequireFromString("1234567.895"), want: "Rp 1,234,567.90"},
		{name: "below one", amount: decimal.RequireFromString("0.5"), want: "Rp 0.50"},
		{name: "beyond int64", amount: decimal.RequireFromString("10000000000000000000"), want: "Rp 10,000,000,000,000,000,000"},
		{name: "fractional beyond int64", amount: decimal.RequireFromString("12345678901234567890.5"), want: "Rp 12,345,678,901,234,567,890.50"},
		{name: "negative", amount: decimal.RequireFromString("-1234567.5"), want: "Rp -1,234,567.50"},
		{name: "negative integer", amount: decimal.NewFromInt(-2500), want: "Rp -2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatCurrency_DecimalPointProperties(t *testing.T) {
	integral := []int64{1, 7, 999, 1000, 65536, 2000000, 123456789}
	for _, v := range integral {
		got := FormatCurrency(decimal.NewFromInt(v))
		assert.NotContains(t, got, ".", "integral amount %d", v)
		assert.True(t, strings.HasPrefix(got, "Rp "))
	}

	fractional := []string{"0.1", "1.25", "999.999", "1000.01", "31415.9265"}
	for _, v := range fractional {
		got := FormatCurrency(decimal.RequireFromString(v))
		_, frac, found := strings.Cut(got, ".")
		assert.True(t, found, "fractional amount %s", v)
		assert.Len(t, frac, 2, "fractional amount %s", v)
	}
}

func TestFormatCurrencyWithPrefix(t *testing.T) {
	assert.Equal(t, "IDR 1,500", FormatCurrencyWithPrefix("IDR", decimal.NewFromInt(1500)))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(decimal.NewFromInt(2)))
	assert.Equal(t, "3", FormatQuantity(decimal.RequireFromString("3.0")))
	assert.Equal(t, "1.5", FormatQuantity(decimal.RequireFromString("1.5")))
	assert.Equal(t, "0.25", FormatQuantity(decimal.RequireFromString("0.25")))
}

func TestGroupDigits(t *testing.T) {
	tests := map[string]string{
		"0":                    "0",
		"999":                  "999",
		"1000":                 "1,000",
		"100000":               "100,000",
		"-100000":              "-100,000",
		"9223372036854775808":  "9,223,372,036,854,775,808",
		"-9223372036854775809": "-9,223,372,036,854,775,809",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupDigits(in), in)
	}
}
