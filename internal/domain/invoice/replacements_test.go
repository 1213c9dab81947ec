package invoice

import (
	"testing"

	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplacementsOrder(t *testing.T) {
	r := NewReplacements("b", "1", "a", "2")
	r.Set("c", "3")
	r.Set("b", "4")

	assert.Equal(t, []string{"b", "a", "c"}, r.Tokens())
	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestReplacementsMerge(t *testing.T) {
	r := ClientInfo("Ada", "555", "ada@example.com", "Jakarta")
	r.Merge(NewReplacements(TokenClientPhone, "777", TokenDueDate, "01.05.2025"))

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []string{
		TokenClientName, TokenClientPhone, TokenClientEmail, TokenClientAddress, TokenDueDate,
	}, r.Tokens())
	v, _ := r.Get(TokenClientPhone)
	assert.Equal(t, "777", v)
}

func TestReplacementsApply(t *testing.T) {
	r := NewReplacements("{{a}}", "x", "[b]", "")
	assert.Equal(t, "x and  and x", r.Apply("{{a}} and [b] and {{a}}"))
	assert.Equal(t, "untouched", r.Apply("untouched"))
}

func TestReplacementsValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Replacements
		wantErr bool
	}{
		{
			name: "invoice vocabulary",
			r: func() Replacements {
				r := ClientInfo("Ada", "555", "ada@example.com", "Jakarta")
				r.Merge(InvoiceDetails("INV2025001", "21.04.2025", "28.04.2025"))
				r.Merge(Totals{}.Financials(func(decimal.Decimal) string { return "" }))
				r.Set(TokenLateFeeLabel, LateFeeLabel)
				return r
			}(),
		},
		{
			name:    "empty token",
			r:       NewReplacements("", "x"),
			wantErr: true,
		},
		{
			name:    "token inside another token",
			r:       NewReplacements("[tax]", "1", "[tax]x", "2"),
			wantErr: true,
		},
		{
			name:    "value contains another token",
			r:       NewReplacements("{{client_name}}", "see {{client_phone}}", "{{client_phone}}", "555"),
			wantErr: true,
		},
		{
			name:    "value contains its own token",
			r:       NewReplacements("{{client_name}}", "{{client_name}} jr"),
			wantErr: true,
		},
		{
			name: "empty mapping",
			r:    Replacements{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
