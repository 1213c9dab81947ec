package invoice

import (
	"strings"

	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/samber/lo"
)

// Replacement maps one literal template token to its value
type Replacement struct {
	Token string
	Value string
}

// Replacements is an insertion ordered token to value mapping. The zero value is empty and
// ready to use.
type Replacements struct {
	entries []Replacement
}

// NewReplacements builds a mapping from alternating token, value pairs. A trailing token
// without a value maps to "".
func NewReplacements(pairs ...string) Replacements {
	var r Replacements
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		r.Set(pairs[i], value)
	}
	return r
}

// Set assigns value to token. An existing token keeps its position.
func (r *Replacements) Set(token, value string) {
	for i := range r.entries {
		if r.entries[i].Token == token {
			r.entries[i].Value = value
			return
		}
	}
	r.entries = append(r.entries, Replacement{Token: token, Value: value})
}

func (r Replacements) Get(token string) (string, bool) {
	for _, e := range r.entries {
		if e.Token == token {
			return e.Value, true
		}
	}
	return "", false
}

// Merge sets every entry of other on r, in other's order
func (r *Replacements) Merge(other Replacements) {
	for _, e := range other.entries {
		r.Set(e.Token, e.Value)
	}
}

func (r Replacements) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the mapping in insertion order
func (r Replacements) Entries() []Replacement {
	return append([]Replacement(nil), r.entries...)
}

func (r Replacements) Tokens() []string {
	return lo.Map(r.entries, func(e Replacement, _ int) string {
		return e.Token
	})
}

// Apply replaces every token occurring in text with its value
func (r Replacements) Apply(text string) string {
	for _, e := range r.entries {
		if strings.Contains(text, e.Token) {
			text = strings.ReplaceAll(text, e.Token, e.Value)
		}
	}
	return text
}

// Validate rejects mappings whose result would depend on the order entries are applied in.
// Tokens must be non-empty, no token may contain another and no value may contain a token.
func (r Replacements) Validate() error {
	for i, e := range r.entries {
		if e.Token == "" {
			return ierr.NewError("replacement token is empty").
				WithHint("Placeholder tokens must not be empty").
				Mark(ierr.ErrValidation)
		}

		for j, other := range r.entries {
			if i == j {
				continue
			}
			if strings.Contains(other.Token, e.Token) {
				return ierr.NewErrorf("token %q overlaps token %q", e.Token, other.Token).
					WithHint("Placeholder tokens must not contain each other").
					WithReportableDetails(map[string]any{
						"token":      e.Token,
						"overlapped": other.Token,
					}).
					Mark(ierr.ErrValidation)
			}
			if strings.Contains(other.Value, e.Token) {
				return ierr.NewErrorf("value of %q contains token %q", other.Token, e.Token).
					WithHintf("The value for %s must not contain the placeholder %s", other.Token, e.Token).
					WithReportableDetails(map[string]any{
						"token": e.Token,
						"field": other.Token,
					}).
					Mark(ierr.ErrValidation)
			}
		}

		if strings.Contains(e.Value, e.Token) {
			return ierr.NewErrorf("value of %q contains its own token", e.Token).
				WithHintf("The value for %s must not contain the placeholder itself", e.Token).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
