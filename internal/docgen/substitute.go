package docgen

import (
	"strings"

	"github.com/marketixlab/invoicegen/internal/docx"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
)

// Substitute replaces every token of replacements in the body paragraphs and in every
// paragraph of every body table cell. Paragraphs without a token are left untouched. The
// mapping is validated first, so the result does not depend on entry order and applying the
// same mapping again changes nothing.
func Substitute(doc *docx.Document, replacements invoice.Replacements) (*docx.Document, error) {
	if err := replacements.Validate(); err != nil {
		return nil, err
	}

	for _, p := range doc.Paragraphs() {
		substituteParagraph(p, replacements)
	}

	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					substituteParagraph(p, replacements)
				}
			}
		}
	}
	return doc, nil
}

func substituteParagraph(p *docx.Paragraph, replacements invoice.Replacements) {
	text := p.Text()
	if !containsAny(text, replacements.Tokens()) {
		return
	}
	p.SetText(replacements.Apply(text))
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
