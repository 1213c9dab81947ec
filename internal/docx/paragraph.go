package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Alignment is the horizontal justification of a paragraph (w:jc)
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Paragraph wraps a w:p element
type Paragraph struct {
	el *etree.Element
}

// Text returns the visible text of the paragraph. Tabs and line breaks are rendered as
// "\t" and "\n".
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// SetText replaces the paragraph content with a single run holding text. Paragraph
// properties and the formatting of the first run are kept.
func (p *Paragraph) SetText(text string) {
	var rPr *etree.Element
	if runs := p.Runs(); len(runs) > 0 {
		if existing := runs[0].el.SelectElement("w:rPr"); existing != nil {
			rPr = existing.Copy()
		}
	}

	p.Clear()
	r := p.AddRun(text)
	if rPr != nil {
		r.el.InsertChildAt(0, rPr)
	}
}

// Clear removes every run, hyperlink and field from the paragraph, keeping w:pPr
func (p *Paragraph) Clear() {
	removeChildren(p.el, func(child *etree.Element) bool {
		return isTag(child, "w:pPr")
	})
}

// runContainers hold runs that belong to the paragraph text flow. Drawings, VML pictures
// and alternate content carry their own paragraphs (text boxes) and are never entered.
var runContainers = []string{"w:hyperlink", "w:smartTag", "w:fldSimple", "w:ins", "w:customXml"}

// Runs returns the runs of the paragraph in document order, including runs nested in
// hyperlinks, smart tags, simple fields and tracked insertions
func (p *Paragraph) Runs() []*Run {
	return collectRuns(p.el, nil)
}

func collectRuns(parent *etree.Element, runs []*Run) []*Run {
	for _, child := range parent.ChildElements() {
		switch {
		case isTag(child, "w:r"):
			runs = append(runs, &Run{el: child})
		case isTag(child, runContainers...):
			runs = collectRuns(child, runs)
		}
	}
	return runs
}

// AddRun appends a run holding text
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{el: p.el.CreateElement("w:r")}
	r.appendText(text)
	return r
}

// SetAlignment sets the paragraph justification
func (p *Paragraph) SetAlignment(a Alignment) {
	pPr := propertiesOf(p.el, "w:pPr")
	jc := orderedChild(pPr, "w:jc", paragraphPropertyOrder)
	jc.CreateAttr("w:val", string(a))
}

// Alignment returns the paragraph justification, empty when inherited from the style
func (p *Paragraph) Alignment() Alignment {
	pPr := p.el.SelectElement("w:pPr")
	if pPr == nil {
		return ""
	}
	jc := pPr.SelectElement("w:jc")
	if jc == nil {
		return ""
	}
	return Alignment(jc.SelectAttrValue("w:val", ""))
}

// Run wraps a w:r element
type Run struct {
	el *etree.Element
}

func (r *Run) Text() string {
	var b strings.Builder
	for _, child := range r.el.ChildElements() {
		switch child.FullTag() {
		case "w:t":
			b.WriteString(child.Text())
		case "w:tab":
			b.WriteByte('\t')
		case "w:br", "w:cr":
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SetText replaces the text of the run, keeping its formatting
func (r *Run) SetText(text string) {
	removeChildren(r.el, func(child *etree.Element) bool {
		return !isTag(child, "w:t", "w:tab", "w:br", "w:cr")
	})
	r.appendText(text)
}

func (r *Run) appendText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var pending strings.Builder
	flush := func() {
		if pending.Len() == 0 {
			return
		}
		s := pending.String()
		t := r.el.CreateElement("w:t")
		if strings.TrimSpace(s) != s {
			t.CreateAttr("xml:space", "preserve")
		}
		t.SetText(s)
		pending.Reset()
	}

	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.el.CreateElement("w:tab")
		case '\n', '\r':
			flush()
			r.el.CreateElement("w:br")
		default:
			pending.WriteRune(ch)
		}
	}
	flush()
}

// SetFont sets the typeface for every script slot, East Asian included
func (r *Run) SetFont(name string) {
	rFonts := orderedChild(r.properties(), "w:rFonts", runPropertyOrder)
	rFonts.CreateAttr("w:ascii", name)
	rFonts.CreateAttr("w:hAnsi", name)
	rFonts.CreateAttr("w:cs", name)
	rFonts.CreateAttr("w:eastAsia", name)
}

// Font returns the ASCII typeface of the run, empty when inherited
func (r *Run) Font() string {
	return r.propertyAttr("w:rFonts", "w:ascii")
}

// EastAsianFont returns the East Asian typeface of the run, empty when inherited
func (r *Run) EastAsianFont() string {
	return r.propertyAttr("w:rFonts", "w:eastAsia")
}

// SetSize sets the font size in points
func (r *Run) SetSize(points float64) {
	sz := orderedChild(r.properties(), "w:sz", runPropertyOrder)
	sz.CreateAttr("w:val", strconv.Itoa(int(points*2)))
}

// Size returns the font size in points, zero when inherited
func (r *Run) Size() float64 {
	halfPoints, err := strconv.Atoi(r.propertyAttr("w:sz", "w:val"))
	if err != nil {
		return 0
	}
	return float64(halfPoints) / 2
}

// SetColor sets the text color as an RRGGBB hex string, a leading # is accepted
func (r *Run) SetColor(hex string) {
	color := orderedChild(r.properties(), "w:color", runPropertyOrder)
	color.CreateAttr("w:val", normalizeHex(hex))
}

// Color returns the RRGGBB text color, empty when inherited
func (r *Run) Color() string {
	return r.propertyAttr("w:color", "w:val")
}

func (r *Run) properties() *etree.Element {
	return propertiesOf(r.el, "w:rPr")
}

func (r *Run) propertyAttr(tag, attr string) string {
	rPr := r.el.SelectElement("w:rPr")
	if rPr == nil {
		return ""
	}
	el := rPr.SelectElement(tag)
	if el == nil {
		return ""
	}
	return el.SelectAttrValue(attr, "")
}

func normalizeHex(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}
