package docx

import (
	"github.com/beevik/etree"
	"github.com/samber/lo"
)

// Word rejects property elements that appear out of schema order, so every property
// element is inserted at the position CT_RPr, CT_PPr, CT_TcPr and CT_TcBorders require.
var (
	runPropertyOrder = []string{
		"w:rStyle", "w:rFonts", "w:b", "w:bCs", "w:i", "w:iCs", "w:caps", "w:smallCaps",
		"w:strike", "w:dstrike", "w:outline", "w:shadow", "w:emboss", "w:imprint", "w:noProof",
		"w:snapToGrid", "w:vanish", "w:webHidden", "w:color", "w:spacing", "w:w", "w:kern",
		"w:position", "w:sz", "w:szCs", "w:highlight", "w:u", "w:effect", "w:bdr", "w:shd",
		"w:fitText", "w:vertAlign", "w:rtl", "w:cs", "w:em", "w:lang", "w:eastAsianLayout",
		"w:specVanish", "w:oMath",
	}

	paragraphPropertyOrder = []string{
		"w:pStyle", "w:keepNext", "w:keepLines", "w:pageBreakBefore", "w:framePr",
		"w:widowControl", "w:numPr", "w:suppressLineNumbers", "w:pBdr", "w:shd", "w:tabs",
		"w:suppressAutoHyphens", "w:kinsoku", "w:wordWrap", "w:overflowPunct",
		"w:topLinePunct", "w:autoSpaceDE", "w:autoSpaceDN", "w:bidi", "w:adjustRightInd",
		"w:snapToGrid", "w:spacing", "w:ind", "w:contextualSpacing", "w:mirrorIndents",
		"w:suppressOverlap", "w:jc", "w:textDirection", "w:textAlignment",
		"w:textboxTightWrap", "w:outlineLvl", "w:divId", "w:cnfStyle", "w:rPr", "w:sectPr",
		"w:pPrChange",
	}

	cellPropertyOrder = []string{
		"w:cnfStyle", "w:tcW", "w:gridSpan", "w:hMerge", "w:vMerge", "w:tcBorders", "w:shd",
		"w:noWrap", "w:tcMar", "w:textDirection", "w:tcFitText", "w:vAlign", "w:hideMark",
	}

	borderOrder = []string{
		"w:top", "w:start", "w:left", "w:bottom", "w:end", "w:right", "w:insideH",
		"w:insideV", "w:tl2br", "w:tr2bl",
	}
)

// propertiesOf returns the property container (w:rPr, w:pPr, w:tcPr) of parent, creating
// it as the first child when missing
func propertiesOf(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	el := etree.NewElement(tag)
	parent.InsertChildAt(0, el)
	return el
}

// orderedChild returns the child of parent with the given tag, creating it at the position
// order requires. Children not listed in order are left where they are.
func orderedChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}

	el := etree.NewElement(tag)
	rank := lo.IndexOf(order, tag)
	for _, sibling := range parent.ChildElements() {
		if lo.IndexOf(order, sibling.FullTag()) > rank {
			parent.InsertChildAt(sibling.Index(), el)
			return el
		}
	}
	parent.AddChild(el)
	return el
}

func removeChildren(parent *etree.Element, keep func(*etree.Element) bool) {
	for _, child := range parent.ChildElements() {
		if !keep(child) {
			parent.RemoveChild(child)
		}
	}
}

func isTag(el *etree.Element, tags ...string) bool {
	return lo.Contains(tags, el.FullTag())
}
