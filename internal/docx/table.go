package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// BorderSide names one edge of a table cell
type BorderSide string

const (
	BorderTop    BorderSide = "top"
	BorderLeft   BorderSide = "left"
	BorderBottom BorderSide = "bottom"
	BorderRight  BorderSide = "right"
)

var cellSides = []BorderSide{BorderTop, BorderLeft, BorderBottom, BorderRight}

// Table wraps a w:tbl element
type Table struct {
	el *etree.Element
}

func (t *Table) Rows() []*Row {
	elements := t.el.SelectElements("w:tr")
	rows := make([]*Row, 0, len(elements))
	for _, el := range elements {
		rows = append(rows, &Row{el: el})
	}
	return rows
}

// ColumnCount returns the number of grid columns. Tables without a w:tblGrid report the
// cell count of their last row.
func (t *Table) ColumnCount() int {
	if grid := t.el.SelectElement("w:tblGrid"); grid != nil {
		if cols := grid.SelectElements("w:gridCol"); len(cols) > 0 {
			return len(cols)
		}
	}
	rows := t.Rows()
	if len(rows) == 0 {
		return 0
	}
	return len(rows[len(rows)-1].Cells())
}

// AddRow appends an empty row with one cell per grid column. Cell widths are copied from
// the grid.
func (t *Table) AddRow() *Row {
	var widths []string
	if grid := t.el.SelectElement("w:tblGrid"); grid != nil {
		for _, col := range grid.SelectElements("w:gridCol") {
			widths = append(widths, col.SelectAttrValue("w:w", ""))
		}
	}

	count := len(widths)
	if count == 0 {
		count = t.ColumnCount()
	}

	tr := etree.NewElement("w:tr")
	for i := 0; i < count; i++ {
		tc := tr.CreateElement("w:tc")
		tcPr := tc.CreateElement("w:tcPr")
		if i < len(widths) && widths[i] != "" {
			tcW := tcPr.CreateElement("w:tcW")
			tcW.CreateAttr("w:w", widths[i])
			tcW.CreateAttr("w:type", "dxa")
		}
		tc.CreateElement("w:p")
	}

	rows := t.el.SelectElements("w:tr")
	if len(rows) == 0 {
		t.el.AddChild(tr)
	} else {
		t.el.InsertChildAt(rows[len(rows)-1].Index()+1, tr)
	}
	return &Row{el: tr}
}

// RemoveRow detaches r from the table
func (t *Table) RemoveRow(r *Row) {
	t.el.RemoveChild(r.el)
}

// Row wraps a w:tr element
type Row struct {
	el *etree.Element
}

func (r *Row) Cells() []*Cell {
	elements := r.el.SelectElements("w:tc")
	cells := make([]*Cell, 0, len(elements))
	for _, el := range elements {
		cells = append(cells, &Cell{el: el})
	}
	return cells
}

// Cell wraps a w:tc element
type Cell struct {
	el *etree.Element
}

// Paragraphs returns the paragraphs of the cell. Every valid cell holds at least one.
func (c *Cell) Paragraphs() []*Paragraph {
	elements := c.el.SelectElements("w:p")
	paragraphs := make([]*Paragraph, 0, len(elements))
	for _, el := range elements {
		paragraphs = append(paragraphs, &Paragraph{el: el})
	}
	return paragraphs
}

// Text returns the text of the cell paragraphs joined by newlines
func (c *Cell) Text() string {
	paragraphs := c.Paragraphs()
	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, p.Text())
	}
	return strings.Join(texts, "\n")
}

// SetText replaces the cell content with a single paragraph holding text. Cell properties
// are kept, paragraph properties of the first paragraph are kept as well.
func (c *Cell) SetText(text string) {
	var pPr *etree.Element
	if paragraphs := c.Paragraphs(); len(paragraphs) > 0 {
		if existing := paragraphs[0].el.SelectElement("w:pPr"); existing != nil {
			pPr = existing.Copy()
		}
	}

	removeChildren(c.el, func(child *etree.Element) bool {
		return isTag(child, "w:tcPr")
	})

	p := &Paragraph{el: c.el.CreateElement("w:p")}
	if pPr != nil {
		p.el.AddChild(pPr)
	}
	p.AddRun(text)
}

// SetShading fills the cell background with an RRGGBB color
func (c *Cell) SetShading(fill string) {
	shd := orderedChild(c.properties(), "w:shd", cellPropertyOrder)
	shd.CreateAttr("w:val", "clear")
	shd.CreateAttr("w:color", "auto")
	shd.CreateAttr("w:fill", normalizeHex(fill))
}

// Shading returns the RRGGBB background fill, empty when none is set
func (c *Cell) Shading() string {
	tcPr := c.el.SelectElement("w:tcPr")
	if tcPr == nil {
		return ""
	}
	shd := tcPr.SelectElement("w:shd")
	if shd == nil {
		return ""
	}
	return shd.SelectAttrValue("w:fill", "")
}

// SetBorders draws a single line of the given color and size (eighths of a point) on all
// four edges of the cell
func (c *Cell) SetBorders(color string, size int) {
	borders := orderedChild(c.properties(), "w:tcBorders", cellPropertyOrder)
	for _, side := range cellSides {
		edge := orderedChild(borders, "w:"+string(side), borderOrder)
		edge.CreateAttr("w:val", "single")
		edge.CreateAttr("w:sz", strconv.Itoa(size))
		edge.CreateAttr("w:space", "0")
		edge.CreateAttr("w:color", normalizeHex(color))
	}
}

// BorderColor returns the color of one edge, empty when the edge inherits the table border
func (c *Cell) BorderColor(side BorderSide) string {
	return c.borderAttr(side, "w:color")
}

// BorderSize returns the width of one edge in eighths of a point, zero when inherited
func (c *Cell) BorderSize(side BorderSide) int {
	size, err := strconv.Atoi(c.borderAttr(side, "w:sz"))
	if err != nil {
		return 0
	}
	return size
}

func (c *Cell) borderAttr(side BorderSide, attr string) string {
	tcPr := c.el.SelectElement("w:tcPr")
	if tcPr == nil {
		return ""
	}
	borders := tcPr.SelectElement("w:tcBorders")
	if borders == nil {
		return ""
	}
	edge := borders.SelectElement("w:" + string(side))
	if edge == nil {
		return ""
	}
	return edge.SelectAttrValue(attr, "")
}

func (c *Cell) properties() *etree.Element {
	return propertiesOf(c.el, "w:tcPr")
}
