// Package docx edits WordprocessingML (.docx) packages in memory. It covers the subset of the
// format invoice templates need: body paragraphs, runs and their fonts, tables, cell borders
// and shading. Everything it does not understand is carried through untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"
	"github.com/h2non/filetype"
)

const (
	// ContentType is the MIME type of a .docx package
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	mainDocumentPart = "word/document.xml"
)

var (
	ErrNotPackage = errors.New("not a zip based office package")
	ErrNoMainPart = errors.New("package has no word/document.xml part")
	ErrNoBody     = errors.New("document has no body")
)

type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Document is an opened .docx package. The main document part is held as an XML tree and
// mutated in place, every other part is written back byte for byte.
type Document struct {
	parts []part
	xml   *etree.Document
	body  *etree.Element
}

// Open reads and parses the .docx at path
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read parses a .docx package from memory. The slice is not retained.
func Read(data []byte) (*Document, error) {
	if !filetype.Is(data, "zip") && !filetype.Is(data, "docx") {
		return nil, ErrNotPackage
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(ErrNotPackage, err.Error())
	}

	doc := &Document{}
	for _, f := range zr.File {
		content, err := readZipFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "reading part %s", f.Name)
		}
		doc.parts = append(doc.parts, part{
			name:     f.Name,
			method:   f.Method,
			modified: f.Modified,
			data:     content,
		})

		if f.Name != mainDocumentPart {
			continue
		}
		doc.xml = etree.NewDocument()
		if err := doc.xml.ReadFromBytes(content); err != nil {
			return nil, errors.Wrap(err, "parsing word/document.xml")
		}
	}

	if doc.xml == nil {
		return nil, ErrNoMainPart
	}

	root := doc.xml.Root()
	if root == nil {
		return nil, ErrNoBody
	}
	doc.body = root.SelectElement("w:body")
	if doc.body == nil {
		return nil, ErrNoBody
	}

	return doc, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Paragraphs returns the paragraphs that sit directly in the document body, in order.
// Paragraphs inside tables are reached through Tables.
func (d *Document) Paragraphs() []*Paragraph {
	elements := d.body.SelectElements("w:p")
	paragraphs := make([]*Paragraph, 0, len(elements))
	for _, el := range elements {
		paragraphs = append(paragraphs, &Paragraph{el: el})
	}
	return paragraphs
}

// Tables returns the tables that sit directly in the document body, in order
func (d *Document) Tables() []*Table {
	elements := d.body.SelectElements("w:tbl")
	tables := make([]*Table, 0, len(elements))
	for _, el := range elements {
		tables = append(tables, &Table{el: el})
	}
	return tables
}

// WriteTo serializes the package as a zip archive
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	main, err := d.xml.WriteToBytes()
	if err != nil {
		return 0, errors.Wrap(err, "serializing word/document.xml")
	}

	cw := &countWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, p := range d.parts {
		header := &zip.FileHeader{
			Name:   p.name,
			Method: p.method,
		}
		if !p.modified.IsZero() {
			header.Modified = p.modified
		}

		fw, err := zw.CreateHeader(header)
		if err != nil {
			return cw.n, errors.Wrapf(err, "writing part %s", p.name)
		}

		data := p.data
		if p.name == mainDocumentPart {
			data = main
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, errors.Wrapf(err, "writing part %s", p.name)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Bytes serializes the package into memory
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
