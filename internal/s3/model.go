package s3

import (
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
)

// Document is one archived invoice artifact
type Document struct {
	ID   string       `json:"id"`
	Data []byte       `json:"data"`
	Kind DocumentKind `json:"kind"`
}

type DocumentKind string

const (
	DocumentKindDocx DocumentKind = "docx"
	DocumentKindPdf  DocumentKind = "pdf"
)

// ContentType returns the mime type stored with the object
func (k DocumentKind) ContentType() string {
	switch k {
	case DocumentKindDocx:
		return invoice.ContentTypeDocx
	case DocumentKindPdf:
		return invoice.ContentTypePDF
	default:
		return "application/octet-stream"
	}
}

func NewDocxDocument(id string, data []byte) *Document {
	return &Document{ID: id, Data: data, Kind: DocumentKindDocx}
}

func NewPdfDocument(id string, data []byte) *Document {
	return &Document{ID: id, Data: data, Kind: DocumentKindPdf}
}
