package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPDFGenerator stubs the PDF stage. It satisfies pdf.Generator without importing it so
// that every package, the PDF stage included, can use testutil.
type MockPDFGenerator struct {
	mock.Mock
}

func NewMockPDFGenerator() *MockPDFGenerator {
	return &MockPDFGenerator{}
}

// RenderInvoicePdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderInvoicePdf(ctx context.Context, document []byte, invoiceNumber string) ([]byte, error) {
	args := m.Called(ctx, document, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// SamplePDF is a minimal byte stream carrying the PDF magic number
var SamplePDF = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
