package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/converter"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	// RenderInvoicePdf converts a rendered .docx invoice into PDF bytes. No temporary file
	// outlives the call.
	RenderInvoicePdf(ctx context.Context, document []byte, invoiceNumber string) ([]byte, error)
}

type service struct {
	converter converter.Converter
	workDir   string
	logger    *logger.Logger
}

// NewGenerator creates a new PDF service writing its temporary files to
// cfg.Converter.WorkDir
func NewGenerator(cfg *config.Configuration, conv converter.Converter, log *logger.Logger) Generator {
	workDir := cfg.Converter.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &service{
		converter: conv,
		workDir:   workDir,
		logger:    log,
	}
}

// TempFiles returns the temporary .docx and .pdf paths used for an invoice
func TempFiles(workDir, invoiceNumber string) (docxPath, pdfPath string) {
	return filepath.Join(workDir, fmt.Sprintf("temp_%s.docx", invoiceNumber)),
		filepath.Join(workDir, fmt.Sprintf("temp_%s.pdf", invoiceNumber))
}

// RenderInvoicePdf implements Generator
func (s *service) RenderInvoicePdf(ctx context.Context, document []byte, invoiceNumber string) ([]byte, error) {
	if err := validateInvoiceNumber(invoiceNumber); err != nil {
		return nil, err
	}

	docxPath, pdfPath := TempFiles(s.workDir, invoiceNumber)
	defer s.cleanup(docxPath, pdfPath)

	if err := os.WriteFile(docxPath, document, 0o600); err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("writing %s", docxPath).
			WithHint("The PDF could not be generated").
			Mark(ierr.ErrSystem)
	}

	start := time.Now()
	output, err := s.converter.Convert(ctx, converter.NewConvertOpts(
		converter.WithInputFile(docxPath),
		converter.WithOutputFile(pdfPath),
	))
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("converting invoice %s", invoiceNumber).
			Mark(ierr.ErrConversion)
	}
	if output != pdfPath {
		defer s.cleanup(output)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("converter produced no output for invoice %s", invoiceNumber).
			WithHint("The PDF could not be generated").
			WithReportableDetails(map[string]any{
				"converter": s.converter.Kind(),
			}).
			Mark(ierr.ErrConversion)
	}

	if !filetype.Is(data, "pdf") {
		return nil, ierr.NewErrorf("converter output for invoice %s is not a pdf", invoiceNumber).
			WithHint("The PDF could not be generated").
			WithReportableDetails(map[string]any{
				"converter": s.converter.Kind(),
				"size":      len(data),
			}).
			Mark(ierr.ErrConversion)
	}

	s.logger.Infow("rendered invoice pdf",
		"invoice_number", invoiceNumber,
		"converter", s.converter.Kind(),
		"size", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

func (s *service) cleanup(files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			s.logger.Warnw("failed to remove temporary file", "file", file, "error", err)
		}
	}
}

// validateInvoiceNumber keeps the temporary files inside the work directory
func validateInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" ||
		strings.ContainsAny(invoiceNumber, `/\`) ||
		strings.Contains(invoiceNumber, "..") {
		return ierr.NewErrorf("invalid invoice number %q", invoiceNumber).
			WithHint("Invoice numbers must not be empty or contain path separators").
			Mark(ierr.ErrValidation)
	}
	return nil
}
