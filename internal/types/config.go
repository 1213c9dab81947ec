package types

import (
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/samber/lo"
)

type RunMode string

const (
	// ModeLocal runs the API server with local defaults
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
	// ModeCLI is used by the one-shot command line generator
	ModeCLI RunMode = "cli"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// ConverterKind names the external program used to turn a .docx into a PDF
type ConverterKind string

const (
	ConverterPandoc      ConverterKind = "pandoc"
	ConverterLibreOffice ConverterKind = "libreoffice"
)

func (k ConverterKind) String() string {
	return string(k)
}

func (k ConverterKind) Validate() error {
	allowed := []ConverterKind{
		ConverterPandoc,
		ConverterLibreOffice,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid converter kind").
			WithHint("Please configure a supported converter").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// NumberingBackend selects where the invoice sequence counter lives
type NumberingBackend string

const (
	NumberingBackendFile     NumberingBackend = "file"
	NumberingBackendPostgres NumberingBackend = "postgres"
)

func (b NumberingBackend) Validate() error {
	allowed := []NumberingBackend{
		NumberingBackendFile,
		NumberingBackendPostgres,
	}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid numbering backend").
			WithHint("Please configure a supported numbering backend").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
