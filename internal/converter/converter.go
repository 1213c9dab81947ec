package converter

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/types"
)

// DefaultTimeout bounds a single conversion when none is configured
const DefaultTimeout = 2 * time.Minute

// Converter turns a .docx file into a PDF file using an external program
type Converter interface {
	// Convert converts opts.InputFile and returns the path of the produced PDF
	Convert(ctx context.Context, opts ConvertOpts) (string, error)
	Kind() types.ConverterKind
}

// ConvertOpts contains options for a single conversion
type ConvertOpts struct {
	// Input .docx file path
	InputFile string
	// Output PDF file path
	OutputFile string
	// Additional command-line arguments
	ExtraArgs []string
}

type ConvertOptsBuilder func(c *ConvertOpts)

func WithInputFile(inputFile string) ConvertOptsBuilder {
	return func(c *ConvertOpts) {
		c.InputFile = inputFile
	}
}

func WithOutputFile(outputFile string) ConvertOptsBuilder {
	return func(c *ConvertOpts) {
		c.OutputFile = outputFile
	}
}

func WithExtraArgs(extraArgs ...string) ConvertOptsBuilder {
	return func(c *ConvertOpts) {
		c.ExtraArgs = extraArgs
	}
}

// NewConvertOpts applies the builders to an empty ConvertOpts
func NewConvertOpts(opts ...ConvertOptsBuilder) ConvertOpts {
	var c ConvertOpts
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewConverter creates the converter selected by cfg.Converter.Kind
func NewConverter(cfg *config.Configuration, log *logger.Logger) (Converter, error) {
	if err := cfg.Converter.Kind.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Converter.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := runner{
		logger:     log,
		binaryPath: cfg.Converter.BinaryPath,
		timeout:    timeout,
	}

	switch cfg.Converter.Kind {
	case types.ConverterLibreOffice:
		if r.binaryPath == "" {
			r.binaryPath = "soffice"
		}
		return &libreOffice{runner: r}, nil
	default:
		if r.binaryPath == "" {
			r.binaryPath = "pandoc"
		}
		return &pandoc{runner: r, pdfEngine: cfg.Converter.PDFEngine}, nil
	}
}

// pandoc converts through `pandoc <input> -o <output>`, the PDF is typeset by a LaTeX engine
type pandoc struct {
	runner
	pdfEngine string
}

func (p *pandoc) Kind() types.ConverterKind {
	return types.ConverterPandoc
}

func (p *pandoc) Convert(ctx context.Context, opts ConvertOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := p.run(ctx, p.args(opts)); err != nil {
		return "", err
	}
	return opts.OutputFile, nil
}

func (p *pandoc) args(opts ConvertOpts) []string {
	args := []string{opts.InputFile, "-o", opts.OutputFile}
	if p.pdfEngine != "" {
		args = append(args, "--pdf-engine="+p.pdfEngine)
	}
	return append(args, opts.ExtraArgs...)
}

// libreOffice converts with a headless soffice. soffice names its output after the input
// file, so the result is moved to OutputFile when the names differ.
type libreOffice struct {
	runner
}

func (l *libreOffice) Kind() types.ConverterKind {
	return types.ConverterLibreOffice
}

func (l *libreOffice) Convert(ctx context.Context, opts ConvertOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := l.run(ctx, l.args(opts)); err != nil {
		return "", err
	}

	produced := l.producedFile(opts)
	if produced == opts.OutputFile {
		return produced, nil
	}
	if err := os.Rename(produced, opts.OutputFile); err != nil {
		os.Remove(produced)
		return "", ierr.WithError(err).
			WithMessage("moving converted pdf").
			WithHint("The PDF could not be generated").
			Mark(ierr.ErrConversion)
	}
	return opts.OutputFile, nil
}

func (l *libreOffice) args(opts ConvertOpts) []string {
	args := []string{
		"--headless",
		"--convert-to", "pdf",
		"--outdir", filepath.Dir(opts.OutputFile),
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, opts.InputFile)
}

func (l *libreOffice) producedFile(opts ConvertOpts) string {
	base := strings.TrimSuffix(filepath.Base(opts.InputFile), filepath.Ext(opts.InputFile))
	return filepath.Join(filepath.Dir(opts.OutputFile), base+".pdf")
}

func (o ConvertOpts) validate() error {
	if o.InputFile == "" || o.OutputFile == "" {
		return ierr.NewError("input and output files are required").
			WithHint("The PDF could not be generated").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// runner executes the converter binary with a deadline and captures its stderr
type runner struct {
	logger     *logger.Logger
	binaryPath string
	timeout    time.Duration
}

func (r runner) run(ctx context.Context, args []string) error {
	binary, err := exec.LookPath(r.binaryPath)
	if err != nil {
		return ierr.WithError(err).
			WithMessagef("converter %s not found", r.binaryPath).
			WithHint("The PDF converter is not installed").
			WithReportableDetails(map[string]any{
				"converter": r.binaryPath,
			}).
			Mark(ierr.ErrConversion)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	r.logger.Debugw("converter finished",
		"converter", r.binaryPath,
		"args", args,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err == nil {
		return nil
	}

	hint := "The PDF could not be generated"
	if ctx.Err() != nil {
		hint = "The PDF conversion timed out"
	}
	return ierr.WithError(err).
		WithMessagef("%s conversion failed", r.binaryPath).
		WithHint(hint).
		WithReportableDetails(map[string]any{
			"converter": r.binaryPath,
			"stderr":    stderr.String(),
		}).
		Mark(ierr.ErrConversion)
}
