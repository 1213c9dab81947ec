package converter

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/testutil"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNewConverter(t *testing.T) {
	cfg := config.GetDefaultConfig()

	c, err := NewConverter(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, types.ConverterPandoc, c.Kind())
	assert.Equal(t, "pandoc", c.(*pandoc).binaryPath)
	assert.Equal(t, 2*time.Minute, c.(*pandoc).timeout)

	cfg.Converter.Kind = types.ConverterLibreOffice
	cfg.Converter.BinaryPath = "/opt/libreoffice/program/soffice"
	c, err = NewConverter(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, types.ConverterLibreOffice, c.Kind())
	assert.Equal(t, "/opt/libreoffice/program/soffice", c.(*libreOffice).binaryPath)

	cfg.Converter.Kind = "wkhtmltopdf"
	_, err = NewConverter(cfg, logger.NewNopLogger())
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestPandocArgs(t *testing.T) {
	p := &pandoc{pdfEngine: "xelatex"}
	opts := NewConvertOpts(
		WithInputFile("/tmp/temp_INV2025001.docx"),
		WithOutputFile("/tmp/temp_INV2025001.pdf"),
		WithExtraArgs("-V", "geometry:margin=1in"),
	)

	assert.Equal(t, []string{
		"/tmp/temp_INV2025001.docx",
		"-o", "/tmp/temp_INV2025001.pdf",
		"--pdf-engine=xelatex",
		"-V", "geometry:margin=1in",
	}, p.args(opts))

	p.pdfEngine = ""
	assert.Equal(t, []string{"/tmp/in.docx", "-o", "/tmp/out.pdf"},
		p.args(ConvertOpts{InputFile: "/tmp/in.docx", OutputFile: "/tmp/out.pdf"}))
}

func TestLibreOfficeArgs(t *testing.T) {
	l := &libreOffice{}
	opts := ConvertOpts{
		InputFile:  "/work/temp_INV2025001.docx",
		OutputFile: "/work/out/temp_INV2025001.pdf",
	}

	assert.Equal(t, []string{
		"--headless",
		"--convert-to", "pdf",
		"--outdir", "/work/out",
		"/work/temp_INV2025001.docx",
	}, l.args(opts))
	assert.Equal(t, "/work/out/temp_INV2025001.pdf", l.producedFile(opts))
}

func TestConvertMissingBinary(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Converter.BinaryPath = "invoicegen-no-such-converter"

	c, err := NewConverter(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), ConvertOpts{InputFile: "in.docx", OutputFile: "out.pdf"})
	require.Error(t, err)
	assert.True(t, ierr.IsConversion(err))
}

func TestConvertRequiresFiles(t *testing.T) {
	c, err := NewConverter(config.GetDefaultConfig(), logger.NewNopLogger())
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), ConvertOpts{InputFile: "in.docx"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestConvertFailingBinary(t *testing.T) {
	falseBinary, err := exec.LookPath("false")
	if err != nil {
		t.Skip("Skipping because false is not available in the system")
	}

	cfg := config.GetDefaultConfig()
	cfg.Converter.BinaryPath = falseBinary
	c, err := NewConverter(cfg, logger.NewNopLogger())
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), ConvertOpts{InputFile: "in.docx", OutputFile: "out.pdf"})
	require.Error(t, err)
	assert.True(t, ierr.IsConversion(err))
}

type PandocConverterSuite struct {
	suite.Suite
	tempDir   string
	inputFile string
	converter Converter
}

func TestPandocConverter(t *testing.T) {
	suite.Run(t, new(PandocConverterSuite))
}

func (s *PandocConverterSuite) SetupTest() {
	// Check if pandoc and its default pdf engine are available in the system
	if _, err := exec.LookPath("pandoc"); err != nil {
		s.T().Skip("Skipping tests because pandoc is not available in the system")
		return
	}
	if _, err := exec.LookPath("pdflatex"); err != nil {
		s.T().Skip("Skipping tests because pdflatex is not available in the system")
		return
	}

	var err error
	s.tempDir, err = os.MkdirTemp("", "converter-test-*")
	s.Require().NoError(err)

	s.inputFile = filepath.Join(s.tempDir, "temp_INV2025001.docx")
	s.Require().NoError(os.WriteFile(s.inputFile, testutil.NewInvoiceTemplate(), 0644))

	s.converter, err = NewConverter(config.GetDefaultConfig(), logger.NewNopLogger())
	s.Require().NoError(err)
}

func (s *PandocConverterSuite) TearDownTest() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

func (s *PandocConverterSuite) TestConvert() {
	output := filepath.Join(s.tempDir, "temp_INV2025001.pdf")

	result, err := s.converter.Convert(context.Background(), NewConvertOpts(
		WithInputFile(s.inputFile),
		WithOutputFile(output),
	))
	s.Require().NoError(err)
	s.Equal(output, result)

	data, err := os.ReadFile(result)
	s.Require().NoError(err)
	s.True(len(data) > 4)
	s.Equal("%PDF", string(data[:4]))
}

func (s *PandocConverterSuite) TestConvertMissingInput() {
	_, err := s.converter.Convert(context.Background(), ConvertOpts{
		InputFile:  filepath.Join(s.tempDir, "missing.docx"),
		OutputFile: filepath.Join(s.tempDir, "missing.pdf"),
	})
	s.Error(err)
	s.True(ierr.IsConversion(err))
}

func (s *PandocConverterSuite) TestConvertCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.converter.Convert(ctx, ConvertOpts{
		InputFile:  s.inputFile,
		OutputFile: filepath.Join(s.tempDir, "cancelled.pdf"),
	})
	s.Error(err)
	s.True(ierr.IsConversion(err))
}
