package testutil

import (
	"context"
	"path/filepath"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/marketixlab/invoicegen/internal/validator"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides common functionality for service test suites. Every test gets
// a fresh template on disk, a counter file in a temp dir and a mocked PDF stage.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	config *config.Configuration
	logger *logger.Logger
	pdf    *MockPDFGenerator
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	s.logger = logger.NewNopLogger()
	s.now = time.Date(2025, time.April, 21, 10, 0, 0, 0, time.UTC)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupConfig()
	s.pdf = NewMockPDFGenerator()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupConfig() {
	cfg := config.GetDefaultConfig()
	cfg.Deployment.Mode = types.ModeLocal
	cfg.Template.Path = WriteInvoiceTemplate(s.T())
	cfg.Converter.WorkDir = s.T().TempDir()
	cfg.Numbering.Year = s.now.Year()
	cfg.Numbering.Backend = types.NumberingBackendFile
	cfg.Numbering.CounterFile = filepath.Join(s.T().TempDir(), "invoice_count.txt")
	s.config = cfg
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdf
}

// GetNow returns the fixed clock used by the suite
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
