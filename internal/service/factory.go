package service

import (
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/docgen"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/numbering"
	"github.com/marketixlab/invoicegen/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger    *logger.Logger
	Config    *config.Configuration
	Renderer  *docgen.Renderer
	Numbering numbering.Service
	// S3 is nil when archiving is disabled
	S3 s3.Service
	// Clock defaults to time.Now
	Clock func() time.Time
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	renderer *docgen.Renderer,
	numbering numbering.Service,
	s3 s3.Service,
) ServiceParams {
	return ServiceParams{
		Logger:    logger,
		Config:    config,
		Renderer:  renderer,
		Numbering: numbering,
		S3:        s3,
		Clock:     time.Now,
	}
}

func (p ServiceParams) now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock()
}
