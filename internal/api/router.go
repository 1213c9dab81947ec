package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/marketixlab/invoicegen/internal/api/v1"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/rest/middleware"
	"github.com/marketixlab/invoicegen/internal/types"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Invoice *v1.InvoiceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("/generate", handlers.Invoice.GenerateInvoice)
		invoices.POST("/generate/docx", handlers.Invoice.DownloadDocument)
		invoices.POST("/generate/pdf", handlers.Invoice.DownloadPDF)
		invoices.GET("/next-number", handlers.Invoice.NextInvoiceNumber)
		invoices.GET("/archive/:number/docx", handlers.Invoice.GetArchivedDocument)
		invoices.GET("/archive/:number/pdf", handlers.Invoice.GetArchivedPDF)
	}
}
