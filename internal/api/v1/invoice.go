package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketixlab/invoicegen/internal/api/dto"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/s3"
	"github.com/marketixlab/invoicegen/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// GenerateInvoice godoc
// @Summary Generate an invoice
// @Description Render the invoice document and its PDF, both returned base64 encoded
// @Tags Invoices
// @Accept json
// @Produce json
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice details"
// @Success 200 {object} dto.GenerateInvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/generate [post]
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to generate invoice", "invoice_number", req.InvoiceNumber, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadDocument godoc
// @Summary Generate an invoice document
// @Description Render the invoice and download the .docx file, no PDF is produced
// @Tags Invoices
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice details"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/generate/docx [post]
func (h *InvoiceHandler) DownloadDocument(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.GenerateDocument(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to generate invoice document", "invoice_number", req.InvoiceNumber, "error", err)
		c.Error(err)
		return
	}

	h.attachment(c, resp.Document)
}

// DownloadPDF godoc
// @Summary Generate an invoice PDF
// @Description Render the invoice and download the PDF file
// @Tags Invoices
// @Accept json
// @Produce application/pdf
// @Param invoice body dto.GenerateInvoiceRequest true "Invoice details"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/generate/pdf [post]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp, err := h.invoiceService.GenerateInvoice(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to generate invoice pdf", "invoice_number", req.InvoiceNumber, "error", err)
		c.Error(err)
		return
	}

	h.attachment(c, resp.PDF)
}

// NextInvoiceNumber godoc
// @Summary Suggest the next invoice number
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.NextInvoiceNumberResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /invoices/next-number [get]
func (h *InvoiceHandler) NextInvoiceNumber(c *gin.Context) {
	resp, err := h.invoiceService.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetArchivedDocument godoc
// @Summary Download an archived invoice document
// @Tags Invoices
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param number path string true "Invoice number"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/archive/{number}/docx [get]
func (h *InvoiceHandler) GetArchivedDocument(c *gin.Context) {
	h.archived(c, s3.DocumentKindDocx)
}

// GetArchivedPDF godoc
// @Summary Download an archived invoice PDF
// @Tags Invoices
// @Produce application/pdf
// @Param number path string true "Invoice number"
// @Success 200 {file} file
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/archive/{number}/pdf [get]
func (h *InvoiceHandler) GetArchivedPDF(c *gin.Context) {
	h.archived(c, s3.DocumentKindPdf)
}

func (h *InvoiceHandler) archived(c *gin.Context, kind s3.DocumentKind) {
	number := c.Param("number")
	resp, err := h.invoiceService.GetArchivedDocument(c.Request.Context(), number, kind)
	if err != nil {
		h.logger.Errorw("failed to get archived invoice", "invoice_number", number, "kind", kind, "error", err)
		c.Error(err)
		return
	}

	h.attachment(c, resp)
}

func (h *InvoiceHandler) bind(c *gin.Context) (dto.GenerateInvoiceRequest, bool) {
	var req dto.GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return req, false
	}
	return req, true
}

func (h *InvoiceHandler) attachment(c *gin.Context, artifact *dto.ArtifactResponse) {
	if artifact == nil {
		c.Error(ierr.NewError("artifact missing from response").
			WithHint("The requested file was not produced").
			Mark(ierr.ErrSystem))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	if artifact.URL != "" {
		c.Header("X-Archive-URL", artifact.URL)
	}
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
