package service

import (
	"context"

	"github.com/marketixlab/invoicegen/internal/api/dto"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/s3"
	"github.com/marketixlab/invoicegen/internal/types"
)

type InvoiceService interface {
	// GenerateInvoice renders the document and its PDF
	GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
	// GenerateDocument renders the document only, the converter is not invoked
	GenerateDocument(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
	NextInvoiceNumber(ctx context.Context) (*dto.NextInvoiceNumberResponse, error)
	// GetArchivedDocument returns a previously archived artifact of an invoice
	GetArchivedDocument(ctx context.Context, invoiceNumber string, kind s3.DocumentKind) (*dto.ArtifactResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) GenerateInvoice(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	return s.generate(ctx, req, true)
}

func (s *invoiceService) GenerateDocument(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	return s.generate(ctx, req, false)
}

func (s *invoiceService) NextInvoiceNumber(ctx context.Context) (*dto.NextInvoiceNumberResponse, error) {
	next, err := s.Numbering.Next(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.NextInvoiceNumberResponse{
		InvoiceNumber: next.Number,
		Prefix:        s.Numbering.Prefix(),
	}, nil
}

func (s *invoiceService) generate(ctx context.Context, req dto.GenerateInvoiceRequest, withPDF bool) (*dto.GenerateInvoiceResponse, error) {
	if err := req.Validate(s.Numbering.Prefix()); err != nil {
		return nil, err
	}

	if err := s.ensureNotArchived(ctx, req.InvoiceNumber); err != nil {
		return nil, err
	}

	data, totals := s.buildInvoiceData(req)

	var result *invoice.RenderResult
	if withPDF {
		rendered, err := s.Renderer.Render(ctx, data)
		if err != nil {
			return nil, err
		}
		result = rendered
	} else {
		document, err := s.Renderer.RenderDocument(ctx, data)
		if err != nil {
			return nil, err
		}
		result = &invoice.RenderResult{InvoiceNumber: data.InvoiceNumber, Document: document}
	}

	resp := &dto.GenerateInvoiceResponse{
		InvoiceNumber: result.InvoiceNumber,
		Totals:        dto.NewTotalsResponse(totals),
		Document:      dto.NewArtifactResponse(result.Document),
		PDF:           dto.NewArtifactResponse(result.PDF),
	}

	if err := s.archive(ctx, result, resp); err != nil {
		return nil, err
	}

	// the counter only moves when the suggested number was used
	advanced, err := s.Numbering.Commit(ctx, data.InvoiceNumber)
	if err != nil {
		s.Logger.Errorw("failed to advance invoice counter",
			"invoice_number", data.InvoiceNumber,
			"request_id", types.GetRequestID(ctx),
			"error", err)
	}
	resp.CounterAdvanced = advanced

	s.Logger.Infow("generated invoice",
		"invoice_number", data.InvoiceNumber,
		"items", len(data.Items),
		"with_pdf", withPDF,
		"counter_advanced", advanced,
		"request_id", types.GetRequestID(ctx))

	return resp, nil
}

// buildInvoiceData turns a validated request into the pipeline input
func (s *invoiceService) buildInvoiceData(req dto.GenerateInvoiceRequest) (*invoice.InvoiceData, invoice.Totals) {
	invoiceDate, dueDate := req.Dates(s.now())
	totals := invoice.CalculateTotals(req.TotalsInput(s.Config.Invoice.LateFeeRate))

	return &invoice.InvoiceData{
		InvoiceNumber: req.InvoiceNumber,
		ClientInfo: invoice.ClientInfo(
			req.Client.Name,
			req.Client.Phone,
			req.Client.Email,
			req.Client.Address,
		),
		InvoiceDetails: invoice.InvoiceDetails(req.InvoiceNumber, invoiceDate, dueDate),
		Financials:     totals.Financials(s.Renderer.FormatCurrency),
		Items:          req.LineItems(),
		ApplyLateFee:   req.ApplyLateFee,
	}, totals
}

func (s *invoiceService) GetArchivedDocument(ctx context.Context, invoiceNumber string, kind s3.DocumentKind) (*dto.ArtifactResponse, error) {
	if s.S3 == nil {
		return nil, ierr.NewError("invoice archive is disabled").
			WithHint("Invoice archiving is not enabled").
			Mark(ierr.ErrInvalidOperation)
	}
	if invoiceNumber == "" {
		return nil, ierr.NewError("invoice number is empty").
			WithHint("Please provide an invoice number").
			Mark(ierr.ErrValidation)
	}

	data, err := s.S3.GetDocument(ctx, invoiceNumber, kind)
	if err != nil {
		return nil, err
	}

	filename := invoice.DocumentFilename(invoiceNumber)
	if kind == s3.DocumentKindPdf {
		filename = invoice.PDFFilename(invoiceNumber)
	}
	return dto.NewArtifactResponse(&invoice.Artifact{
		Filename:    filename,
		ContentType: kind.ContentType(),
		Data:        data,
	}), nil
}

// ensureNotArchived refuses an invoice number that already has an archived artifact, so a
// reused number never overwrites an earlier invoice
func (s *invoiceService) ensureNotArchived(ctx context.Context, invoiceNumber string) error {
	if s.S3 == nil {
		return nil
	}

	for _, kind := range []s3.DocumentKind{s3.DocumentKindDocx, s3.DocumentKindPdf} {
		exists, err := s.S3.Exists(ctx, invoiceNumber, kind)
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewErrorf("invoice %s is already archived", invoiceNumber).
				WithHintf("Invoice %s already exists, please use another invoice number", invoiceNumber).
				WithReportableDetails(map[string]any{
					"invoice_number": invoiceNumber,
					"kind":           kind,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return nil
}

type archiveUpload struct {
	document *s3.Document
	response *dto.ArtifactResponse
}

// archive uploads the artifacts and attaches presigned urls when S3 is configured
func (s *invoiceService) archive(ctx context.Context, result *invoice.RenderResult, resp *dto.GenerateInvoiceResponse) error {
	if s.S3 == nil {
		return nil
	}

	uploads := []archiveUpload{
		{document: s3.NewDocxDocument(result.InvoiceNumber, result.Document.Data), response: resp.Document},
	}
	if result.PDF != nil {
		uploads = append(uploads, archiveUpload{
			document: s3.NewPdfDocument(result.InvoiceNumber, result.PDF.Data),
			response: resp.PDF,
		})
	}

	for _, u := range uploads {
		if err := s.S3.UploadDocument(ctx, u.document); err != nil {
			return err
		}
		url, err := s.S3.GetPresignedUrl(ctx, u.document.ID, u.document.Kind)
		if err != nil {
			return err
		}
		u.response.URL = url
	}
	return nil
}
