package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/marketixlab/invoicegen/internal/api/dto"
	"github.com/marketixlab/invoicegen/internal/cache"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/converter"
	"github.com/marketixlab/invoicegen/internal/docgen"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/numbering"
	"github.com/marketixlab/invoicegen/internal/pdf"
	"github.com/marketixlab/invoicegen/internal/postgres"
	"github.com/marketixlab/invoicegen/internal/service"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/marketixlab/invoicegen/internal/validator"
)

func main() {
	input := flag.String("input", "-", "Invoice request JSON file, - reads stdin")
	outDir := flag.String("out", ".", "Directory the generated files are written to")
	docxOnly := flag.Bool("docx-only", false, "Only write the .docx document, skip PDF conversion")
	nextNumber := flag.Bool("next-number", false, "Print the next suggested invoice number and exit")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	validator.NewValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	invoiceService, cleanup, err := newInvoiceService(ctx, cfg, logger, *docxOnly)
	if err != nil {
		logger.Fatalw("Failed to initialize invoice service", "error", err)
	}
	defer cleanup()

	if *nextNumber {
		next, err := invoiceService.NextInvoiceNumber(ctx)
		if err != nil {
			logger.Fatalw("Failed to compute next invoice number", "error", err)
		}
		fmt.Println(next.InvoiceNumber)
		return
	}

	req, err := readRequest(*input)
	if err != nil {
		logger.Fatalw("Failed to read invoice request", "input", *input, "error", err)
	}

	var resp *dto.GenerateInvoiceResponse
	if *docxOnly {
		resp, err = invoiceService.GenerateDocument(ctx, *req)
	} else {
		resp, err = invoiceService.GenerateInvoice(ctx, *req)
	}
	if err != nil {
		logger.Fatalw("Failed to generate invoice", "invoice_number", req.InvoiceNumber, "error", err)
	}

	for _, artifact := range []*dto.ArtifactResponse{resp.Document, resp.PDF} {
		if artifact == nil {
			continue
		}
		path := filepath.Join(*outDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			logger.Fatalw("Failed to write output", "path", path, "error", err)
		}
		fmt.Println(path)
	}
}

// newInvoiceService wires the pipeline the same way the server does, without the http layer
func newInvoiceService(ctx context.Context, cfg *config.Configuration, log *logger.Logger, docxOnly bool) (service.InvoiceService, func(), error) {
	cleanup := func() {}

	var db *postgres.DB
	if cfg.Numbering.Backend == types.NumberingBackendPostgres {
		var err error
		if db, err = postgres.NewDB(cfg, log); err != nil {
			return nil, cleanup, err
		}
		cleanup = db.Close
	}

	store, err := numbering.NewStore(cfg, db, log)
	if err != nil {
		return nil, cleanup, err
	}
	if pgStore, ok := store.(*numbering.PostgresStore); ok {
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, cleanup, err
		}
	}

	var generator pdf.Generator
	if !docxOnly {
		conv, err := converter.NewConverter(cfg, log)
		if err != nil {
			return nil, cleanup, err
		}
		generator = pdf.NewGenerator(cfg, conv, log)
	}

	templates := docgen.NewTemplateLoader(cfg, cache.Initialize(cfg, log), log)
	params := service.ServiceParams{
		Logger:    log,
		Config:    cfg,
		Renderer:  docgen.NewRenderer(cfg, templates, generator, log),
		Numbering: numbering.NewService(cfg, store, log),
	}
	return service.NewInvoiceService(params), cleanup, nil
}

func readRequest(path string) (*dto.GenerateInvoiceRequest, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var req dto.GenerateInvoiceRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
