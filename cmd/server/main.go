package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketixlab/invoicegen/internal/api"
	v1 "github.com/marketixlab/invoicegen/internal/api/v1"
	"github.com/marketixlab/invoicegen/internal/cache"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/converter"
	"github.com/marketixlab/invoicegen/internal/docgen"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/numbering"
	"github.com/marketixlab/invoicegen/internal/pdf"
	"github.com/marketixlab/invoicegen/internal/postgres"
	"github.com/marketixlab/invoicegen/internal/s3"
	"github.com/marketixlab/invoicegen/internal/service"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/marketixlab/invoicegen/internal/validator"
	"go.uber.org/fx"
)

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			config.NewConfig,

			logger.NewLogger,

			cache.Initialize,

			provideDB,

			converter.NewConverter,
			pdf.NewGenerator,

			docgen.NewTemplateLoader,
			docgen.NewRenderer,

			numbering.NewStore,
			numbering.NewService,

			s3.NewService,
		),
	)

	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewInvoiceService,
		),
	)

	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			validator.NewValidator,
			migrateSequences,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideDB connects only when the numbering backend needs postgres
func provideDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	if cfg.Numbering.Backend != types.NumberingBackendPostgres {
		return nil, nil
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Invoice: v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func migrateSequences(lc fx.Lifecycle, store numbering.Store, log *logger.Logger) {
	pgStore, ok := store.(*numbering.PostgresStore)
	if !ok {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Ensuring invoice_sequences table exists")
			return pgStore.EnsureSchema(ctx)
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
