package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/numbering"
	"github.com/marketixlab/invoicegen/internal/postgres"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	if *dryRun {
		fmt.Println(numbering.SequencesSchema)
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	if err := numbering.NewPostgresStore(db, logger).EnsureSchema(ctx); err != nil {
		logger.Fatalw("Failed to create invoice_sequences table", "error", err)
	}

	fmt.Println("Migration process completed")
}
