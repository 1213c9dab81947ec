// Package numbering suggests sequential invoice numbers and advances the counter once a
// suggested number has been used.
package numbering

import (
	"context"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/postgres"
	"github.com/marketixlab/invoicegen/internal/types"
)

// Store persists the last used counter value
type Store interface {
	// LastValue returns the last used counter, 0 when nothing was used yet
	LastValue(ctx context.Context, prefix string, year int) (int64, error)
	// Advance moves the counter to value when it is still at value-1.
	// It reports whether the counter moved.
	Advance(ctx context.Context, prefix string, year int, value int64) (bool, error)
}

// NewStore returns the store for the configured backend. db may be nil for the file backend.
func NewStore(cfg *config.Configuration, db *postgres.DB, log *logger.Logger) (Store, error) {
	if err := cfg.Numbering.Backend.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Numbering.Backend {
	case types.NumberingBackendPostgres:
		return NewPostgresStore(db, log), nil
	default:
		return NewFileStore(cfg.Numbering.CounterFile, log), nil
	}
}
