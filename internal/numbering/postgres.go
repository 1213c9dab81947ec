package numbering

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/postgres"
)

const (
	// SequencesSchema is the DDL of the postgres counter table
	SequencesSchema = `
		CREATE TABLE IF NOT EXISTS invoice_sequences (
			prefix     VARCHAR(20) NOT NULL,
			year       INTEGER     NOT NULL,
			last_value BIGINT      NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (prefix, year)
		)`

	selectSequence = `
		SELECT prefix, year, last_value, updated_at
		FROM invoice_sequences
		WHERE prefix = $1 AND year = $2`

	lockSequence = selectSequence + ` FOR UPDATE`

	upsertSequence = `
		INSERT INTO invoice_sequences (prefix, year, last_value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (prefix, year) DO UPDATE
		SET last_value = EXCLUDED.last_value,
			updated_at = EXCLUDED.updated_at`
)

// PostgresStore keeps one counter row per prefix and year in invoice_sequences
type PostgresStore struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPostgresStore(db *postgres.DB, log *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: log}
}

// EnsureSchema creates the sequence table when it does not exist yet
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.GetQuerier(ctx).ExecContext(ctx, SequencesSchema); err != nil {
		return ierr.WithError(err).
			WithMessage("creating invoice_sequences table").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *PostgresStore) LastValue(ctx context.Context, prefix string, year int) (int64, error) {
	seq, err := s.get(ctx, selectSequence, prefix, year)
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

func (s *PostgresStore) Advance(ctx context.Context, prefix string, year int, value int64) (bool, error) {
	advanced := false
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		seq, err := s.get(ctx, lockSequence, prefix, year)
		if err != nil {
			return err
		}
		if seq.LastValue != value-1 {
			return nil
		}

		if _, err := s.db.GetQuerier(ctx).ExecContext(ctx, upsertSequence, prefix, year, value, time.Now().UTC()); err != nil {
			return ierr.WithError(err).
				WithMessage("saving invoice sequence").
				WithReportableDetails(map[string]any{
					"prefix": prefix,
					"year":   year,
				}).
				Mark(ierr.ErrDatabase)
		}
		advanced = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if advanced {
		s.logger.Debugw("advanced invoice sequence", "prefix", prefix, "year", year, "last_value", value)
	}
	return advanced, nil
}

// get returns a zero sequence when the row does not exist
func (s *PostgresStore) get(ctx context.Context, query, prefix string, year int) (*invoice.Sequence, error) {
	var seq invoice.Sequence
	err := s.db.GetQuerier(ctx).GetContext(ctx, &seq, query, prefix, year)
	if errors.Is(err, sql.ErrNoRows) {
		return &invoice.Sequence{Prefix: prefix, Year: year}, nil
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("reading invoice sequence").
			WithReportableDetails(map[string]any{
				"prefix": prefix,
				"year":   year,
			}).
			Mark(ierr.ErrDatabase)
	}
	return &seq, nil
}
