package numbering

import (
	"context"
	"time"

	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/domain/invoice"
	"github.com/marketixlab/invoicegen/internal/logger"
)

// Suggestion is the next free invoice number and the counter value it uses
type Suggestion struct {
	Number string `json:"invoice_number"`
	Count  int64  `json:"count"`
}

type Service interface {
	// Next returns the number the next invoice should use
	Next(ctx context.Context) (*Suggestion, error)
	// Commit advances the counter when used is the current suggestion
	Commit(ctx context.Context, used string) (bool, error)
	// Prefix is the part every valid invoice number starts with
	Prefix() string
}

type service struct {
	store  Store
	prefix string
	// year pins the numbering year, zero follows the clock
	year   int
	now    func() time.Time
	logger *logger.Logger
}

func NewService(cfg *config.Configuration, store Store, log *logger.Logger) Service {
	return &service{
		store:  store,
		prefix: cfg.Numbering.Prefix,
		year:   cfg.Numbering.Year,
		now:    time.Now,
		logger: log,
	}
}

func (s *service) currentYear() int {
	if s.year != 0 {
		return s.year
	}
	return s.now().Year()
}

func (s *service) Next(ctx context.Context) (*Suggestion, error) {
	return s.next(ctx, s.currentYear())
}

func (s *service) next(ctx context.Context, year int) (*Suggestion, error) {
	last, err := s.store.LastValue(ctx, s.prefix, year)
	if err != nil {
		return nil, err
	}

	count := last + 1
	return &Suggestion{
		Number: invoice.FormatNumber(s.prefix, year, count),
		Count:  count,
	}, nil
}

func (s *service) Commit(ctx context.Context, used string) (bool, error) {
	year := s.currentYear()
	next, err := s.next(ctx, year)
	if err != nil {
		return false, err
	}
	if used != next.Number {
		s.logger.Debugw("custom invoice number used, counter unchanged",
			"invoice_number", used,
			"suggested", next.Number)
		return false, nil
	}

	advanced, err := s.store.Advance(ctx, s.prefix, year, next.Count)
	if err != nil {
		return false, err
	}
	if advanced {
		s.logger.Infow("invoice counter advanced", "invoice_number", used, "count", next.Count)
	}
	return advanced, nil
}

func (s *service) Prefix() string {
	return invoice.NumberPrefix(s.prefix, s.currentYear())
}
