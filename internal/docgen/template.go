// Package docgen turns invoice data into a filled in .docx document and hands it to the PDF
// stage. The template layout it expects is described by TemplateSchema.
package docgen

import (
	"context"
	"os"

	"github.com/marketixlab/invoicegen/internal/cache"
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/docx"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
)

// TemplateLoader opens the invoice template. Raw bytes are cached by path, modification time
// and size, every Load returns a freshly parsed document.
type TemplateLoader struct {
	path   string
	cache  cache.Cache
	logger *logger.Logger
}

// NewTemplateLoader creates a loader for cfg.Template.Path. The cache is optional.
func NewTemplateLoader(cfg *config.Configuration, c cache.Cache, log *logger.Logger) *TemplateLoader {
	return &TemplateLoader{
		path:   cfg.Template.Path,
		cache:  c,
		logger: log,
	}
}

func (l *TemplateLoader) Path() string {
	return l.path
}

// Load reads and parses the template. A missing, unreadable or non .docx file is an
// ErrMissingTemplate.
func (l *TemplateLoader) Load(ctx context.Context) (*docx.Document, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Read(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("parsing template %s", l.path).
			WithHint("The invoice template is not a valid .docx document").
			WithReportableDetails(map[string]any{
				"template": l.path,
			}).
			Mark(ierr.ErrMissingTemplate)
	}
	return doc, nil
}

func (l *TemplateLoader) read(ctx context.Context) ([]byte, error) {
	info, err := os.Stat(l.path)
	if err == nil && info.IsDir() {
		err = os.ErrNotExist
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("opening template %s", l.path).
			WithHint("The invoice template could not be found").
			WithReportableDetails(map[string]any{
				"template": l.path,
			}).
			Mark(ierr.ErrMissingTemplate)
	}

	key := cache.GenerateKey(cache.PrefixTemplate, l.path, info.ModTime().UnixNano(), info.Size())
	if l.cache != nil {
		if cached, ok := l.cache.Get(ctx, key); ok {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
		}
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("reading template %s", l.path).
			WithHint("The invoice template could not be read").
			WithReportableDetails(map[string]any{
				"template": l.path,
			}).
			Mark(ierr.ErrMissingTemplate)
	}

	if l.cache != nil {
		// older versions of the same template are stale
		l.cache.DeleteByPrefix(ctx, cache.GenerateKey(cache.PrefixTemplate, l.path)+":")
		l.cache.Set(ctx, key, data, 0)
	}
	l.logger.Debugw("loaded invoice template", "template", l.path, "size", len(data))
	return data, nil
}
