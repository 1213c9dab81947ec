package docgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marketixlab/invoicegen/internal/cache"
	"github.com/marketixlab/invoicegen/internal/config"
	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
	"github.com/marketixlab/invoicegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T, path string) (*TemplateLoader, *cache.InMemoryCache) {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.Template.Path = path
	c := cache.NewInMemoryCache(cfg)
	return NewTemplateLoader(cfg, c, logger.NewNopLogger()), c
}

func TestTemplateLoaderLoad(t *testing.T) {
	loader, c := newLoader(t, testutil.WriteInvoiceTemplate(t))
	ctx := context.Background()

	doc, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Tables(), 2)
	assert.Equal(t, 1, c.ItemCount())

	// a cached load still yields an independent document
	doc.Paragraphs()[0].SetText("changed")
	again, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE", again.Paragraphs()[0].Text())
	assert.Equal(t, 1, c.ItemCount())
}

func TestTemplateLoaderReloadsReplacedTemplate(t *testing.T) {
	path := testutil.WriteInvoiceTemplate(t)
	loader, c := newLoader(t, path)
	ctx := context.Background()

	_, err := loader.Load(ctx)
	require.NoError(t, err)

	replacement := testutil.NewInvoiceTemplate(testutil.WithItemRows(
		[]string{"ITEM", "UNIT", "QTY", "AMOUNT"},
		[]string{"[item]", "[price]", "[qty]", "[total]"},
	))
	require.NoError(t, os.WriteFile(path, replacement, 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	doc, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ITEM", doc.Tables()[0].Rows()[0].Cells()[0].Text())
	assert.Equal(t, 1, c.ItemCount(), "stale template must be evicted")
}

func TestTemplateLoaderMissing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "Invoice_Template.docx")
			},
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "not a docx",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "Invoice_Template.docx")
				require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, tt.setup(t))
			_, err := loader.Load(context.Background())
			require.Error(t, err)
			assert.True(t, ierr.IsMissingTemplate(err))
		})
	}
}

func TestTemplateLoaderDeletedAfterCaching(t *testing.T) {
	path := testutil.WriteInvoiceTemplate(t)
	loader, _ := newLoader(t, path)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsMissingTemplate(err))
}

func TestTemplateLoaderWithoutCache(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Template.Path = testutil.WriteInvoiceTemplate(t)
	loader := NewTemplateLoader(cfg, nil, logger.NewNopLogger())

	doc, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.NoError(t, DefaultTemplateSchema.Check(doc))
}
