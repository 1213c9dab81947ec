package config

import (
	"testing"

	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigReadsFile(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
	assert.Equal(t, "INV", cfg.Numbering.Prefix)
	assert.Zero(t, cfg.Numbering.Year, "zero follows the current year")
	assert.Equal(t, types.NumberingBackendFile, cfg.Numbering.Backend)
	assert.Equal(t, types.ConverterPandoc, cfg.Converter.Kind)
	assert.True(t, decimal.RequireFromString("0.02").Equal(cfg.Invoice.LateFeeRate))
	assert.Equal(t, 5, cfg.Postgres.MaxOpenConns)
	assert.False(t, cfg.S3.Enabled)
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("INVOICEGEN_NUMBERING_PREFIX", "MXL")
	t.Setenv("INVOICEGEN_INVOICE_LATE_FEE_RATE", "0.05")
	t.Setenv("INVOICEGEN_CONVERTER_KIND", "libreoffice")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "MXL", cfg.Numbering.Prefix)
	assert.True(t, decimal.RequireFromString("0.05").Equal(cfg.Invoice.LateFeeRate))
	assert.Equal(t, types.ConverterLibreOffice, cfg.Converter.Kind)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Configuration) {}},
		{name: "unknown converter", mutate: func(c *Configuration) { c.Converter.Kind = "wkhtmltopdf" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Configuration) { c.Numbering.Backend = "redis" }, wantErr: true},
		{name: "missing prefix", mutate: func(c *Configuration) { c.Numbering.Prefix = "" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Configuration) { c.S3.Enabled = true }, wantErr: true},
		{
			name: "s3 with bucket",
			mutate: func(c *Configuration) {
				c.S3.Enabled = true
				c.S3.Bucket = "invoices"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "invoices", SSLMode: "disable"}
	assert.Equal(t, "user=u password=p dbname=invoices host=db port=5432 sslmode=disable", c.GetDSN())
}
