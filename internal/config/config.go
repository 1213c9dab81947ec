package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/marketixlab/invoicegen/internal/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Template   TemplateConfig   `mapstructure:"template" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Converter  ConverterConfig  `mapstructure:"converter" validate:"required"`
	Numbering  NumberingConfig  `mapstructure:"numbering" validate:"required"`
	Invoice    InvoiceConfig    `mapstructure:"invoice" validate:"required"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	S3         S3Config         `mapstructure:"s3"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// TemplateConfig points at the single .docx invoice template
type TemplateConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// ConverterConfig selects and tunes the external docx to pdf converter
type ConverterConfig struct {
	Kind       types.ConverterKind `mapstructure:"kind" validate:"required"`
	BinaryPath string              `mapstructure:"binary_path"`
	PDFEngine  string              `mapstructure:"pdf_engine"`
	WorkDir    string              `mapstructure:"work_dir"`
	Timeout    time.Duration       `mapstructure:"timeout"`
}

type NumberingConfig struct {
	Prefix string `mapstructure:"prefix" validate:"required"`
	// Year pins the numbering year, zero follows the current date
	Year        int                    `mapstructure:"year"`
	Backend     types.NumberingBackend `mapstructure:"backend" validate:"required"`
	CounterFile string                 `mapstructure:"counter_file"`
}

type InvoiceConfig struct {
	CurrencyPrefix string          `mapstructure:"currency_prefix" validate:"required"`
	LateFeeRate    decimal.Decimal `mapstructure:"late_fee_rate"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxOpenConns int `mapstructure:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns"`
}

type S3Config struct {
	Enabled               bool   `mapstructure:"enabled"`
	Region                string `mapstructure:"region"`
	Bucket                string `mapstructure:"bucket"`
	KeyPrefix             string `mapstructure:"key_prefix"`
	PresignExpiryDuration string `mapstructure:"presign_expiry_duration"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicegen")

	v.SetEnvPrefix("INVOICEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "config file not found, using defaults: %v\n", err)
	}

	var config Configuration
	if err := v.Unmarshal(&config, viper.DecodeHook(decimalHook())); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("template.path", d.Template.Path)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("converter.kind", d.Converter.Kind)
	v.SetDefault("converter.work_dir", d.Converter.WorkDir)
	v.SetDefault("converter.timeout", d.Converter.Timeout)
	v.SetDefault("numbering.prefix", d.Numbering.Prefix)
	v.SetDefault("numbering.backend", d.Numbering.Backend)
	v.SetDefault("numbering.counter_file", d.Numbering.CounterFile)
	v.SetDefault("invoice.currency_prefix", d.Invoice.CurrencyPrefix)
	v.SetDefault("invoice.late_fee_rate", d.Invoice.LateFeeRate.String())
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 5)
	v.SetDefault("postgres.max_idle_conns", 2)
	v.SetDefault("s3.presign_expiry_duration", "30m")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Converter.Kind.Validate(); err != nil {
		return err
	}
	if err := c.Numbering.Backend.Validate(); err != nil {
		return err
	}
	if c.S3.Enabled && c.S3.Bucket == "" {
		return errors.New("s3.bucket is required when s3 is enabled")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Template:   TemplateConfig{Path: "assets/templates/Invoice_Template_MarketixLab.docx"},
		Cache:      CacheConfig{Enabled: true, TTL: 10 * time.Minute},
		Converter: ConverterConfig{
			Kind:    types.ConverterPandoc,
			WorkDir: os.TempDir(),
			Timeout: 2 * time.Minute,
		},
		Numbering: NumberingConfig{
			Prefix:      "INV",
			Backend:     types.NumberingBackendFile,
			CounterFile: "invoice_count.txt",
		},
		Invoice: InvoiceConfig{
			CurrencyPrefix: types.DefaultCurrencyPrefix,
			LateFeeRate:    decimal.NewFromFloat(0.02),
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
