package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the invoice service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"invoice-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"INVOICE_API_PORT" envDefault:"8180"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// Extraction service (required credential, no fallback)
	ExtractionAPIKey     string        `env:"EXTRACTION_API_KEY,notEmpty"`
	ExtractionBaseURL    string        `env:"EXTRACTION_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	ExtractionModel      string        `env:"EXTRACTION_MODEL" envDefault:"gemini-2.5-flash"`
	ExtractionTimeout    time.Duration `env:"EXTRACTION_TIMEOUT" envDefault:"30s"`
	ExtractionMaxRetries int           `env:"EXTRACTION_MAX_RETRIES" envDefault:"1"`
	ExtractionRetryDelay time.Duration `env:"EXTRACTION_RETRY_DELAY" envDefault:"500ms"`

	// Default business profile, overridable per request
	BusinessName    string `env:"BUSINESS_NAME" envDefault:"Your Business Name"`
	BusinessAddress string `env:"BUSINESS_ADDRESS" envDefault:"Your Business Address"`
	BusinessPhone   string `env:"BUSINESS_PHONE" envDefault:"+91-0000000000"`
	BusinessEmail   string `env:"BUSINESS_EMAIL" envDefault:"business@example.com"`
	BusinessGST     string `env:"BUSINESS_GST" envDefault:"N/A"`

	// Invoice policy
	TaxRate        float64 `env:"TAX_RATE" envDefault:"0.18"`
	Currency       string  `env:"CURRENCY" envDefault:"INR"`
	PaymentDueDays int     `env:"PAYMENT_DUE_DAYS" envDefault:"7"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ExtractionAPIKey = strings.TrimSpace(cfg.ExtractionAPIKey)
	cfg.ExtractionBaseURL = strings.TrimRight(strings.TrimSpace(cfg.ExtractionBaseURL), "/")
	if cfg.ExtractionAPIKey == "" {
		return nil, fmt.Errorf("EXTRACTION_API_KEY is required")
	}
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0, 1), got %v", cfg.TaxRate)
	}
	if cfg.ExtractionMaxRetries < 0 {
		cfg.ExtractionMaxRetries = 0
	}
	if cfg.PaymentDueDays <= 0 {
		cfg.PaymentDueDays = 7
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
