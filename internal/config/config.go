// Package config provides application configuration management.
// Configuration is loaded once from environment variables and is read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Quote providers.
const (
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
)

// ErrGeminiKeyMissing is returned when the gemini provider is selected without a key.
var ErrGeminiKeyMissing = errors.New("GEMINI_API_KEY is required when QUOTE_PROVIDER=gemini")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Mail routing
	ReceiverEmail string `env:"RECEIVER_EMAIL,required,notEmpty"`
	SenderEmail   string `env:"SENDER_EMAIL,required,notEmpty"`
	SenderName    string `env:"SENDER_NAME,required,notEmpty"`

	// Provider regions and model
	SESRegion      string `env:"SES_REGION,required,notEmpty"`
	BedrockRegion  string `env:"BEDROCK_REGION,required,notEmpty"`
	BedrockModelID string `env:"BEDROCK_MODEL_ID,required,notEmpty"`

	// Quote provider selection
	QuoteProvider string `env:"QUOTE_PROVIDER" envDefault:"bedrock"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile   string `env:"LOG_FILE"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Observability
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	OTelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.QuoteProvider {
	case ProviderBedrock:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return ErrGeminiKeyMissing
		}
	default:
		return fmt.Errorf("unknown QUOTE_PROVIDER %q", c.QuoteProvider)
	}
	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or empty.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDotenv loads variables from the given .env files into the process
// environment without overriding values that are already set.
// Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}
