// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevSigningSecret is the SIGNING_SECRET default. It is public, so download
// links signed with it can be forged.
const DevSigningSecret = "dev-signing-secret"

// Config holds all application configuration
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	AppName       string        `env:"APP_NAME" envDefault:"Athletiq_AI"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"json"`
	SigningSecret string        `env:"SIGNING_SECRET" envDefault:"dev-signing-secret"`
	APIKey        string        `env:"API_KEY"`
	CORSOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	DownloadTTL   time.Duration `env:"DOWNLOAD_TTL" envDefault:"24h"`

	// Plans go to Postgres when DatabaseURL is set, otherwise to PlanDir.
	DatabaseURL string `env:"DATABASE_URL"`
	PlanDir     string `env:"PLAN_DIR"`

	RedisAddr         string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	AsyncEnabled      bool   `env:"ASYNC_ENABLED" envDefault:"false"`
	WorkerMetricsAddr string `env:"WORKER_METRICS_ADDR"` // empty disables the worker's /metrics listener

	Generation GenerationConfig `envPrefix:"GENERATION_"`
	Prompt     PromptConfig     `envPrefix:"PROMPT_"`
	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
}

// GenerationConfig controls the call to the text generation provider
type GenerationConfig struct {
	Provider        string        `env:"PROVIDER" envDefault:"gemini"`
	Model           string        `env:"MODEL"` // empty means the provider's default
	MaxOutputTokens int           `env:"MAX_OUTPUT_TOKENS" envDefault:"2048"`
	Temperature     float64       `env:"TEMPERATURE" envDefault:"0.7"`
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// PromptConfig shapes the prompt sent to the provider
type PromptConfig struct {
	Persona   string `env:"PERSONA" envDefault:"ATHLETIQ AI"`
	WordLimit int    `env:"WORD_LIMIT" envDefault:"400"`
	Layout    string `env:"LAYOUT" envDefault:"sections"`
}

// GeminiConfig holds Gemini-specific configuration
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
}

// AnthropicConfig holds Anthropic-specific configuration
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
}

// Parse reads configuration from environment variables and validates it
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Generation.Provider = strings.ToLower(strings.TrimSpace(cfg.Generation.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads an optional .env file, then the environment. It exits the
// process on invalid configuration.
func Load() Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	return cfg
}

// HasGemini returns true if a Gemini API key is configured
func (c Config) HasGemini() bool {
	return c.Gemini.APIKey != ""
}

// HasAnthropic returns true if an Anthropic API key is configured
func (c Config) HasAnthropic() bool {
	return c.Anthropic.APIKey != ""
}

// Validate checks value ranges. Missing API keys are not an error here so
// that offline commands such as BMI lookups keep working.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.SigningSecret == "" {
		errs = append(errs, errors.New("SIGNING_SECRET must not be empty"))
	}
	if c.DownloadTTL <= 0 {
		errs = append(errs, fmt.Errorf("DOWNLOAD_TTL must be positive, got %s", c.DownloadTTL))
	}
	switch c.Generation.Provider {
	case "gemini", "anthropic":
	default:
		errs = append(errs, fmt.Errorf("GENERATION_PROVIDER must be gemini or anthropic, got %q", c.Generation.Provider))
	}
	if c.Generation.MaxOutputTokens <= 0 {
		errs = append(errs, fmt.Errorf("GENERATION_MAX_OUTPUT_TOKENS must be positive, got %d", c.Generation.MaxOutputTokens))
	}
	if limit := maxTemperature(c.Generation.Provider); c.Generation.Temperature < 0 || c.Generation.Temperature > limit {
		errs = append(errs, fmt.Errorf("GENERATION_TEMPERATURE must be between 0 and %v for %s, got %v",
			limit, c.Generation.Provider, c.Generation.Temperature))
	}
	if c.Generation.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", c.Generation.Timeout))
	}
	if c.Prompt.WordLimit < 0 {
		errs = append(errs, fmt.Errorf("PROMPT_WORD_LIMIT must not be negative, got %d", c.Prompt.WordLimit))
	}
	return errors.Join(errs...)
}

// maxTemperature is the highest sampling temperature the provider accepts.
func maxTemperature(provider string) float64 {
	if provider == "anthropic" {
		return 1
	}
	return 2
}

// Warnings lists settings that work but should not reach production.
func (c Config) Warnings() []string {
	var out []string
	if c.SigningSecret == DevSigningSecret {
		out = append(out, "SIGNING_SECRET is the public development default; download links can be forged")
	}
	return out
}
