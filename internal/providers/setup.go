package providers

import (
	"context"
	"fmt"

	"github.com/briangreenhill/athletiq/internal/config"
)

// Setup creates a registry with all configured providers
func Setup(ctx context.Context, cfg config.Config) (*Registry, error) {
	registry := NewRegistry()

	// Register Gemini provider if configured
	if cfg.HasGemini() {
		g, err := NewGemini(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		registry.Register(g)
	}

	// Register Anthropic provider if configured
	if cfg.HasAnthropic() {
		a, err := NewAnthropic(cfg.Anthropic.APIKey)
		if err != nil {
			return nil, fmt.Errorf("anthropic provider: %w", err)
		}
		registry.Register(a)
	}

	return registry, nil
}

// Select returns the provider named in cfg.Generation.Provider.
func Select(registry *Registry, cfg config.Config) (Provider, error) {
	name := cfg.Generation.Provider
	p, ok := registry.Get(name)
	if !ok {
		available := registry.List()
		if len(available) == 0 {
			return nil, fmt.Errorf("no generation providers are configured, set GEMINI_API_KEY or ANTHROPIC_API_KEY")
		}
		return nil, fmt.Errorf("provider '%s' not configured. Available providers: %v", name, available)
	}
	return p, nil
}

// ConfigFrom converts the generation settings of the application config.
func ConfigFrom(cfg config.GenerationConfig) Config {
	return Config{
		Model:           cfg.Model,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
		Timeout:         cfg.Timeout,
	}
}
