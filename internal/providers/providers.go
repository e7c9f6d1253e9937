// Package providers contains text generation provider implementations
package providers

import (
	"context"
	"sort"
	"time"
)

// DefaultTimeout bounds a single generation call when Config.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// Config is passed with every generation request.
type Config struct {
	Model           string // empty means the provider's DefaultModel
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// Provider defines the interface that all text generation backends must implement
type Provider interface {
	// Name returns the name of the provider (e.g., "gemini", "anthropic")
	Name() string

	// DefaultModel is used when the request does not name a model
	DefaultModel() string

	// Generate sends prompt to the backend and returns its text reply
	Generate(ctx context.Context, prompt string, cfg Config) (string, error)
}

// Registry manages available generation providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Name()] = provider
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, bool) {
	provider, exists := r.providers[name]
	return provider, exists
}

// List returns all registered provider names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
